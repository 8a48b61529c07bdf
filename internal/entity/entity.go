package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credentials for the fizzo.org account. Never logged in clear form and
// never persisted.
type Credentials struct {
	Identity string
	Secret   string
}

func (c Credentials) Valid() bool {
	return c.Identity != "" && c.Secret != ""
}

// Novel is one story owned by the authenticated user.
type Novel struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NovelListResult is the sole value a novel-list invocation returns. All
// failure paths funnel into this shape; it never carries a Go error out of
// the usecase layer.
type NovelListResult struct {
	Success bool    `json:"success"`
	Novels  []Novel `json:"novels"`
	Count   int     `json:"count"`
	Error   string  `json:"error,omitempty"`
}

func NovelListFailure(message string) *NovelListResult {
	return &NovelListResult{
		Success: false,
		Novels:  []Novel{},
		Count:   0,
		Error:   message,
	}
}

func NovelListSuccess(novels []Novel) *NovelListResult {
	return &NovelListResult{
		Success: true,
		Novels:  novels,
		Count:   len(novels),
	}
}

// ChapterDraft is the payload for a chapter publish.
type ChapterDraft struct {
	NovelID string `json:"novel_id,omitempty"`
	Title   string `json:"chapter_title"`
	Content string `json:"chapter_content"`
}

type ChapterPublishResult struct {
	Success       bool   `json:"success"`
	ChapterTitle  string `json:"chapter_title,omitempty"`
	ContentLength int    `json:"content_length,omitempty"`
	Published     bool   `json:"published"`
	Confirmed     bool   `json:"confirmed"`
	Error         string `json:"error,omitempty"`
}

func ChapterPublishFailure(message string) *ChapterPublishResult {
	return &ChapterPublishResult{
		Success: false,
		Error:   message,
	}
}

// LoginState tracks where a single login attempt is in its sequence.
type LoginState string

const (
	LoginStateNotStarted          LoginState = "not_started"
	LoginStateNavigated           LoginState = "navigated"
	LoginStateInterstitialHandled LoginState = "interstitial_handled"
	LoginStateCredentialsEntered  LoginState = "credentials_entered"
	LoginStateSubmitted           LoginState = "submitted"
	LoginStateVerifying           LoginState = "verifying"
	LoginStateSucceeded           LoginState = "succeeded"
	LoginStateFailed              LoginState = "failed"
)

// SessionAttempt is one pass through the login sequence. Ephemeral, one per
// retry.
type SessionAttempt struct {
	ID        uuid.UUID
	Number    int
	StartedAt time.Time
	State     LoginState
}

func NewSessionAttempt(number int) *SessionAttempt {
	return &SessionAttempt{
		ID:        uuid.New(),
		Number:    number,
		StartedAt: time.Now(),
		State:     LoginStateNotStarted,
	}
}
