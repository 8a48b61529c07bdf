package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fizzo-agent/internal/config"
	"fizzo-agent/internal/entity"
	"fizzo-agent/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubNovelService struct {
	lastCreds entity.Credentials
	result    *entity.NovelListResult
}

func (s *stubNovelService) FetchNovelList(_ context.Context, creds entity.Credentials) *entity.NovelListResult {
	s.lastCreds = creds

	return s.result
}

type stubChapterService struct {
	lastDraft entity.ChapterDraft
	result    *entity.ChapterPublishResult
}

func (s *stubChapterService) PublishChapter(_ context.Context, _ entity.Credentials, draft entity.ChapterDraft) *entity.ChapterPublishResult {
	s.lastDraft = draft

	return s.result
}

func newTestServer(novels *stubNovelService, chapters *stubChapterService) *Server {
	conf := &config.Config{
		AppConfig: &config.AppConfig{},
		ServerConfig: &config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		BrowserConfig: &config.BrowserConfig{},
		FizzoConfig:   &config.FizzoConfig{},
	}

	return NewServer(Params{
		Config: conf,
		Logger: zap.NewNop(),
		Usecase: &usecase.Service{
			Novels:   novels,
			Chapters: chapters,
		},
	})
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(&stubNovelService{}, &stubChapterService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.httpSrv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleNovelList(t *testing.T) {
	novels := &stubNovelService{
		result: entity.NovelListSuccess([]entity.Novel{{ID: "1", Title: "Alpha"}}),
	}
	server := newTestServer(novels, &stubChapterService{})

	body, err := json.Marshal(map[string]string{"email": "u@x.com", "password": "p"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/novels/list", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	server.httpSrv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.Credentials{Identity: "u@x.com", Secret: "p"}, novels.lastCreds)

	var result entity.NovelListResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "Alpha", result.Novels[0].Title)
}

func TestHandleNovelList_FailureEnvelopeStillHTTP200(t *testing.T) {
	novels := &stubNovelService{
		result: entity.NovelListFailure("login failed after repeated attempts"),
	}
	server := newTestServer(novels, &stubChapterService{})

	req := httptest.NewRequest(http.MethodPost, "/api/novels/list",
		bytes.NewReader([]byte(`{"email":"u@x.com","password":"wrong"}`)))
	rec := httptest.NewRecorder()
	server.httpSrv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result entity.NovelListResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Equal(t, "login failed after repeated attempts", result.Error)
}

func TestHandleNovelList_MalformedBody(t *testing.T) {
	server := newTestServer(&stubNovelService{}, &stubChapterService{})

	req := httptest.NewRequest(http.MethodPost, "/api/novels/list",
		bytes.NewReader([]byte(`{not json`)))
	rec := httptest.NewRecorder()
	server.httpSrv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChapterPublish(t *testing.T) {
	chapters := &stubChapterService{
		result: &entity.ChapterPublishResult{
			Success:      true,
			ChapterTitle: "Bab 28",
			Published:    true,
		},
	}
	server := newTestServer(&stubNovelService{}, chapters)

	payload := map[string]string{
		"email":           "u@x.com",
		"password":        "p",
		"chapter_title":   "Bab 28",
		"chapter_content": "...",
		"novel_id":        "42",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chapters/publish", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	server.httpSrv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", chapters.lastDraft.NovelID)
	assert.Equal(t, "Bab 28", chapters.lastDraft.Title)

	var result entity.ChapterPublishResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.True(t, result.Published)
}

func TestMethodNotAllowed(t *testing.T) {
	server := newTestServer(&stubNovelService{}, &stubChapterService{})

	req := httptest.NewRequest(http.MethodGet, "/api/novels/list", nil)
	rec := httptest.NewRecorder()
	server.httpSrv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
