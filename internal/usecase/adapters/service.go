package adapters

import (
	"context"

	"fizzo-agent/internal/entity"
)

// NovelService lists the novels owned by a fizzo.org account. The result is
// an envelope: every failure mode is folded into it and no error or panic
// crosses this boundary.
type NovelService interface {
	FetchNovelList(ctx context.Context, creds entity.Credentials) *entity.NovelListResult
}

// ChapterService publishes a chapter draft to one of the account's novels.
type ChapterService interface {
	PublishChapter(ctx context.Context, creds entity.Credentials, draft entity.ChapterDraft) *entity.ChapterPublishResult
}
