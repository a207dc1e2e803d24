package repository

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

// PostSource is the remote collaborator serving posts and their authors.
type PostSource interface {
	Posts(ctx context.Context) ([]domain.Post, error)
	Authors(ctx context.Context) ([]domain.Author, error)
}

// FeedCache stores a successfully loaded feed. Implementations never cache partial feeds.
type FeedCache interface {
	Get(ctx context.Context) (*domain.Feed, bool, error)
	Set(ctx context.Context, feed domain.Feed) error
	Invalidate(ctx context.Context) error
}
