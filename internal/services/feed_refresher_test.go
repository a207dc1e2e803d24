package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/usecase/posts"
)

type countingLoader struct {
	calls atomic.Int32
	err   error
}

func (c *countingLoader) Load(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestNewFeedRefresherRejectsShortInterval(t *testing.T) {
	_, err := NewFeedRefresher(&countingLoader{}, nil, RefresherConfig{Interval: 10 * time.Millisecond})
	assert.Error(t, err)
}

func TestRefreshPropagatesErrors(t *testing.T) {
	boom := errors.New("upstream down")
	loader := &countingLoader{err: boom}
	r, err := NewFeedRefresher(loader, nil, RefresherConfig{Interval: time.Minute})
	require.NoError(t, err)

	assert.ErrorIs(t, r.Refresh(context.Background()), boom)
	assert.EqualValues(t, 1, loader.calls.Load())
}

func TestRefresherRunsOnSchedule(t *testing.T) {
	loader := &countingLoader{}
	r, err := NewFeedRefresher(loader, nil, RefresherConfig{Interval: time.Second})
	require.NoError(t, err)

	r.Start()
	assert.Eventually(t, func() bool { return loader.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))
}

type countingSource struct {
	calls atomic.Int32
}

func (s *countingSource) Posts(context.Context) ([]domain.Post, error) {
	s.calls.Add(1)
	return []domain.Post{{ID: 1, Title: "hello", Body: "world", UserID: 1}}, nil
}

func (s *countingSource) Authors(context.Context) ([]domain.Author, error) {
	return []domain.Author{{ID: 1, Name: "Leanne Graham"}}, nil
}

type feedCache struct {
	mu   sync.Mutex
	feed *domain.Feed
}

func (c *feedCache) Get(context.Context) (*domain.Feed, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.feed == nil {
		return nil, false, nil
	}
	feed := *c.feed
	return &feed, true, nil
}

func (c *feedCache) Set(_ context.Context, feed domain.Feed) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.feed = &feed
	return nil
}

func (c *feedCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.feed = nil
	return nil
}

func TestRefreshKeepsCachedFeed(t *testing.T) {
	src := &countingSource{}
	cache := &feedCache{}
	browser := posts.NewBrowser(src, cache, 6, nil)
	r, err := NewFeedRefresher(browser, nil, RefresherConfig{Interval: time.Minute})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, r.Refresh(ctx))
	require.NoError(t, r.Refresh(ctx))
	assert.EqualValues(t, 1, src.calls.Load(), "a live cache entry is reused")

	require.NoError(t, cache.Invalidate(ctx))
	require.NoError(t, r.Refresh(ctx))
	assert.EqualValues(t, 2, src.calls.Load(), "an expired entry is fetched again")
}
