// Package posts is the read-only post browser: it loads posts together with
// their authors and derives searchable, paginated views of them.
package posts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

const (
	loadKey            = "feed"
	defaultLoadTimeout = 10 * time.Second
)

// Browser holds the last loaded feed, the load error state and the
// process-wide browse state.
type Browser struct {
	source  repository.PostSource
	cache   repository.FeedCache
	logger  *zap.Logger
	timeout time.Duration
	group   singleflight.Group

	mu      sync.RWMutex
	feed    *domain.Feed
	authors map[int]domain.Author
	err     error
	state   State
}

// Option customizes a Browser.
type Option func(*Browser)

// WithLoadTimeout bounds one shared fetch of posts and authors.
func WithLoadTimeout(d time.Duration) Option {
	return func(b *Browser) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// NewBrowser creates a Browser. cache may be nil.
func NewBrowser(source repository.PostSource, cache repository.FeedCache, pageSize int, logger *zap.Logger, opts ...Option) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Browser{
		source:  source,
		cache:   cache,
		logger:  logger,
		timeout: defaultLoadTimeout,
		state:   NewState(pageSize),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load fetches posts and authors concurrently. Either read failing fails the
// whole load: the error becomes the browser's error state and is returned.
// A successful load replaces the feed and clears the error state.
//
// Overlapping calls share one fetch, bounded by the load timeout rather than
// by any caller's context. A caller whose ctx ends first returns ctx.Err()
// and leaves the shared fetch and the error state alone.
func (b *Browser) Load(ctx context.Context) error {
	ch := b.group.DoChan(loadKey, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
		defer cancel()

		feed, err := b.fetch(fetchCtx)
		b.mu.Lock()
		defer b.mu.Unlock()
		if err != nil {
			b.err = err
			return nil, err
		}
		b.feed = feed
		b.authors = indexAuthors(feed.Authors)
		b.err = nil
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reload drops any cached feed and loads again.
func (b *Browser) Reload(ctx context.Context) error {
	if b.cache != nil {
		if err := b.cache.Invalidate(ctx); err != nil {
			b.logger.Warn("failed to invalidate feed cache", zap.Error(err))
		}
	}
	return b.Load(ctx)
}

func (b *Browser) fetch(ctx context.Context) (*domain.Feed, error) {
	if b.cache != nil {
		feed, ok, err := b.cache.Get(ctx)
		switch {
		case err != nil:
			b.logger.Warn("feed cache read failed", zap.Error(err))
		case ok:
			b.logger.Debug("feed served from cache", zap.Int("posts", len(feed.Posts)))
			return feed, nil
		}
	}

	var feed domain.Feed
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posts, err := b.source.Posts(gctx)
		feed.Posts = posts
		return err
	})
	g.Go(func() error {
		authors, err := b.source.Authors(gctx)
		feed.Authors = authors
		return err
	})
	if err := g.Wait(); err != nil {
		b.logger.Error("failed to load posts", zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeUpstream, domain.ErrFetchFailed.Message, err)
	}

	if b.cache != nil {
		if err := b.cache.Set(ctx, feed); err != nil {
			b.logger.Warn("failed to cache feed", zap.Error(err))
		}
	}
	b.logger.Info("posts loaded", zap.Int("posts", len(feed.Posts)), zap.Int("authors", len(feed.Authors)))
	return &feed, nil
}

func indexAuthors(authors []domain.Author) map[int]domain.Author {
	out := make(map[int]domain.Author, len(authors))
	for _, a := range authors {
		out[a.ID] = a
	}
	return out
}

// Err returns the current error state.
func (b *Browser) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.err
}

// Loaded reports whether a feed has been loaded at least once.
func (b *Browser) Loaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.feed != nil
}

// Item is a post joined with its author. Author is nil when unknown.
type Item struct {
	domain.Post
	Author *domain.Author `json:"author"`
}

// Page is one rendered page of the browser.
type Page struct {
	Items      []Item `json:"items"`
	Search     string `json:"search"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
	Window     []int  `json:"window"`
	HasPrev    bool   `json:"hasPrev"`
	HasNext    bool   `json:"hasNext"`
	Loaded     bool   `json:"loaded"`
}

// View derives the page described by state. While the error state is set the
// error is returned instead of results.
func (b *Browser) View(state State) (Page, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.view(state)
}

func (b *Browser) view(state State) (Page, error) {
	if b.err != nil {
		return Page{}, b.err
	}

	page := Page{
		Items:    []Item{},
		Search:   state.Search(),
		Page:     state.Page(),
		PageSize: state.PageSize(),
		Window:   []int{},
		Loaded:   b.feed != nil,
	}
	if b.feed == nil {
		return page, nil
	}

	filtered := Search(b.feed.Posts, state.Search())
	page.Total = len(filtered)
	page.TotalPages = TotalPages(page.Total, page.PageSize)
	page.Window = PageWindow(page.Page, page.TotalPages)
	page.HasPrev = page.Page > 1
	page.HasNext = page.Page < page.TotalPages

	for _, p := range Paginate(filtered, page.Page, page.PageSize) {
		item := Item{Post: p}
		if a, ok := b.authors[p.UserID]; ok {
			item.Author = &a
		}
		page.Items = append(page.Items, item)
	}
	return page, nil
}

// Navigation changes the shared browse state. A nil Search keeps the current
// text; a zero Page keeps the current page.
type Navigation struct {
	Search *string
	Page   int
}

// Browse applies nav to the shared browse state and renders the result.
// The page is clamped against the filtered count after the search is applied.
func (b *Browser) Browse(nav Navigation) (Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if nav.Search != nil {
		b.state = b.state.SetSearch(*nav.Search)
	}
	if nav.Page != 0 {
		total := 0
		if b.feed != nil {
			total = TotalPages(len(Search(b.feed.Posts, b.state.Search())), b.state.PageSize())
		}
		b.state = b.state.SetPage(nav.Page, total)
	}
	return b.view(b.state)
}

// State returns the shared browse state.
func (b *Browser) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}
