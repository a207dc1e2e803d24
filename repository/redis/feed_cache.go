package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

type feedCache struct {
	client *redislib.Client
	key    string
	ttl    time.Duration
}

// NewFeedCache caches the posts+authors pair under a single key so both halves expire together.
func NewFeedCache(client *redislib.Client, prefix string, ttl time.Duration) repository.FeedCache {
	if prefix == "" {
		prefix = "cache:"
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &feedCache{
		client: client,
		key:    prefix + "feed",
		ttl:    ttl,
	}
}

func (c *feedCache) Get(ctx context.Context) (*domain.Feed, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var feed domain.Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, false, err
	}
	return &feed, true, nil
}

func (c *feedCache) Set(ctx context.Context, feed domain.Feed) error {
	payload, err := json.Marshal(feed)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, payload, c.ttl).Err()
}

func (c *feedCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
