package redis

import (
	"context"
	"errors"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/taskboard/repository"
)

type byteStore struct {
	client *redislib.Client
	prefix string
}

// NewByteStore creates a Redis-backed ByteStore over a client owned by the
// caller. Keys never expire.
func NewByteStore(client *redislib.Client, prefix string) repository.ByteStore {
	if prefix == "" {
		prefix = "slot:"
	}
	return &byteStore{
		client: client,
		prefix: prefix,
	}
}

func (s *byteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (s *byteStore) Put(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

func (s *byteStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *byteStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close is a no-op: the client is borrowed and closed by its owner.
func (s *byteStore) Close() error {
	return nil
}

func (s *byteStore) key(name string) string {
	return fmt.Sprintf("%s%s", s.prefix, name)
}
