package repository

import "context"

// ByteStore is the key/value byte storage every slot backend implements.
// Get reports found=false, with a nil error, for a missing key.
type ByteStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
