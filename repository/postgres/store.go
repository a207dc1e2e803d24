package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/taskboard/repository"
)

type byteStore struct {
	pool *pgxpool.Pool
}

// NewByteStore returns a Postgres-backed ByteStore over the slots table.
func NewByteStore(pool *pgxpool.Pool) repository.ByteStore {
	return &byteStore{pool: pool}
}

func (s *byteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const query = `SELECT payload FROM slots WHERE name = $1`

	var payload []byte
	if err := s.pool.QueryRow(ctx, query, key).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

func (s *byteStore) Put(ctx context.Context, key string, value []byte) error {
	const query = `
	INSERT INTO slots (name, payload, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (name) DO UPDATE
	SET payload = EXCLUDED.payload,
		updated_at = NOW()
	`
	_, err := s.pool.Exec(ctx, query, key, value)
	return err
}

func (s *byteStore) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM slots WHERE name = $1`
	_, err := s.pool.Exec(ctx, query, key)
	return err
}

func (s *byteStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *byteStore) Close() error {
	s.pool.Close()
	return nil
}
