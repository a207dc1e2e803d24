// Package slot adapts a byte store into a typed, named storage slot.
package slot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fastygo/taskboard/repository"
)

// Slot serializes a single value of type T under a fixed key.
type Slot[T any] struct {
	store repository.ByteStore
	name  string
}

// New binds a slot name to a byte store.
func New[T any](store repository.ByteStore, name string) *Slot[T] {
	return &Slot[T]{store: store, name: name}
}

// Name returns the key the slot is stored under.
func (s *Slot[T]) Name() string {
	return s.name
}

// Load decodes the stored value. A missing slot yields the zero value and found=false.
func (s *Slot[T]) Load(ctx context.Context) (T, bool, error) {
	var value T
	raw, found, err := s.store.Get(ctx, s.name)
	if err != nil {
		return value, false, fmt.Errorf("read slot %q: %w", s.name, err)
	}
	if !found || len(raw) == 0 {
		return value, false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, fmt.Errorf("decode slot %q: %w", s.name, err)
	}
	return value, true, nil
}

// Save replaces the stored value.
func (s *Slot[T]) Save(ctx context.Context, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode slot %q: %w", s.name, err)
	}
	if err := s.store.Put(ctx, s.name, raw); err != nil {
		return fmt.Errorf("write slot %q: %w", s.name, err)
	}
	return nil
}

// Clear removes the slot. Clearing a missing slot is not an error.
func (s *Slot[T]) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.name); err != nil {
		return fmt.Errorf("clear slot %q: %w", s.name, err)
	}
	return nil
}
