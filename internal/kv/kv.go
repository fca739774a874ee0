// Package kv provides the text key-value stores the cart is persisted to.
package kv

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Store is a string key-value store. Get reports ok=false for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Open returns the store selected by backend ("sqlite", "redis" or "memory").
func Open(backend string, db *sqlx.DB, redisURL string) (Store, error) {
	switch backend {
	case "", "sqlite":
		return NewSQLite(db)
	case "redis":
		return DialRedis(redisURL)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("kv: unknown backend %q", backend)
	}
}

type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemory() *Memory { return &Memory{m: map[string]string{}} }

func (s *Memory) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *Memory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

var _ Store = (*Memory)(nil)
