package services

import (
	"context"
	"sync"
	"time"

	"lilutecno/internal/cart"
	"lilutecno/internal/clock"
	"lilutecno/internal/config"
	"lilutecno/internal/header"
	"lilutecno/internal/kv"
	applog "lilutecno/internal/log"
	"lilutecno/internal/notify"
)

type SessionOptions struct {
	NotifyTTL time.Duration
	NotifyMax int
	// IdleTimeout evicts sessions not seen for this long. Zero keeps them forever.
	IdleTimeout time.Duration
}

// SessionService owns the live sessions, keyed by the sid cookie.
type SessionService struct {
	Catalog *CatalogService
	KV      kv.Store
	Clock   clock.Clock
	Opts    SessionOptions

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionService(cat *CatalogService, store kv.Store, c clock.Clock, opts SessionOptions) *SessionService {
	if c == nil {
		c = clock.Real()
	}
	return &SessionService{Catalog: cat, KV: store, Clock: c, Opts: opts, sessions: map[string]*Session{}}
}

// CartKey is where the cart of sid is persisted.
func CartKey(sid string) string { return config.CartKey + ":" + sid }

// Get returns the session for sid, opening it and rehydrating its cart on first use.
// The cart is read without holding the registry lock; if two requests race to
// open the same sid, the first one registered wins and the other is discarded.
func (s *SessionService) Get(ctx context.Context, sid string) (*Session, error) {
	now := s.Clock.Now()
	if sess, ok := s.lookup(sid, now); ok {
		return sess, nil
	}

	q := notify.New(s.Clock, notify.Options{TTL: s.Opts.NotifyTTL, MaxLive: s.Opts.NotifyMax})
	c, err := cart.Open(ctx, s.KV, CartKey(sid), q)
	if err != nil {
		q.Close()
		return nil, err
	}
	stats := len(header.Stats(0, 0))
	sess := &Session{
		ID:            sid,
		catalog:       s.Catalog,
		Cart:          c,
		Notifications: q,
		Visibility:    header.NewVisibility(),
		Carousel:      header.NewCarousel(s.Clock, stats),
		filters:       s.Catalog.DefaultFilters(),
		lastSeen:      now,
	}

	s.mu.Lock()
	if existing, ok := s.sessions[sid]; ok {
		s.mu.Unlock()
		sess.Close()
		existing.touch(now)
		return existing, nil
	}
	s.sessions[sid] = sess
	sess.Carousel.Start()
	s.mu.Unlock()
	return sess, nil
}

func (s *SessionService) lookup(sid string, now time.Time) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sid]
	if ok {
		sess.touch(now)
	}
	return sess, ok
}

func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep closes and forgets sessions idle longer than IdleTimeout. Their carts
// stay persisted and are rehydrated on the next visit.
func (s *SessionService) Sweep(now time.Time) int {
	if s.Opts.IdleTimeout <= 0 {
		return 0
	}
	s.mu.Lock()
	var stale []*Session
	for id, sess := range s.sessions {
		if now.Sub(sess.idleSince()) > s.Opts.IdleTimeout {
			stale = append(stale, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range stale {
		sess.Close()
	}
	if len(stale) > 0 {
		applog.Info(nil, "session.sweep", map[string]any{"evicted": len(stale)})
	}
	return len(stale)
}

// Run sweeps every interval until ctx is done, then closes all sessions.
func (s *SessionService) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case <-t.C:
			s.Sweep(s.Clock.Now())
		}
	}
}

func (s *SessionService) Close() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = map[string]*Session{}
	s.mu.Unlock()
	for _, sess := range all {
		sess.Close()
	}
}
