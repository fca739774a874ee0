// Package notify holds the transient toast messages shown to a shopper.
// Every message removes itself after a fixed lifetime unless dismissed first.
package notify

import (
	"sync"
	"time"

	"lilutecno/internal/clock"
	"lilutecno/internal/domain"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 3000 * time.Millisecond

type Options struct {
	TTL time.Duration
	// MaxLive caps the number of live messages; the oldest is dropped first.
	// Zero means unbounded.
	MaxLive int
}

type entry struct {
	msg   domain.Notification
	timer clock.Timer
}

type Queue struct {
	clock clock.Clock
	ttl   time.Duration
	max   int

	mu      sync.Mutex
	entries []entry
	lastID  int64
	closed  bool
}

func New(c clock.Clock, opts Options) *Queue {
	if c == nil {
		c = clock.Real()
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	return &Queue{clock: c, ttl: opts.TTL, max: opts.MaxLive}
}

// Push appends a message and schedules its removal. An empty type means success.
func (q *Queue) Push(message string, typ domain.NotificationType) domain.Notification {
	if typ == "" {
		typ = domain.NotifySuccess
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	// Millisecond timestamps collide when pushes share a tick; bump past the last id.
	id := q.clock.Now().UnixMilli()
	if id <= q.lastID {
		id = q.lastID + 1
	}
	q.lastID = id

	n := domain.Notification{ID: id, Message: message, Type: typ}
	if q.closed {
		return n
	}
	if q.max > 0 && len(q.entries) >= q.max {
		q.entries[0].timer.Stop()
		q.entries = q.entries[1:]
	}
	timer := q.clock.AfterFunc(q.ttl, func() { q.expire(id) })
	q.entries = append(q.entries, entry{msg: n, timer: timer})
	return n
}

func (q *Queue) expire(id int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.removeLocked(id)
}

// Dismiss removes the message immediately and cancels its pending expiry.
// It reports false when the message is already gone.
func (q *Queue) Dismiss(id int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.removeLocked(id)
	if ok {
		e.timer.Stop()
	}
	return ok
}

func (q *Queue) removeLocked(id int64) (entry, bool) {
	for i, e := range q.entries {
		if e.msg.ID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return e, true
		}
	}
	return entry{}, false
}

// List returns the live messages in display order.
func (q *Queue) List() []domain.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.Notification, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.msg
	}
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Close cancels every pending expiry and drops all messages. Later pushes
// are accepted but never shown.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range q.entries {
		e.timer.Stop()
	}
	q.entries = nil
	q.closed = true
}
