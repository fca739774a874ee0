// Package cart owns a shopper's line items and keeps them persisted in a
// key-value store on every change.
package cart

import (
	"context"
	"fmt"
	"sync"

	"lilutecno/internal/domain"
	"lilutecno/internal/kv"
	applog "lilutecno/internal/log"
)

const (
	msgRemoved = "Producto eliminado del carrito"
	msgCleared = "Carrito vaciado"
)

// Notifier receives the shopper-facing message for each cart change.
type Notifier interface {
	Push(message string, typ domain.NotificationType) domain.Notification
}

type Store struct {
	kv     kv.Store
	key    string
	notify Notifier

	mu    sync.Mutex
	items []domain.CartItem
}

// Open rehydrates the cart saved under key. A malformed stored value is
// logged, deleted and replaced by an empty cart; it is not returned as an error.
func Open(ctx context.Context, store kv.Store, key string, n Notifier) (*Store, error) {
	s := &Store{kv: store, key: key, notify: n, items: []domain.CartItem{}}
	text, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("cart: load %s: %w", key, err)
	}
	if !ok {
		return s, nil
	}
	items, err := Decode(text)
	if err != nil {
		applog.Warn(nil, "cart.decode.fail", err, map[string]any{"key": key})
		if derr := store.Delete(ctx, key); derr != nil {
			applog.Error(nil, "cart.decode.discard", derr, map[string]any{"key": key})
		}
		return s, nil
	}
	s.items = items
	return s, nil
}

// Add puts one unit of p in the cart. Quantity is not checked against stock.
func (s *Store) Add(ctx context.Context, p domain.Product) error {
	s.mu.Lock()
	if i := s.indexLocked(p.ID); i >= 0 {
		s.items[i].Quantity++
	} else {
		s.items = append(s.items, domain.NewCartItem(p))
	}
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.push(p.Name+" agregado al carrito", domain.NotifySuccess)
	return err
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less
// removes the line exactly as Remove does.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		s.items[i].Quantity = quantity
	}
	return s.persistLocked(ctx)
}

// Remove deletes the line for id. The removal message is sent whether or
// not the line existed.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	if i := s.indexLocked(id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.push(msgRemoved, domain.NotifyError)
	return err
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.items = []domain.CartItem{}
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.push(msgCleared, domain.NotifySuccess)
	return err
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the sum of quantities across lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, it := range s.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func (s *Store) indexLocked(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked(ctx context.Context) error {
	text, err := Encode(s.items)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, text); err != nil {
		return fmt.Errorf("cart: save %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) push(msg string, typ domain.NotificationType) {
	if s.notify != nil {
		s.notify.Push(msg, typ)
	}
}
