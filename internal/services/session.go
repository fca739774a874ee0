package services

import (
	"context"
	"sync"
	"time"

	"lilutecno/internal/cart"
	"lilutecno/internal/domain"
	"lilutecno/internal/filter"
	"lilutecno/internal/header"
	"lilutecno/internal/notify"
)

// Session is the state one shopper's storefront owns: filter criteria, cart,
// notifications and header widgets. Handlers receive it explicitly.
type Session struct {
	ID string

	catalog *CatalogService

	Cart          *cart.Store
	Notifications *notify.Queue
	Visibility    *header.Visibility
	Carousel      *header.Carousel

	mu       sync.Mutex
	filters  domain.FiltersState
	lastSeen time.Time
}

// View is the filtered catalog plus header stats for the current criteria.
type View struct {
	Result
	Stats []domain.HeaderStat `json:"stats"`
}

func (s *Session) Filters() domain.FiltersState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetFilters merges a partial update into the current criteria.
func (s *Session) SetFilters(p domain.FiltersPatch) domain.FiltersState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = filter.Normalize(filter.Merge(s.filters, p), s.catalog.MaxPrice)
	return s.filters
}

// ReplaceFilters swaps the whole criteria, as the mobile filters dialog does.
func (s *Session) ReplaceFilters(f domain.FiltersState) domain.FiltersState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = filter.Normalize(f, s.catalog.MaxPrice)
	return s.filters
}

func (s *Session) ClearFilters() domain.FiltersState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = s.catalog.DefaultFilters()
	return s.filters
}

// View recomputes the filtered list from the current criteria.
func (s *Session) View() View {
	return s.view(s.Filters())
}

// Preview is View with p merged over the current criteria for this call only.
func (s *Session) Preview(p domain.FiltersPatch) View {
	return s.view(filter.Normalize(filter.Merge(s.Filters(), p), s.catalog.MaxPrice))
}

func (s *Session) view(f domain.FiltersState) View {
	r := s.catalog.Search(f)
	return View{Result: r, Stats: header.Stats(r.OnOfferCount, r.Available)}
}

func (s *Session) AddToCart(ctx context.Context, productID string) error {
	p, err := s.catalog.GetProduct(productID)
	if err != nil {
		return err
	}
	return s.Cart.Add(ctx, p)
}

func (s *Session) UpdateQuantity(ctx context.Context, productID string, qty int) error {
	return s.Cart.UpdateQuantity(ctx, productID, qty)
}

func (s *Session) RemoveFromCart(ctx context.Context, productID string) error {
	return s.Cart.Remove(ctx, productID)
}

func (s *Session) ClearCart(ctx context.Context) error {
	return s.Cart.Clear(ctx)
}

func (s *Session) Notify(msg string, typ domain.NotificationType) domain.Notification {
	return s.Notifications.Push(msg, typ)
}

// Close releases the session's timers.
func (s *Session) Close() {
	s.Notifications.Close()
	s.Carousel.Close()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
