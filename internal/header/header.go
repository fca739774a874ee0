// Package header implements the storefront header behavior: hiding on
// downward scroll and the auto-advancing stats strip.
package header

import (
	"strconv"
	"sync"
	"time"

	"lilutecno/internal/clock"
	"lilutecno/internal/domain"
)

const (
	HideThreshold   = 150
	AdvanceInterval = 3 * time.Second
	ResumeDelay     = 5 * time.Second
)

// Stats builds the four header stats for the current result set.
func Stats(onOffer, available int) []domain.HeaderStat {
	return []domain.HeaderStat{
		{Label: "En oferta", Value: strconv.Itoa(onOffer)},
		{Label: "Disponibles", Value: strconv.Itoa(available)},
		{Label: "Envío Rápido", Value: "24h"},
		{Label: "Garantía", Value: "100%"},
	}
}

// Visibility tracks scroll position. The header hides while scrolling down
// past HideThreshold and shows again on any upward scroll.
type Visibility struct {
	mu      sync.Mutex
	lastY   float64
	visible bool
}

func NewVisibility() *Visibility { return &Visibility{visible: true} }

func (v *Visibility) Observe(y float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = !(y > v.lastY && y > HideThreshold)
	v.lastY = y
	return v.visible
}

func (v *Visibility) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

// Carousel advances over n slides every AdvanceInterval while running.
// A manual interaction pauses it and resumes after ResumeDelay of inactivity.
type Carousel struct {
	clock clock.Clock

	mu      sync.Mutex
	n       int
	index   int
	tick    clock.Timer
	resume  clock.Timer
	running bool
	closed  bool
}

func NewCarousel(c clock.Clock, slides int) *Carousel {
	if c == nil {
		c = clock.Real()
	}
	return &Carousel{clock: c, n: slides}
}

func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Carousel) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Start begins auto-advance, replacing any pending tick or resume.
func (c *Carousel) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.startLocked()
}

func (c *Carousel) startLocked() {
	c.stopLocked()
	c.running = true
	c.scheduleLocked()
}

func (c *Carousel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Interact pauses auto-advance; each call supersedes the previous resume.
func (c *Carousel) Interact() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopLocked()
	var t clock.Timer
	t = c.clock.AfterFunc(ResumeDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// superseded by a later Interact, or stopped after it fired
		if c.closed || c.resume != t {
			return
		}
		c.resume = nil
		c.startLocked()
	})
	c.resume = t
}

// Close stops the carousel for good; later Start and Interact calls are ignored.
func (c *Carousel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.closed = true
}

func (c *Carousel) stopLocked() {
	if c.tick != nil {
		c.tick.Stop()
		c.tick = nil
	}
	if c.resume != nil {
		c.resume.Stop()
		c.resume = nil
	}
	c.running = false
}

func (c *Carousel) scheduleLocked() {
	var t clock.Timer
	t = c.clock.AfterFunc(AdvanceInterval, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// a Stop or restart raced with this firing
		if !c.running || c.tick != t {
			return
		}
		if c.n > 0 {
			c.index = (c.index + 1) % c.n
		}
		c.scheduleLocked()
	})
	c.tick = t
}
