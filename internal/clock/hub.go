package clock

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/startpage/internal/logger"
)

// Hub ticks on a fixed interval and fans the formatted time out to subscribers.
// Slow subscribers miss ticks instead of blocking the hub.
type Hub struct {
	interval time.Duration
	now      func() time.Time
	logger   logger.Logger

	mu   sync.Mutex
	subs map[chan string]struct{}
}

// NewHub creates a hub. now may be nil, in which case time.Now is used.
func NewHub(interval time.Duration, now func() time.Time, log logger.Logger) *Hub {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	if now == nil {
		now = time.Now
	}
	return &Hub{
		interval: interval,
		now:      now,
		logger:   log,
		subs:     make(map[chan string]struct{}),
	}
}

// Now returns the current formatted time.
func (h *Hub) Now() string { return Format(h.now()) }

// Subscribe registers a receiver. The returned cancel func must be called to release it;
// it closes the channel.
func (h *Hub) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 1)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers returns the number of registered receivers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Run ticks until ctx is canceled.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.logger.Info("clock hub started", logger.Duration("interval", h.interval))
	for {
		select {
		case <-ticker.C:
			h.broadcast(h.Now())
		case <-ctx.Done():
			h.logger.Info("clock hub stopped")
			return nil
		}
	}
}

func (h *Hub) broadcast(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- text:
		default:
		}
	}
}
