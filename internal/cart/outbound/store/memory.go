package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shandysiswandi/gomart/internal/cart/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/clock"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
)

// Memory keeps carts in process. A cart untouched for longer than the idle
// TTL is treated as gone and removed on its next access or by Sweep.
type Memory struct {
	mu    sync.Mutex
	carts map[string]*entity.Cart
	ttl   time.Duration
	clock clock.Clocker
}

func NewMemory(ttl time.Duration, c clock.Clocker) *Memory {
	return &Memory{carts: make(map[string]*entity.Cart), ttl: ttl, clock: c}
}

// lookup must be called with mu held.
func (m *Memory) lookup(sid string) (*entity.Cart, bool) {
	c, ok := m.carts[sid]
	if !ok {
		return nil, false
	}
	if m.expired(c, m.clock.Now()) {
		delete(m.carts, sid)
		return nil, false
	}
	return c, true
}

func (m *Memory) expired(c *entity.Cart, now time.Time) bool {
	return m.ttl > 0 && now.Sub(c.UpdatedAt) > m.ttl
}

// Sweep drops every idle cart and returns how many were removed.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	removed := 0
	for sid, c := range m.carts {
		if m.expired(c, now) {
			delete(m.carts, sid)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Memory) RunSweeper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				slog.DebugContext(ctx, "swept idle carts", "count", n)
			}
		}
	}
}

func (m *Memory) Get(_ context.Context, sid string) (*entity.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.lookup(sid)
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return c.Clone(), nil
}

// Update runs fn on a copy of the cart and stores the copy only when fn
// succeeds.
func (m *Memory) Update(_ context.Context, sid string, fn func(*entity.Cart) error) (*entity.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := entity.New(sid)
	if cur, ok := m.lookup(sid); ok {
		c = cur.Clone()
	}

	if err := fn(c); err != nil {
		return nil, err
	}

	c.UpdatedAt = m.clock.Now()
	m.carts[sid] = c
	return c.Clone(), nil
}

func (m *Memory) Delete(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.carts, sid)
	return nil
}
