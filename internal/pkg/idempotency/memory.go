package idempotency

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/gomart/internal/pkg/clock"
)

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// Memory is a process-local Backend for single-instance deployments and tests.
type Memory struct {
	mu      sync.Mutex
	clock   clock.Clocker
	entries map[string]memoryEntry
}

func NewMemory(c clock.Clocker) *Memory {
	return &Memory{clock: c, entries: map[string]memoryEntry{}}
}

func (m *Memory) Acquire(_ context.Context, key string, lockDuration time.Duration) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	if e, ok := m.entries[key]; ok && now.Before(e.expiresAt) {
		return e.state, nil
	}

	m.entries[key] = memoryEntry{state: StateInProgress, expiresAt: now.Add(lockDuration)}
	return StateNone, nil
}

func (m *Memory) Mark(_ context.Context, key string, state State, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{state: state, expiresAt: m.clock.Now().Add(ttl)}
	return nil
}
