package store

import (
	"context"
	"sync"

	"github.com/shandysiswandi/gomart/internal/checkout/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
)

// Memory keeps shipping addresses in process, newest last per session.
type Memory struct {
	mu    sync.RWMutex
	ids   map[int64]struct{}
	bySID map[string][]entity.ShippingAddress
}

func NewMemory() *Memory {
	return &Memory{
		ids:   make(map[int64]struct{}),
		bySID: make(map[string][]entity.ShippingAddress),
	}
}

func (m *Memory) SaveAddress(_ context.Context, addr entity.ShippingAddress) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.ids[addr.ID]; ok {
		return goerror.ErrConflict
	}

	m.ids[addr.ID] = struct{}{}
	m.bySID[addr.SessionID] = append(m.bySID[addr.SessionID], addr)

	return nil
}

func (m *Memory) LatestAddress(_ context.Context, sid string) (*entity.ShippingAddress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.bySID[sid]
	if len(list) == 0 {
		return nil, goerror.ErrNotFound
	}

	latest := list[0]
	for _, a := range list[1:] {
		if !a.CreatedAt.Before(latest.CreatedAt) {
			latest = a
		}
	}

	return &latest, nil
}
