package service

import (
	"context"
	"slices"
	"sync"
)

// MemoryHistory keeps turns in process memory.
type MemoryHistory struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewMemoryHistory creates an empty MemoryHistory.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

func (h *MemoryHistory) Append(ctx context.Context, turns ...Turn) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, turns...)
	return nil
}

func (h *MemoryHistory) List(ctx context.Context) ([]Turn, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.turns), nil
}

func (h *MemoryHistory) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
	return nil
}
