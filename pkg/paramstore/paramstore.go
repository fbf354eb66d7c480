// Package paramstore persists workflow input values entered before a run,
// keyed by job id, so they survive the editor being closed and reopened. The
// runtime tolerates the store being unavailable and falls back to declared
// defaults.
package paramstore

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when no values have been saved for a job.
var ErrNotFound = errors.New("no stored values for job")

// Store is the injected load/save pair for per-job workflow input values.
type Store interface {
	Load(ctx context.Context, jobID string) (map[string]any, error)
	Save(ctx context.Context, jobID string, values map[string]any) error
}

// Memory is an in-process store, used in tests and single-node deployments.
type Memory struct {
	mu     sync.RWMutex
	values map[string]map[string]any
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]map[string]any)}
}

func (m *Memory) Load(_ context.Context, jobID string) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.values[jobID]
	if !ok {
		return nil, ErrNotFound
	}

	values := make(map[string]any, len(stored))
	for k, v := range stored {
		values[k] = v
	}

	return values, nil
}

func (m *Memory) Save(_ context.Context, jobID string, values map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make(map[string]any, len(values))
	for k, v := range values {
		stored[k] = v
	}

	m.values[jobID] = stored

	return nil
}
