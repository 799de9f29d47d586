// Package inmemory provides an in-memory storage implementation for prediction sets.
package inmemory

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/KuangshiAi/keo/epochtime"
	"github.com/KuangshiAi/keo/internal/clone"
	"github.com/KuangshiAi/keo/prediction"
)

// manager implements prediction.Manager backed by process memory.
type manager struct {
	mu   sync.RWMutex
	sets map[string]map[string]*prediction.Set
}

// New creates a new in-memory prediction set manager.
func New() prediction.Manager {
	return &manager{sets: make(map[string]map[string]*prediction.Set)}
}

// Get gets a prediction Set identified by predictionSetID.
func (m *manager) Get(_ context.Context, corpus, predictionSetID string) (*prediction.Set, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sets, ok := m.sets[corpus]
	if !ok {
		return nil, fmt.Errorf("prediction set %s.%s not found: %w", corpus, predictionSetID, os.ErrNotExist)
	}
	set, ok := sets[predictionSetID]
	if !ok {
		return nil, fmt.Errorf("prediction set %s.%s not found: %w", corpus, predictionSetID, os.ErrNotExist)
	}
	cloned, err := clone.Clone(set)
	if err != nil {
		return nil, fmt.Errorf("clone prediction set %s: %w", predictionSetID, err)
	}
	return cloned, nil
}

// Put stores a prediction Set, overwriting any existing set with the same ID.
func (m *manager) Put(_ context.Context, corpus string, set *prediction.Set) error {
	if set == nil {
		return fmt.Errorf("prediction set is nil")
	}
	if set.PredictionSetID == "" {
		return fmt.Errorf("prediction set id is empty")
	}
	cloned, err := clone.Clone(set)
	if err != nil {
		return fmt.Errorf("clone prediction set %s: %w", set.PredictionSetID, err)
	}
	if cloned.CreationTimestamp == nil {
		cloned.CreationTimestamp = epochtime.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sets[corpus]; !ok {
		m.sets[corpus] = make(map[string]*prediction.Set)
	}
	m.sets[corpus][set.PredictionSetID] = cloned
	return nil
}

// List lists all prediction set IDs for the given corpus.
func (m *manager) List(_ context.Context, corpus string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sets[corpus]))
	for id := range m.sets[corpus] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete deletes the prediction Set identified by predictionSetID.
func (m *manager) Delete(_ context.Context, corpus, predictionSetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sets[corpus][predictionSetID]; !ok {
		return fmt.Errorf("prediction set %s.%s not found: %w", corpus, predictionSetID, os.ErrNotExist)
	}
	delete(m.sets[corpus], predictionSetID)
	return nil
}

// Close closes the manager.
func (m *manager) Close() error {
	return nil
}
