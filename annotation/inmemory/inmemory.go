// Package inmemory provides an in-memory storage implementation for gold sets.
package inmemory

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/KuangshiAi/keo/annotation"
	"github.com/KuangshiAi/keo/epochtime"
	"github.com/KuangshiAi/keo/internal/clone"
)

// manager implements annotation.Manager backed by process memory.
//
// Each API returns deep-cloned objects to avoid accidental mutation by callers.
type manager struct {
	mu       sync.RWMutex
	goldSets map[string]map[string]*annotation.GoldSet
}

// New creates a new in-memory gold set manager.
func New() annotation.Manager {
	return &manager{
		goldSets: make(map[string]map[string]*annotation.GoldSet),
	}
}

// Get gets a GoldSet identified by goldSetID.
func (m *manager) Get(_ context.Context, corpus, goldSetID string) (*annotation.GoldSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, err := m.lookup(corpus, goldSetID)
	if err != nil {
		return nil, err
	}
	cloned, err := clone.Clone(set)
	if err != nil {
		return nil, fmt.Errorf("clone gold set %s: %w", goldSetID, err)
	}
	return cloned, nil
}

// Create creates an empty GoldSet.
func (m *manager) Create(_ context.Context, corpus, goldSetID string) (*annotation.GoldSet, error) {
	if corpus == "" {
		return nil, fmt.Errorf("corpus is empty")
	}
	if goldSetID == "" {
		return nil, fmt.Errorf("gold set id is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goldSets[corpus]; !ok {
		m.goldSets[corpus] = make(map[string]*annotation.GoldSet)
	}
	if _, ok := m.goldSets[corpus][goldSetID]; ok {
		return nil, fmt.Errorf("gold set %s.%s already exists", corpus, goldSetID)
	}
	set := &annotation.GoldSet{
		GoldSetID:         goldSetID,
		Name:              goldSetID,
		Annotations:       []*annotation.Annotation{},
		CreationTimestamp: epochtime.Now(),
	}
	m.goldSets[corpus][goldSetID] = set
	cloned, err := clone.Clone(set)
	if err != nil {
		return nil, fmt.Errorf("clone gold set %s: %w", goldSetID, err)
	}
	return cloned, nil
}

// List lists all GoldSet IDs for the given corpus.
func (m *manager) List(_ context.Context, corpus string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.goldSets[corpus]))
	for id := range m.goldSets[corpus] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete deletes the GoldSet identified by goldSetID.
func (m *manager) Delete(_ context.Context, corpus, goldSetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.lookup(corpus, goldSetID); err != nil {
		return err
	}
	delete(m.goldSets[corpus], goldSetID)
	return nil
}

// AddAnnotation adds an annotation to an existing GoldSet.
func (m *manager) AddAnnotation(_ context.Context, corpus, goldSetID string, a *annotation.Annotation) error {
	if a == nil {
		return fmt.Errorf("annotation is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	set, err := m.lookup(corpus, goldSetID)
	if err != nil {
		return err
	}
	for _, existing := range set.Annotations {
		if existing.Key() == a.Key() {
			return fmt.Errorf("annotation %s already exists in gold set %s.%s", a.Key(), corpus, goldSetID)
		}
	}
	cloned, err := clone.Clone(a)
	if err != nil {
		return fmt.Errorf("clone annotation: %w", err)
	}
	if cloned.CreationTimestamp == nil {
		cloned.CreationTimestamp = epochtime.Now()
	}
	set.Annotations = append(set.Annotations, cloned)
	return nil
}

// GetAnnotation gets an annotation from an existing GoldSet by its key.
func (m *manager) GetAnnotation(_ context.Context, corpus, goldSetID, key string) (*annotation.Annotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, err := m.lookup(corpus, goldSetID)
	if err != nil {
		return nil, err
	}
	for _, a := range set.Annotations {
		if a.Key() == key {
			cloned, err := clone.Clone(a)
			if err != nil {
				return nil, fmt.Errorf("clone annotation: %w", err)
			}
			return cloned, nil
		}
	}
	return nil, fmt.Errorf("annotation %s not found in gold set %s.%s: %w", key, corpus, goldSetID, os.ErrNotExist)
}

// UpdateAnnotation replaces the annotation identified by key.
func (m *manager) UpdateAnnotation(_ context.Context, corpus, goldSetID, key string, a *annotation.Annotation) error {
	if a == nil {
		return fmt.Errorf("annotation is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	set, err := m.lookup(corpus, goldSetID)
	if err != nil {
		return err
	}
	for i, existing := range set.Annotations {
		if existing.Key() == key {
			cloned, err := clone.Clone(a)
			if err != nil {
				return fmt.Errorf("clone annotation: %w", err)
			}
			if cloned.CreationTimestamp == nil {
				cloned.CreationTimestamp = existing.CreationTimestamp
			}
			set.Annotations[i] = cloned
			return nil
		}
	}
	return fmt.Errorf("annotation %s not found in gold set %s.%s: %w", key, corpus, goldSetID, os.ErrNotExist)
}

// DeleteAnnotation deletes an annotation from an existing GoldSet.
func (m *manager) DeleteAnnotation(_ context.Context, corpus, goldSetID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, err := m.lookup(corpus, goldSetID)
	if err != nil {
		return err
	}
	for i, a := range set.Annotations {
		if a.Key() == key {
			set.Annotations = append(set.Annotations[:i], set.Annotations[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("annotation %s not found in gold set %s.%s: %w", key, corpus, goldSetID, os.ErrNotExist)
}

// Close closes the manager.
func (m *manager) Close() error {
	return nil
}

// lookup returns the stored gold set, or os.ErrNotExist when absent.
func (m *manager) lookup(corpus, goldSetID string) (*annotation.GoldSet, error) {
	sets, ok := m.goldSets[corpus]
	if !ok {
		return nil, fmt.Errorf("gold set %s.%s not found: %w", corpus, goldSetID, os.ErrNotExist)
	}
	set, ok := sets[goldSetID]
	if !ok {
		return nil, fmt.Errorf("gold set %s.%s not found: %w", corpus, goldSetID, os.ErrNotExist)
	}
	return set, nil
}
