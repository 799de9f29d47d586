// Package inmemory provides an in-memory storage implementation for metrics.
package inmemory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/KuangshiAi/keo/internal/clone"
	"github.com/KuangshiAi/keo/metric"
)

// manager implements metric.Manager backed by process memory.
type manager struct {
	mu      sync.RWMutex
	metrics map[string][]*metric.EvalMetric
}

// New creates a new in-memory metric manager.
func New() metric.Manager {
	return &manager{metrics: make(map[string][]*metric.EvalMetric)}
}

// List returns all metric names configured for the given corpus and gold set ID.
func (m *manager) List(_ context.Context, corpus, goldSetID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0)
	for _, em := range m.metrics[key(corpus, goldSetID)] {
		if em != nil {
			names = append(names, em.MetricName)
		}
	}
	return names, nil
}

// Save stores the given metrics for the given corpus and gold set ID.
func (m *manager) Save(_ context.Context, corpus, goldSetID string, metrics []*metric.EvalMetric) error {
	cloned := make([]*metric.EvalMetric, 0, len(metrics))
	for _, em := range metrics {
		if em == nil {
			continue
		}
		c, err := clone.Clone(em)
		if err != nil {
			return fmt.Errorf("clone metric %s: %w", em.MetricName, err)
		}
		cloned = append(cloned, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics[key(corpus, goldSetID)] = cloned
	return nil
}

// Get gets a metric by name for the given corpus and gold set ID.
func (m *manager) Get(_ context.Context, corpus, goldSetID, metricName string) (*metric.EvalMetric, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, em := range m.metrics[key(corpus, goldSetID)] {
		if em != nil && em.MetricName == metricName {
			cloned, err := clone.Clone(em)
			if err != nil {
				return nil, fmt.Errorf("clone metric %s: %w", metricName, err)
			}
			return cloned, nil
		}
	}
	return nil, fmt.Errorf("metric %s not found: %w", metricName, os.ErrNotExist)
}

// Delete removes a metric by name for the given corpus and gold set ID.
func (m *manager) Delete(_ context.Context, corpus, goldSetID, metricName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(corpus, goldSetID)
	for i, em := range m.metrics[k] {
		if em != nil && em.MetricName == metricName {
			m.metrics[k] = append(m.metrics[k][:i], m.metrics[k][i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("metric %s not found: %w", metricName, os.ErrNotExist)
}

// Close closes the manager.
func (m *manager) Close() error {
	return nil
}

func key(corpus, goldSetID string) string {
	return corpus + "\x00" + goldSetID
}
