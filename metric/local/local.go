// Package local provides a local file storage manager implementation for metrics.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/KuangshiAi/keo/metric"
)

const (
	tempFileSuffix = ".tmp"
	dirPermission  = 0o755
	filePermission = 0o644
)

// manager implements metric.Manager backed by the local filesystem.
type manager struct {
	mu      sync.RWMutex
	baseDir string
	locator metric.Locator
}

// New creates a filesystem-backed metric manager.
func New(opts ...metric.Option) metric.Manager {
	options := metric.NewOptions(opts...)
	return &manager{
		baseDir: options.BaseDir,
		locator: options.Locator,
	}
}

// List returns all metric names configured for the given corpus and gold set ID.
func (m *manager) List(_ context.Context, corpus, goldSetID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	metrics, err := m.load(corpus, goldSetID)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load metrics %s.%s: %w", corpus, goldSetID, err)
	}
	names := make([]string, 0, len(metrics))
	for _, em := range metrics {
		if em != nil {
			names = append(names, em.MetricName)
		}
	}
	return names, nil
}

// Save stores the given metrics for the given corpus and gold set ID.
func (m *manager) Save(_ context.Context, corpus, goldSetID string, metrics []*metric.EvalMetric) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store(corpus, goldSetID, metrics)
}

// store writes the metrics file using a temp file and rename.
func (m *manager) store(corpus, goldSetID string, metrics []*metric.EvalMetric) error {
	path := m.locator.Build(m.baseDir, corpus, goldSetID)
	if err := os.MkdirAll(filepath.Dir(path), dirPermission); err != nil {
		return fmt.Errorf("mkdir all %s: %w", filepath.Dir(path), err)
	}
	tmp := path + tempFileSuffix
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePermission)
	if err != nil {
		return fmt.Errorf("open file %s: %w", tmp, err)
	}
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(metrics); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode file %s: %w", tmp, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename file %s to %s: %w", tmp, path, err)
	}
	return nil
}

// Get gets a metric by name for the given corpus and gold set ID.
func (m *manager) Get(_ context.Context, corpus, goldSetID, metricName string) (*metric.EvalMetric, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	metrics, err := m.load(corpus, goldSetID)
	if err != nil {
		return nil, fmt.Errorf("load metrics %s.%s: %w", corpus, goldSetID, err)
	}
	for _, em := range metrics {
		if em != nil && em.MetricName == metricName {
			return em, nil
		}
	}
	return nil, fmt.Errorf("metric %s not found: %w", metricName, os.ErrNotExist)
}

// Delete removes a metric by name for the given corpus and gold set ID.
func (m *manager) Delete(_ context.Context, corpus, goldSetID, metricName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	metrics, err := m.load(corpus, goldSetID)
	if err != nil {
		return fmt.Errorf("load metrics %s.%s: %w", corpus, goldSetID, err)
	}
	for i, em := range metrics {
		if em != nil && em.MetricName == metricName {
			return m.store(corpus, goldSetID, append(metrics[:i], metrics[i+1:]...))
		}
	}
	return fmt.Errorf("metric %s not found: %w", metricName, os.ErrNotExist)
}

// Close closes the manager.
func (m *manager) Close() error {
	return nil
}

// load loads the metrics from the file system.
func (m *manager) load(corpus, goldSetID string) ([]*metric.EvalMetric, error) {
	path := m.locator.Build(m.baseDir, corpus, goldSetID)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var metrics []*metric.EvalMetric
	if err := json.Unmarshal(data, &metrics); err != nil {
		return nil, fmt.Errorf("unmarshal file %s: %w", path, err)
	}
	return metrics, nil
}
