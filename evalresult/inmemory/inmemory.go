// Package inmemory provides an in-memory storage implementation for reports.
package inmemory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/KuangshiAi/keo/evalresult"
	"github.com/KuangshiAi/keo/internal/clone"
)

// manager implements evalresult.Manager backed by process memory.
type manager struct {
	mu      sync.RWMutex
	reports map[string]map[string]*evalresult.EvalReport
}

// New creates a new in-memory report manager.
func New() evalresult.Manager {
	return &manager{reports: make(map[string]map[string]*evalresult.EvalReport)}
}

// Save stores a report and returns its ID, assigning one when empty.
func (m *manager) Save(_ context.Context, corpus string, report *evalresult.EvalReport) (string, error) {
	if report == nil {
		return "", errors.New("report is nil")
	}
	if report.ReportID == "" {
		report.ReportID = uuid.NewString()
	}
	cloned, err := clone.Clone(report)
	if err != nil {
		return "", fmt.Errorf("clone report: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reports[corpus] == nil {
		m.reports[corpus] = make(map[string]*evalresult.EvalReport)
	}
	m.reports[corpus][cloned.ReportID] = cloned
	return cloned.ReportID, nil
}

// Get retrieves a report by reportID.
func (m *manager) Get(_ context.Context, corpus, reportID string) (*evalresult.EvalReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	report, ok := m.reports[corpus][reportID]
	if !ok {
		return nil, fmt.Errorf("report %s.%s not found: %w", corpus, reportID, os.ErrNotExist)
	}
	cloned, err := clone.Clone(report)
	if err != nil {
		return nil, fmt.Errorf("clone report: %w", err)
	}
	return cloned, nil
}

// List returns all report IDs for the given corpus sorted lexicographically.
func (m *manager) List(_ context.Context, corpus string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.reports[corpus]))
	for id := range m.reports[corpus] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close closes the manager.
func (m *manager) Close() error {
	return nil
}
