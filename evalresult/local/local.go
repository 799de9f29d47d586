// Package local provides a local file storage implementation for reports.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/KuangshiAi/keo/evalresult"
)

const (
	tempFileSuffix = ".tmp"
	dirPermission  = 0o755
	filePermission = 0o644
)

// manager implements evalresult.Manager using local file storage.
type manager struct {
	mu      sync.Mutex
	baseDir string
	locator evalresult.Locator
}

// New creates a filesystem-backed report manager.
func New(opt ...evalresult.Option) evalresult.Manager {
	opts := evalresult.NewOptions(opt...)
	return &manager{
		baseDir: opts.BaseDir,
		locator: opts.Locator,
	}
}

// Save stores a report and returns its ID, assigning one when empty.
func (m *manager) Save(_ context.Context, corpus string, report *evalresult.EvalReport) (string, error) {
	if report == nil {
		return "", errors.New("report is nil")
	}
	if report.ReportID == "" {
		report.ReportID = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path := m.locator.Build(m.baseDir, corpus, report.ReportID)
	if err := os.MkdirAll(filepath.Dir(path), dirPermission); err != nil {
		return "", fmt.Errorf("mkdir all %s: %w", filepath.Dir(path), err)
	}
	tmp := path + tempFileSuffix
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePermission)
	if err != nil {
		return "", fmt.Errorf("open file %s: %w", tmp, err)
	}
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		file.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("encode file %s: %w", tmp, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("rename file %s to %s: %w", tmp, path, err)
	}
	return report.ReportID, nil
}

// Get retrieves a report by reportID.
func (m *manager) Get(_ context.Context, corpus, reportID string) (*evalresult.EvalReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path := m.locator.Build(m.baseDir, corpus, reportID)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report %s.%s: %w", corpus, reportID, err)
	}
	report := &evalresult.EvalReport{}
	if err := json.Unmarshal(data, report); err != nil {
		return nil, fmt.Errorf("unmarshal file %s: %w", path, err)
	}
	return report, nil
}

// List returns all report IDs for the given corpus.
func (m *manager) List(_ context.Context, corpus string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids, err := m.locator.List(m.baseDir, corpus)
	if err != nil {
		return nil, fmt.Errorf("list reports %s: %w", corpus, err)
	}
	return ids, nil
}

// Close closes the manager.
func (m *manager) Close() error {
	return nil
}
