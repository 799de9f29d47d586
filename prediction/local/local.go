// Package local provides a local file storage manager implementation for prediction sets.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/KuangshiAi/keo/epochtime"
	"github.com/KuangshiAi/keo/prediction"
)

const (
	fileSuffix     = ".predictions.json"
	tempFileSuffix = ".tmp"
	dirPermission  = 0o755
	filePermission = 0o644
)

// manager implements prediction.Manager backed by the local filesystem.
type manager struct {
	mu      sync.RWMutex
	baseDir string
}

// New creates a local file prediction set manager rooted at baseDir.
func New(baseDir string) prediction.Manager {
	if baseDir == "" {
		baseDir = "."
	}
	return &manager{baseDir: baseDir}
}

// Get gets a prediction Set identified by predictionSetID.
func (m *manager) Get(_ context.Context, corpus, predictionSetID string) (*prediction.Set, error) {
	if corpus == "" || predictionSetID == "" {
		return nil, errors.New("corpus and prediction set id must not be empty")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	path := m.path(corpus, predictionSetID)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	var set prediction.Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("unmarshal file %s: %w", path, err)
	}
	return &set, nil
}

// Put stores a prediction Set, overwriting any existing set with the same ID.
func (m *manager) Put(_ context.Context, corpus string, set *prediction.Set) error {
	if set == nil {
		return errors.New("prediction set is nil")
	}
	if corpus == "" || set.PredictionSetID == "" {
		return errors.New("corpus and prediction set id must not be empty")
	}
	if set.CreationTimestamp == nil {
		set.CreationTimestamp = epochtime.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path := m.path(corpus, set.PredictionSetID)
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
	if err := encoder.Encode(set); err != nil {
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

// List lists all prediction set IDs for the given corpus.
func (m *manager) List(_ context.Context, corpus string) ([]string, error) {
	dir := filepath.Join(m.baseDir, corpus)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var results []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), fileSuffix) {
			results = append(results, strings.TrimSuffix(entry.Name(), fileSuffix))
		}
	}
	return results, nil
}

// Delete deletes the prediction Set identified by predictionSetID.
func (m *manager) Delete(_ context.Context, corpus, predictionSetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	path := m.path(corpus, predictionSetID)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove file %s: %w", path, err)
	}
	return nil
}

// Close closes the manager.
func (m *manager) Close() error {
	return nil
}

func (m *manager) path(corpus, predictionSetID string) string {
	return filepath.Join(m.baseDir, corpus, predictionSetID+fileSuffix)
}
