// Package local provides a local file storage manager implementation for gold sets.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/KuangshiAi/keo/annotation"
	"github.com/KuangshiAi/keo/epochtime"
	"github.com/KuangshiAi/keo/internal/clone"
)

const (
	defaultTempFileSuffix = ".tmp"
	defaultDirPermission  = 0o755
	defaultFilePermission = 0o644
)

// manager implements annotation.Manager backed by the local filesystem.
type manager struct {
	mu      sync.RWMutex
	baseDir string
	locator annotation.Locator
}

// New creates a local file gold set manager.
func New(opt ...annotation.Option) annotation.Manager {
	opts := annotation.NewOptions(opt...)
	return &manager{
		baseDir: opts.BaseDir,
		locator: opts.Locator,
	}
}

// Get gets a GoldSet identified by goldSetID.
// Returns an error if the GoldSet does not exist.
func (m *manager) Get(_ context.Context, corpus, goldSetID string) (*annotation.GoldSet, error) {
	if corpus == "" {
		return nil, errors.New("corpus is empty")
	}
	if goldSetID == "" {
		return nil, errors.New("gold set id is empty")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, err := m.load(corpus, goldSetID)
	if err != nil {
		return nil, fmt.Errorf("load gold set %s.%s: %w", corpus, goldSetID, err)
	}
	return set, nil
}

// Create creates a GoldSet.
// Returns an error if the GoldSet already exists.
func (m *manager) Create(_ context.Context, corpus, goldSetID string) (*annotation.GoldSet, error) {
	if corpus == "" {
		return nil, errors.New("corpus is empty")
	}
	if goldSetID == "" {
		return nil, errors.New("gold set id is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.load(corpus, goldSetID); err == nil {
		return nil, fmt.Errorf("gold set %s.%s already exists", corpus, goldSetID)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load gold set %s.%s: %w", corpus, goldSetID, err)
	}
	set := &annotation.GoldSet{
		GoldSetID:         goldSetID,
		Name:              goldSetID,
		Annotations:       []*annotation.Annotation{},
		CreationTimestamp: epochtime.Now(),
	}
	if err := m.store(corpus, set); err != nil {
		return nil, fmt.Errorf("store gold set %s.%s: %w", corpus, goldSetID, err)
	}
	return set, nil
}

// List lists all GoldSet IDs for the given corpus.
func (m *manager) List(_ context.Context, corpus string) ([]string, error) {
	if corpus == "" {
		return nil, errors.New("corpus is empty")
	}
	goldSetIDs, err := m.locator.List(m.baseDir, corpus)
	if err != nil {
		return nil, fmt.Errorf("list gold sets for corpus %s: %w", corpus, err)
	}
	return goldSetIDs, nil
}

// Delete deletes the GoldSet identified by goldSetID.
// Returns an error if the GoldSet does not exist.
func (m *manager) Delete(_ context.Context, corpus, goldSetID string) error {
	if corpus == "" {
		return errors.New("corpus is empty")
	}
	if goldSetID == "" {
		return errors.New("gold set id is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.load(corpus, goldSetID); err != nil {
		return fmt.Errorf("load gold set %s.%s: %w", corpus, goldSetID, err)
	}
	path := m.locator.Build(m.baseDir, corpus, goldSetID)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove file %s: %w", path, err)
	}
	return nil
}

// AddAnnotation adds an annotation to an existing GoldSet.
// Returns an error if the GoldSet does not exist or the annotation already exists.
func (m *manager) AddAnnotation(_ context.Context, corpus, goldSetID string, a *annotation.Annotation) error {
	if a == nil {
		return errors.New("annotation is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	set, err := m.load(corpus, goldSetID)
	if err != nil {
		return fmt.Errorf("load gold set %s.%s: %w", corpus, goldSetID, err)
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
	if err := m.store(corpus, set); err != nil {
		return fmt.Errorf("store gold set %s.%s: %w", corpus, goldSetID, err)
	}
	return nil
}

// GetAnnotation gets an annotation from an existing GoldSet by its key.
func (m *manager) GetAnnotation(_ context.Context, corpus, goldSetID, key string) (*annotation.Annotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, err := m.load(corpus, goldSetID)
	if err != nil {
		return nil, fmt.Errorf("load gold set %s.%s: %w", corpus, goldSetID, err)
	}
	for _, a := range set.Annotations {
		if a.Key() == key {
			return a, nil
		}
	}
	return nil, fmt.Errorf("annotation %s not found in gold set %s.%s: %w", key, corpus, goldSetID, os.ErrNotExist)
}

// UpdateAnnotation replaces the annotation identified by key.
// Returns an error if the GoldSet or the annotation does not exist.
func (m *manager) UpdateAnnotation(_ context.Context, corpus, goldSetID, key string, a *annotation.Annotation) error {
	if a == nil {
		return errors.New("annotation is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	set, err := m.load(corpus, goldSetID)
	if err != nil {
		return fmt.Errorf("load gold set %s.%s: %w", corpus, goldSetID, err)
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
			if err := m.store(corpus, set); err != nil {
				return fmt.Errorf("store gold set %s.%s: %w", corpus, goldSetID, err)
			}
			return nil
		}
	}
	return fmt.Errorf("annotation %s not found in gold set %s.%s: %w", key, corpus, goldSetID, os.ErrNotExist)
}

// DeleteAnnotation deletes an annotation from an existing GoldSet.
// Returns an error if the GoldSet or the annotation does not exist.
func (m *manager) DeleteAnnotation(_ context.Context, corpus, goldSetID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, err := m.load(corpus, goldSetID)
	if err != nil {
		return fmt.Errorf("load gold set %s.%s: %w", corpus, goldSetID, err)
	}
	for i, a := range set.Annotations {
		if a.Key() == key {
			set.Annotations = append(set.Annotations[:i], set.Annotations[i+1:]...)
			if err := m.store(corpus, set); err != nil {
				return fmt.Errorf("store gold set %s.%s: %w", corpus, goldSetID, err)
			}
			return nil
		}
	}
	return fmt.Errorf("annotation %s not found in gold set %s.%s: %w", key, corpus, goldSetID, os.ErrNotExist)
}

// Close closes the manager.
func (m *manager) Close() error {
	return nil
}

// load loads the GoldSet from the file system.
func (m *manager) load(corpus, goldSetID string) (*annotation.GoldSet, error) {
	path := m.locator.Build(m.baseDir, corpus, goldSetID)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	var set annotation.GoldSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("unmarshal file %s: %w", path, err)
	}
	if set.Annotations == nil {
		set.Annotations = []*annotation.Annotation{}
	}
	return &set, nil
}

// store stores the GoldSet to the file system using a temp file and rename.
func (m *manager) store(corpus string, set *annotation.GoldSet) error {
	if set == nil {
		return errors.New("gold set is nil")
	}
	path := m.locator.Build(m.baseDir, corpus, set.GoldSetID)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, defaultDirPermission); err != nil {
		return fmt.Errorf("mkdir all %s: %w", dir, err)
	}
	tmp := path + defaultTempFileSuffix
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, defaultFilePermission)
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
