package annotation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// defaultGoldSetFileSuffix is the default suffix for gold set files.
const defaultGoldSetFileSuffix = ".goldset.json"

// Locator provides Build and List methods for locating gold set files.
type Locator interface {
	// Build builds the path of a gold set file for the given corpus and goldSetID.
	Build(baseDir, corpus, goldSetID string) string
	// List lists all gold set IDs for the given corpus.
	List(baseDir, corpus string) ([]string, error)
}

// locator is the default Locator implementation.
type locator struct {
}

// Build builds the path of a gold set file.
func (l *locator) Build(baseDir, corpus, goldSetID string) string {
	return filepath.Join(baseDir, corpus, goldSetID+defaultGoldSetFileSuffix)
}

// List lists all gold set IDs for the given corpus.
func (l *locator) List(baseDir, corpus string) ([]string, error) {
	dir := filepath.Join(baseDir, corpus)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	var results []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), defaultGoldSetFileSuffix) {
			name := strings.TrimSuffix(entry.Name(), defaultGoldSetFileSuffix)
			results = append(results, name)
		}
	}
	return results, nil
}
