package evalresult

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// defaultReportFileSuffix is the default suffix for report files.
const defaultReportFileSuffix = ".report.json"

// Locator provides Build and List methods for locating report files.
type Locator interface {
	// Build builds the path of a report file for the given corpus and reportID.
	Build(baseDir, corpus, reportID string) string
	// List lists all report IDs for the given corpus.
	List(baseDir, corpus string) ([]string, error)
}

// locator is the default Locator implementation.
type locator struct{}

// Build builds the path of a report file.
func (l *locator) Build(baseDir, corpus, reportID string) string {
	return filepath.Join(baseDir, corpus, reportID+defaultReportFileSuffix)
}

// List lists all report IDs for the given corpus.
func (l *locator) List(baseDir, corpus string) ([]string, error) {
	dir := filepath.Join(baseDir, corpus)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), defaultReportFileSuffix) {
			ids = append(ids, strings.TrimSuffix(entry.Name(), defaultReportFileSuffix))
		}
	}
	return ids, nil
}
