package metric

import "path/filepath"

// defaultMetricsFileSuffix is the default suffix for metric files.
const defaultMetricsFileSuffix = ".metrics.json"

// Locator defines the interface for locating metric files.
type Locator interface {
	// Build builds the path of a metric file for the given corpus and gold set ID.
	Build(baseDir, corpus, goldSetID string) string
}

// locator is the default Locator implementation.
type locator struct{}

// Build builds the path of a metric file.
func (l *locator) Build(baseDir, corpus, goldSetID string) string {
	return filepath.Join(baseDir, corpus, goldSetID+defaultMetricsFileSuffix)
}
