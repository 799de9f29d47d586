// Package metric provides evaluation metrics.
package metric

import (
	"context"

	"github.com/KuangshiAi/keo/metric/policy"
)

// EvalMetric represents a metric used to evaluate one aspect of a prediction set.
type EvalMetric struct {
	// MetricName identifies the metric.
	MetricName string `json:"metricName"`
	// Threshold is the minimum score for the metric to pass.
	Threshold float64 `json:"threshold"`
	// Criterion carries the matching policies for this metric.
	Criterion *policy.Criterion `json:"criterion,omitempty"`
}

// Manager defines the interface for managing evaluation metrics.
type Manager interface {
	// List returns all metric names configured for the given corpus and gold set ID.
	List(ctx context.Context, corpus, goldSetID string) ([]string, error)
	// Save stores the given metrics for the given corpus and gold set ID.
	Save(ctx context.Context, corpus, goldSetID string, metrics []*EvalMetric) error
	// Get gets a metric by name for the given corpus and gold set ID.
	Get(ctx context.Context, corpus, goldSetID, metricName string) (*EvalMetric, error)
	// Delete removes a metric by name for the given corpus and gold set ID.
	Delete(ctx context.Context, corpus, goldSetID, metricName string) error
	// Close closes the manager and releases owned resources.
	Close() error
}
