// Package evalresult provides evaluation report types and storage managers.
package evalresult

import (
	"context"

	"github.com/KuangshiAi/keo/epochtime"
	"github.com/KuangshiAi/keo/evaluator"
	"github.com/KuangshiAi/keo/linking"
	"github.com/KuangshiAi/keo/metric/policy"
	"github.com/KuangshiAi/keo/status"
)

// EvalReport is the evaluation result of one tool's prediction set over one
// gold set, possibly across multiple runs.
type EvalReport struct {
	// ReportID uniquely identifies this report.
	ReportID string `json:"reportId,omitempty"`
	// Corpus identifies the document corpus.
	Corpus string `json:"corpus,omitempty"`
	// GoldSetID identifies the gold set evaluated against.
	GoldSetID string `json:"goldSetId,omitempty"`
	// PredictionSetID identifies the evaluated prediction set.
	PredictionSetID string `json:"predictionSetId,omitempty"`
	// Tool names the NLP tool that produced the predictions.
	Tool string `json:"tool,omitempty"`
	// Runs contains the result of each evaluation run.
	Runs []*RunResult `json:"runs,omitempty"`
	// CreationTimestamp when this report was created.
	CreationTimestamp *epochtime.EpochTime `json:"creationTimestamp,omitempty"`
}

// RunResult is the result of a single evaluation run.
type RunResult struct {
	// RunID identifies the run within the report, starting at 0.
	RunID int `json:"runId"`
	// OverallStatus summarizes the metric statuses of this run.
	OverallStatus status.EvalStatus `json:"overallStatus,omitempty"`
	// ErrorMessage contains the error message when the run failed to execute.
	ErrorMessage string `json:"errorMessage,omitempty"`
	// MetricResults contains the result for each evaluated metric.
	MetricResults []*MetricResult `json:"metricResults,omitempty"`
}

// MetricResult is the result of a single metric evaluation.
type MetricResult struct {
	// MetricName identifies the metric.
	MetricName string `json:"metricName,omitempty"`
	// Score obtained for this metric.
	Score float64 `json:"score"`
	// EvalStatus of this metric evaluation.
	EvalStatus status.EvalStatus `json:"evalStatus,omitempty"`
	// Threshold that was used.
	Threshold float64 `json:"threshold"`
	// Criterion contains the matching policies used for this evaluation.
	Criterion *policy.Criterion `json:"criterion,omitempty"`
	// Tally contains the link classification counts for linking metrics.
	Tally *linking.Tally `json:"tally,omitempty"`
	// Links contains per-annotation classifications for linking metrics.
	Links []*linking.LinkResult `json:"links,omitempty"`
	// Answers contains per-question results for ground-truth metrics.
	Answers []*evaluator.AnswerResult `json:"answers,omitempty"`
}

// Manager defines the interface for managing evaluation reports.
type Manager interface {
	// Save stores a report and returns its ID, assigning one when empty.
	Save(ctx context.Context, corpus string, report *EvalReport) (string, error)
	// Get retrieves a report by reportID.
	Get(ctx context.Context, corpus, reportID string) (*EvalReport, error)
	// List returns all report IDs for the given corpus.
	List(ctx context.Context, corpus string) ([]string, error)
	// Close closes the manager and releases owned resources.
	Close() error
}
