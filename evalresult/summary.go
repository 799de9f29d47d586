package evalresult

import (
	internalstatus "github.com/KuangshiAi/keo/internal/status"
	"github.com/KuangshiAi/keo/status"
)

// ReportSummary summarizes a multi-run report for easier inspection.
type ReportSummary struct {
	// OverallStatus summarizes the aggregated status across all runs.
	OverallStatus status.EvalStatus `json:"overallStatus,omitempty"`
	// NumRuns is the number of runs contained in the report.
	NumRuns int `json:"numRuns,omitempty"`
	// RunStatusCounts counts the overall status of each run.
	RunStatusCounts *StatusCounts `json:"runStatusCounts,omitempty"`
	// MetricSummaries contains aggregated metric outcomes across runs.
	MetricSummaries []*MetricSummary `json:"metricSummaries,omitempty"`
}

// MetricSummary summarizes one metric across runs.
type MetricSummary struct {
	// MetricName identifies the metric.
	MetricName string `json:"metricName,omitempty"`
	// AverageScore is the score averaged across runs that evaluated the metric.
	AverageScore float64 `json:"averageScore"`
	// EvalStatus is the aggregated status across runs.
	EvalStatus status.EvalStatus `json:"evalStatus,omitempty"`
	// Threshold is the threshold that was used.
	Threshold float64 `json:"threshold"`
	// StatusCounts counts metric statuses across runs.
	StatusCounts *StatusCounts `json:"statusCounts,omitempty"`
}

// StatusCounts records a simple histogram of evaluation statuses.
type StatusCounts struct {
	// Passed is the count of passed statuses.
	Passed int `json:"passed,omitempty"`
	// Failed is the count of failed statuses.
	Failed int `json:"failed,omitempty"`
	// NotEvaluated is the count of not evaluated statuses.
	NotEvaluated int `json:"notEvaluated,omitempty"`
}

// add records one status in the histogram.
func (c *StatusCounts) add(s status.EvalStatus) {
	switch s {
	case status.EvalStatusPassed:
		c.Passed++
	case status.EvalStatusFailed:
		c.Failed++
	default:
		c.NotEvaluated++
	}
}

// Summarize aggregates a report's runs into a summary: run status counts and
// per-metric average scores with reduced statuses.
func Summarize(report *EvalReport) (*ReportSummary, error) {
	summary := &ReportSummary{
		NumRuns:         len(report.Runs),
		RunStatusCounts: &StatusCounts{},
	}

	runStatuses := make([]status.EvalStatus, 0, len(report.Runs))
	type metricAgg struct {
		summary  *MetricSummary
		total    float64
		scored   int
		statuses []status.EvalStatus
	}
	aggs := make(map[string]*metricAgg)
	order := make([]string, 0)

	for _, run := range report.Runs {
		if run == nil {
			continue
		}
		runStatuses = append(runStatuses, run.OverallStatus)
		summary.RunStatusCounts.add(run.OverallStatus)
		for _, mr := range run.MetricResults {
			if mr == nil {
				continue
			}
			agg, ok := aggs[mr.MetricName]
			if !ok {
				agg = &metricAgg{summary: &MetricSummary{
					MetricName:   mr.MetricName,
					Threshold:    mr.Threshold,
					StatusCounts: &StatusCounts{},
				}}
				aggs[mr.MetricName] = agg
				order = append(order, mr.MetricName)
			}
			agg.summary.StatusCounts.add(mr.EvalStatus)
			agg.statuses = append(agg.statuses, mr.EvalStatus)
			if mr.EvalStatus == status.EvalStatusPassed || mr.EvalStatus == status.EvalStatusFailed {
				agg.total += mr.Score
				agg.scored++
			}
		}
	}

	overall, err := internalstatus.Summarize(runStatuses)
	if err != nil {
		return nil, err
	}
	summary.OverallStatus = overall

	for _, name := range order {
		agg := aggs[name]
		if agg.scored > 0 {
			agg.summary.AverageScore = agg.total / float64(agg.scored)
		}
		reduced, err := internalstatus.Summarize(agg.statuses)
		if err != nil {
			return nil, err
		}
		agg.summary.EvalStatus = reduced
		summary.MetricSummaries = append(summary.MetricSummaries, agg.summary)
	}
	return summary, nil
}
