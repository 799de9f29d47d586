package evalresult

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KuangshiAi/keo/status"
)

func TestSummarizeMultiRun(t *testing.T) {
	report := &EvalReport{
		ReportID: "r1",
		Runs: []*RunResult{
			{
				RunID:         0,
				OverallStatus: status.EvalStatusPassed,
				MetricResults: []*MetricResult{
					{MetricName: "entity_linking_f1", Score: 0.8, Threshold: 0.7, EvalStatus: status.EvalStatusPassed},
				},
			},
			{
				RunID:         1,
				OverallStatus: status.EvalStatusFailed,
				MetricResults: []*MetricResult{
					{MetricName: "entity_linking_f1", Score: 0.6, Threshold: 0.7, EvalStatus: status.EvalStatusFailed},
				},
			},
		},
	}

	summary, err := Summarize(report)
	require.NoError(t, err)
	assert.Equal(t, status.EvalStatusFailed, summary.OverallStatus)
	assert.Equal(t, 2, summary.NumRuns)
	assert.Equal(t, 1, summary.RunStatusCounts.Passed)
	assert.Equal(t, 1, summary.RunStatusCounts.Failed)

	require.Len(t, summary.MetricSummaries, 1)
	ms := summary.MetricSummaries[0]
	assert.Equal(t, "entity_linking_f1", ms.MetricName)
	assert.InDelta(t, 0.7, ms.AverageScore, 1e-9)
	assert.Equal(t, status.EvalStatusFailed, ms.EvalStatus)
	assert.Equal(t, 1, ms.StatusCounts.Passed)
	assert.Equal(t, 1, ms.StatusCounts.Failed)
}

func TestSummarizeSkipsNotEvaluatedScores(t *testing.T) {
	report := &EvalReport{
		Runs: []*RunResult{
			{
				OverallStatus: status.EvalStatusPassed,
				MetricResults: []*MetricResult{
					{MetricName: "m", Score: 1.0, EvalStatus: status.EvalStatusPassed},
				},
			},
			{
				OverallStatus: status.EvalStatusNotEvaluated,
				MetricResults: []*MetricResult{
					{MetricName: "m", Score: 0, EvalStatus: status.EvalStatusNotEvaluated},
				},
			},
		},
	}
	summary, err := Summarize(report)
	require.NoError(t, err)
	assert.Equal(t, status.EvalStatusPassed, summary.OverallStatus)
	require.Len(t, summary.MetricSummaries, 1)
	assert.Equal(t, 1.0, summary.MetricSummaries[0].AverageScore)
	assert.Equal(t, 1, summary.MetricSummaries[0].StatusCounts.NotEvaluated)
}

func TestSummarizeEmptyReport(t *testing.T) {
	summary, err := Summarize(&EvalReport{})
	require.NoError(t, err)
	assert.Equal(t, status.EvalStatusNotEvaluated, summary.OverallStatus)
	assert.Zero(t, summary.NumRuns)
	assert.Empty(t, summary.MetricSummaries)
}
