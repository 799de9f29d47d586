package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KuangshiAi/keo/evalresult"
	"github.com/KuangshiAi/keo/linking"
	"github.com/KuangshiAi/keo/status"
)

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	m := New(evalresult.WithBaseDir(dir))
	defer m.Close()

	report := &evalresult.EvalReport{
		GoldSetID: "gold1",
		Tool:      "linker",
		Runs: []*evalresult.RunResult{
			{
				RunID:         0,
				OverallStatus: status.EvalStatusPassed,
				MetricResults: []*evalresult.MetricResult{
					{
						MetricName: "entity_linking_f1",
						Score:      0.9,
						Threshold:  0.8,
						EvalStatus: status.EvalStatusPassed,
						Tally:      &linking.Tally{TP: 9, FP: 1, FN: 1},
					},
				},
			},
		},
	}
	id, err := m.Save(ctx, "aviation", report)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = os.Stat(filepath.Join(dir, "aviation", id+".report.json"))
	require.NoError(t, err)

	got, err := m.Get(ctx, "aviation", id)
	require.NoError(t, err)
	assert.Equal(t, "linker", got.Tool)
	require.Len(t, got.Runs, 1)
	require.Len(t, got.Runs[0].MetricResults, 1)
	assert.Equal(t, 9, got.Runs[0].MetricResults[0].Tally.TP)
}

func TestGetMissing(t *testing.T) {
	m := New(evalresult.WithBaseDir(t.TempDir()))
	defer m.Close()

	_, err := m.Get(context.Background(), "aviation", "missing")
	require.Error(t, err)
}

func TestListEmptyCorpus(t *testing.T) {
	m := New(evalresult.WithBaseDir(t.TempDir()))
	defer m.Close()

	ids, err := m.List(context.Background(), "aviation")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestListReports(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	m := New(evalresult.WithBaseDir(dir))
	defer m.Close()

	_, err := m.Save(ctx, "aviation", &evalresult.EvalReport{ReportID: "r1"})
	require.NoError(t, err)
	_, err = m.Save(ctx, "aviation", &evalresult.EvalReport{ReportID: "r2"})
	require.NoError(t, err)

	ids, err := m.List(ctx, "aviation")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"r1", "r2"}, ids)
}

func TestSaveNilReport(t *testing.T) {
	m := New(evalresult.WithBaseDir(t.TempDir()))
	defer m.Close()

	_, err := m.Save(context.Background(), "aviation", nil)
	require.Error(t, err)
}
