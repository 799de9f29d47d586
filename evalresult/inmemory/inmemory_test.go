package inmemory

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KuangshiAi/keo/evalresult"
	"github.com/KuangshiAi/keo/status"
)

func TestSaveAssignsIDAndGet(t *testing.T) {
	ctx := context.Background()
	m := New()
	defer m.Close()

	report := &evalresult.EvalReport{
		GoldSetID: "gold1",
		Tool:      "linker",
		Runs: []*evalresult.RunResult{
			{RunID: 0, OverallStatus: status.EvalStatusPassed},
		},
	}
	id, err := m.Save(ctx, "aviation", report)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := m.Get(ctx, "aviation", id)
	require.NoError(t, err)
	assert.Equal(t, "linker", got.Tool)
	assert.Equal(t, id, got.ReportID)
}

func TestSaveAssignsIDToCaller(t *testing.T) {
	ctx := context.Background()
	m := New()
	defer m.Close()

	report := &evalresult.EvalReport{Tool: "linker"}
	id, err := m.Save(ctx, "aviation", report)
	require.NoError(t, err)
	assert.Equal(t, id, report.ReportID)
}

func TestSaveKeepsExplicitID(t *testing.T) {
	ctx := context.Background()
	m := New()
	defer m.Close()

	id, err := m.Save(ctx, "aviation", &evalresult.EvalReport{ReportID: "fixed"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)
}

func TestGetReturnsClone(t *testing.T) {
	ctx := context.Background()
	m := New()
	defer m.Close()

	id, err := m.Save(ctx, "aviation", &evalresult.EvalReport{Tool: "linker"})
	require.NoError(t, err)

	got, err := m.Get(ctx, "aviation", id)
	require.NoError(t, err)
	got.Tool = "mutated"

	again, err := m.Get(ctx, "aviation", id)
	require.NoError(t, err)
	assert.Equal(t, "linker", again.Tool)
}

func TestGetNotFound(t *testing.T) {
	m := New()
	defer m.Close()

	_, err := m.Get(context.Background(), "aviation", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestListSorted(t *testing.T) {
	ctx := context.Background()
	m := New()
	defer m.Close()

	_, err := m.Save(ctx, "aviation", &evalresult.EvalReport{ReportID: "b"})
	require.NoError(t, err)
	_, err = m.Save(ctx, "aviation", &evalresult.EvalReport{ReportID: "a"})
	require.NoError(t, err)

	ids, err := m.List(ctx, "aviation")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	empty, err := m.List(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSaveNil(t *testing.T) {
	m := New()
	defer m.Close()
	_, err := m.Save(context.Background(), "aviation", nil)
	require.Error(t, err)
}
