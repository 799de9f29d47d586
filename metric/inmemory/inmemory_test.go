package inmemory

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KuangshiAi/keo/metric"
	"github.com/KuangshiAi/keo/metric/policy"
)

func TestManagerSaveGetList(t *testing.T) {
	ctx := context.Background()
	mgr := New()
	defer mgr.Close()

	metrics := []*metric.EvalMetric{
		{
			MetricName: metric.MetricEntityLinkingF1,
			Threshold:  0.8,
			Criterion:  &policy.Criterion{Link: policy.Default()},
		},
		{
			MetricName: metric.MetricMentionDetectionF1,
			Threshold:  0.9,
		},
	}
	require.NoError(t, mgr.Save(ctx, "aviation", "gold1", metrics))

	names, err := mgr.List(ctx, "aviation", "gold1")
	require.NoError(t, err)
	assert.Equal(t, []string{metric.MetricEntityLinkingF1, metric.MetricMentionDetectionF1}, names)

	got, err := mgr.Get(ctx, "aviation", "gold1", metric.MetricEntityLinkingF1)
	require.NoError(t, err)
	assert.Equal(t, 0.8, got.Threshold)
	require.NotNil(t, got.Criterion)
	require.NotNil(t, got.Criterion.Link)
	assert.Equal(t, policy.MatchStrategyStrong, got.Criterion.Link.MatchStrategy)
}

func TestManagerGetNotFound(t *testing.T) {
	ctx := context.Background()
	mgr := New()
	defer mgr.Close()

	_, err := mgr.Get(ctx, "aviation", "gold1", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestManagerGetReturnsClone(t *testing.T) {
	ctx := context.Background()
	mgr := New()
	defer mgr.Close()

	require.NoError(t, mgr.Save(ctx, "aviation", "gold1", []*metric.EvalMetric{
		{MetricName: metric.MetricEntityLinkingF1, Threshold: 0.5},
	}))

	got, err := mgr.Get(ctx, "aviation", "gold1", metric.MetricEntityLinkingF1)
	require.NoError(t, err)
	got.Threshold = 0.99

	again, err := mgr.Get(ctx, "aviation", "gold1", metric.MetricEntityLinkingF1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, again.Threshold)
}

func TestManagerListEmpty(t *testing.T) {
	ctx := context.Background()
	mgr := New()
	defer mgr.Close()

	names, err := mgr.List(ctx, "aviation", "unknown")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestManagerSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	mgr := New()
	defer mgr.Close()

	require.NoError(t, mgr.Save(ctx, "aviation", "gold1", []*metric.EvalMetric{
		{MetricName: metric.MetricEntityLinkingF1},
	}))
	require.NoError(t, mgr.Save(ctx, "aviation", "gold1", []*metric.EvalMetric{
		{MetricName: metric.MetricMentionDetectionF1},
	}))

	names, err := mgr.List(ctx, "aviation", "gold1")
	require.NoError(t, err)
	assert.Equal(t, []string{metric.MetricMentionDetectionF1}, names)
}

func TestManagerDelete(t *testing.T) {
	ctx := context.Background()
	mgr := New()
	defer mgr.Close()

	metrics := []*metric.EvalMetric{
		{MetricName: metric.MetricEntityLinkingF1, Threshold: 0.8},
		{MetricName: metric.MetricMentionDetectionF1, Threshold: 0.9},
	}
	require.NoError(t, mgr.Save(ctx, "aviation", "gold1", metrics))

	require.NoError(t, mgr.Delete(ctx, "aviation", "gold1", metric.MetricEntityLinkingF1))
	names, err := mgr.List(ctx, "aviation", "gold1")
	require.NoError(t, err)
	assert.Equal(t, []string{metric.MetricMentionDetectionF1}, names)

	err = mgr.Delete(ctx, "aviation", "gold1", metric.MetricEntityLinkingF1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
