package registry

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KuangshiAi/keo/evaluator/groundtruth"
	"github.com/KuangshiAi/keo/metric"
)

func TestNewRegistersBuiltins(t *testing.T) {
	r := New()
	assert.Equal(t, []string{
		metric.MetricEntityLinkingF1,
		metric.MetricGroundTruthAvgScore,
		metric.MetricMentionDetectionF1,
	}, r.List())

	e, err := r.Get(metric.MetricEntityLinkingF1)
	require.NoError(t, err)
	assert.Equal(t, metric.MetricEntityLinkingF1, e.Name())
}

func TestGetUnknown(t *testing.T) {
	r := New()
	_, err := r.Get("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRegisterNil(t *testing.T) {
	r := New()
	require.Error(t, r.Register("x", nil))
}

func TestRegisterOverwrite(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(metric.MetricEntityLinkingF1, groundtruth.New()))
	e, err := r.Get(metric.MetricEntityLinkingF1)
	require.NoError(t, err)
	assert.Equal(t, metric.MetricGroundTruthAvgScore, e.Name())
}
