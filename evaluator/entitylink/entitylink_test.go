package entitylink

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KuangshiAi/keo/annotation"
	"github.com/KuangshiAi/keo/metric"
	"github.com/KuangshiAi/keo/metric/policy"
	"github.com/KuangshiAi/keo/prediction"
	"github.com/KuangshiAi/keo/status"
)

func TestEvaluatePassesAtThreshold(t *testing.T) {
	e := New()
	gold := &annotation.GoldSet{Annotations: []*annotation.Annotation{
		{DocID: "d1", Mention: "engine", QID: "Q1"},
		{DocID: "d1", Mention: "rudder", QID: "Q2"},
	}}
	preds := &prediction.Set{Predictions: []*prediction.Prediction{
		{DocID: "d1", Mention: "engine", QID: "Q1"},
		{DocID: "d1", Mention: "rudder", QID: "Q2"},
	}}
	em := &metric.EvalMetric{MetricName: e.Name(), Threshold: 1.0}

	result, err := e.Evaluate(context.Background(), gold, preds, em)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.OverallScore)
	assert.Equal(t, status.EvalStatusPassed, result.OverallStatus)
	require.NotNil(t, result.Link)
	assert.Equal(t, 2, result.Link.Tally.TP)
}

func TestEvaluateFailsBelowThreshold(t *testing.T) {
	e := New()
	gold := &annotation.GoldSet{Annotations: []*annotation.Annotation{
		{DocID: "d1", Mention: "engine", QID: "Q1"},
	}}
	preds := &prediction.Set{Predictions: []*prediction.Prediction{
		{DocID: "d1", Mention: "engine", QID: "Q9"},
	}}
	em := &metric.EvalMetric{MetricName: e.Name(), Threshold: 0.5}

	result, err := e.Evaluate(context.Background(), gold, preds, em)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.OverallScore)
	assert.Equal(t, status.EvalStatusFailed, result.OverallStatus)
}

func TestEvaluateEmptyGoldNotEvaluated(t *testing.T) {
	e := New()
	result, err := e.Evaluate(context.Background(), &annotation.GoldSet{}, &prediction.Set{}, nil)
	require.NoError(t, err)
	assert.Equal(t, status.EvalStatusNotEvaluated, result.OverallStatus)
}

func TestEvaluateUsesCriterionPolicy(t *testing.T) {
	e := New()
	gold := &annotation.GoldSet{Annotations: []*annotation.Annotation{
		{DocID: "d1", Mention: "left hydraulic pump", QID: "Q1"},
	}}
	preds := &prediction.Set{Predictions: []*prediction.Prediction{
		{DocID: "d1", Mention: "hydraulic pump", QID: "Q1"},
	}}
	em := &metric.EvalMetric{
		MetricName: e.Name(),
		Threshold:  1.0,
		Criterion: &policy.Criterion{Link: &policy.LinkPolicy{
			MatchStrategy:             policy.MatchStrategyWeak,
			CountUnmatchedPredictions: true,
		}},
	}
	result, err := e.Evaluate(context.Background(), gold, preds, em)
	require.NoError(t, err)
	assert.Equal(t, status.EvalStatusPassed, result.OverallStatus)
}

func TestMentionDetectionIgnoresQIDs(t *testing.T) {
	e := NewMentionDetection()
	assert.Equal(t, metric.MetricMentionDetectionF1, e.Name())

	gold := &annotation.GoldSet{Annotations: []*annotation.Annotation{
		{DocID: "d1", Mention: "engine", QID: "Q1"},
	}}
	preds := &prediction.Set{Predictions: []*prediction.Prediction{
		{DocID: "d1", Mention: "engine", QID: "Q9"},
	}}
	em := &metric.EvalMetric{MetricName: e.Name(), Threshold: 1.0}

	result, err := e.Evaluate(context.Background(), gold, preds, em)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.OverallScore)
	assert.Equal(t, status.EvalStatusPassed, result.OverallStatus)
}

func TestMentionDetectionDoesNotMutateSharedPolicy(t *testing.T) {
	e := NewMentionDetection()
	shared := policy.Default()
	em := &metric.EvalMetric{
		MetricName: e.Name(),
		Criterion:  &policy.Criterion{Link: shared},
	}
	gold := &annotation.GoldSet{Annotations: []*annotation.Annotation{
		{DocID: "d1", Mention: "engine", QID: "Q1"},
	}}
	_, err := e.Evaluate(context.Background(), gold, &prediction.Set{}, em)
	require.NoError(t, err)
	assert.False(t, shared.IgnoreQIDs)
}
