package groundtruth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KuangshiAi/keo/annotation"
	"github.com/KuangshiAi/keo/evaluator"
	"github.com/KuangshiAi/keo/metric"
	"github.com/KuangshiAi/keo/prediction"
	"github.com/KuangshiAi/keo/status"
	"github.com/KuangshiAi/keo/textmetric"
)

func TestEvaluatePerfectAnswers(t *testing.T) {
	e := New()
	gold := &annotation.GoldSet{Annotations: []*annotation.Annotation{
		{DocID: "q1", Mention: "the engine failed during the takeoff roll"},
	}}
	preds := &prediction.Set{Predictions: []*prediction.Prediction{
		{DocID: "q1", Mention: "the engine failed during the takeoff roll"},
	}}
	em := &metric.EvalMetric{MetricName: e.Name(), Threshold: 0.9}

	result, err := e.Evaluate(context.Background(), gold, preds, em)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, result.OverallScore, 1e-9)
	assert.Equal(t, status.EvalStatusPassed, result.OverallStatus)
	require.Len(t, result.Answers, 1)
	assert.True(t, result.Answers[0].ExactMatch)
	assert.InDelta(t, 1.0, result.Answers[0].BLEU, 1e-9)
	assert.Equal(t, 1.0, result.Answers[0].Rouge[textmetric.RougeTypeRougeL].FMeasure)
}

func TestEvaluateMissingAnswerScoresZero(t *testing.T) {
	e := New()
	gold := &annotation.GoldSet{Annotations: []*annotation.Annotation{
		{DocID: "q1", Mention: "the engine failed"},
	}}
	em := &metric.EvalMetric{MetricName: e.Name(), Threshold: 0.5}

	result, err := e.Evaluate(context.Background(), gold, &prediction.Set{}, em)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.OverallScore)
	assert.Equal(t, status.EvalStatusFailed, result.OverallStatus)
	require.Len(t, result.Answers, 1)
	assert.Equal(t, status.EvalStatusFailed, result.Answers[0].Status)
	assert.False(t, result.Answers[0].ExactMatch)
}

func TestEvaluateCountsPassedAnswers(t *testing.T) {
	e := New()
	gold := &annotation.GoldSet{Annotations: []*annotation.Annotation{
		{DocID: "q1", Mention: "the engine failed during the takeoff roll"},
		{DocID: "q2", Mention: "the fuel pump was replaced"},
	}}
	preds := &prediction.Set{Predictions: []*prediction.Prediction{
		{DocID: "q1", Mention: "the engine failed during the takeoff roll"},
	}}
	em := &metric.EvalMetric{MetricName: e.Name(), Threshold: 0.5}

	result, err := e.Evaluate(context.Background(), gold, preds, em)
	require.NoError(t, err)
	require.Len(t, result.Answers, 2)
	assert.Equal(t, 1, result.PassedAnswers)
}

func TestEvaluatePartialAnswer(t *testing.T) {
	e := New()
	gold := &annotation.GoldSet{Annotations: []*annotation.Annotation{
		{DocID: "q1", Mention: "the pilot landed the aircraft safely after the failure"},
	}}
	preds := &prediction.Set{Predictions: []*prediction.Prediction{
		{DocID: "q1", Mention: "the pilot landed the aircraft safely"},
	}}
	result, err := e.Evaluate(context.Background(), gold, preds, nil)
	require.NoError(t, err)
	require.Len(t, result.Answers, 1)
	a := result.Answers[0]
	assert.Greater(t, a.Score, 0.0)
	assert.Less(t, a.Score, 1.0)
	assert.False(t, a.ExactMatch)
}

func TestEvaluateEmptyGoldNotEvaluated(t *testing.T) {
	e := New()
	result, err := e.Evaluate(context.Background(), &annotation.GoldSet{}, &prediction.Set{}, nil)
	require.NoError(t, err)
	assert.Equal(t, status.EvalStatusNotEvaluated, result.OverallStatus)
	assert.Empty(t, result.Answers)
}

func TestEvaluateNilInputs(t *testing.T) {
	e := New()
	_, err := e.Evaluate(context.Background(), nil, &prediction.Set{}, nil)
	require.Error(t, err)
	_, err = e.Evaluate(context.Background(), &annotation.GoldSet{}, nil, nil)
	require.Error(t, err)
}

func TestExactMatchRate(t *testing.T) {
	answers := []*evaluator.AnswerResult{
		{ExactMatch: true},
		{ExactMatch: false},
		{ExactMatch: true},
		{ExactMatch: true},
	}
	assert.InDelta(t, 0.75, ExactMatchRate(answers), 1e-9)
	assert.Equal(t, 0.0, ExactMatchRate(nil))
}
