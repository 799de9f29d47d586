// Package evaluator defines the evaluator interface shared by all metrics.
package evaluator

import (
	"context"

	"github.com/KuangshiAi/keo/annotation"
	"github.com/KuangshiAi/keo/linking"
	"github.com/KuangshiAi/keo/metric"
	"github.com/KuangshiAi/keo/prediction"
	"github.com/KuangshiAi/keo/status"
	"github.com/KuangshiAi/keo/textmetric"
)

// Evaluator scores one prediction set against one gold set for a single metric.
type Evaluator interface {
	// Name returns the canonical metric name supported by this evaluator.
	Name() string
	// Description explains what the evaluator measures.
	Description() string
	// Evaluate scores predictions against the gold set under the given metric.
	Evaluate(ctx context.Context, goldSet *annotation.GoldSet, predSet *prediction.Set,
		evalMetric *metric.EvalMetric) (*EvaluateResult, error)
}

// EvaluateResult is the outcome of evaluating one metric over one gold set.
type EvaluateResult struct {
	// OverallScore is the metric's aggregate score in range [0, 1].
	OverallScore float64 `json:"overallScore"`
	// OverallStatus is the score judged against the metric threshold.
	OverallStatus status.EvalStatus `json:"overallStatus"`
	// Link carries entity-linking details when the metric scores links.
	Link *linking.Result `json:"link,omitempty"`
	// Answers carries per-question details when the metric scores answers.
	Answers []*AnswerResult `json:"answers,omitempty"`
	// PassedAnswers counts answers whose score met the metric threshold.
	PassedAnswers int `json:"passedAnswers,omitempty"`
}

// AnswerResult holds the text metrics for one question.
type AnswerResult struct {
	// DocID identifies the question.
	DocID string `json:"docId,omitempty"`
	// Reference is the gold answer.
	Reference string `json:"reference,omitempty"`
	// Candidate is the tool's answer, empty when missing.
	Candidate string `json:"candidate,omitempty"`
	// ExactMatch reports token-level equality of reference and candidate.
	ExactMatch bool `json:"exactMatch"`
	// BLEU is the smoothed sentence BLEU score.
	BLEU float64 `json:"bleu"`
	// Rouge holds the computed ROUGE scores by type.
	Rouge map[string]textmetric.Score `json:"rouge,omitempty"`
	// OverlapF1 is the word-overlap F1 score.
	OverlapF1 float64 `json:"overlapF1"`
	// Score is the aggregate answer score.
	Score float64 `json:"score"`
	// Status is the answer score judged against the metric threshold.
	Status status.EvalStatus `json:"status"`
}
