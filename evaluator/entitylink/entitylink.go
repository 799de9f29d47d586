// Package entitylink implements entity-linking and mention-detection metrics.
package entitylink

import (
	"context"
	"fmt"

	"github.com/KuangshiAi/keo/annotation"
	"github.com/KuangshiAi/keo/evaluator"
	"github.com/KuangshiAi/keo/linking"
	"github.com/KuangshiAi/keo/metric"
	"github.com/KuangshiAi/keo/metric/policy"
	"github.com/KuangshiAi/keo/prediction"
	"github.com/KuangshiAi/keo/status"
)

// Evaluator scores entity links with F1 over one-to-one mention assignments.
type Evaluator struct {
	name        string
	description string
	ignoreQIDs  bool
}

// New creates the entity-linking evaluator.
func New() *Evaluator {
	return &Evaluator{
		name:        metric.MetricEntityLinkingF1,
		description: "Scores entity links (mention plus identifier) against gold annotations with precision, recall and F1",
	}
}

// NewMentionDetection creates the mention-detection evaluator, which scores
// mention spotting only and ignores predicted identifiers.
func NewMentionDetection() *Evaluator {
	return &Evaluator{
		name:        metric.MetricMentionDetectionF1,
		description: "Scores detected mentions against gold annotations, ignoring linked identifiers",
		ignoreQIDs:  true,
	}
}

// Name returns the canonical metric name supported by this evaluator.
func (e *Evaluator) Name() string { return e.name }

// Description explains what the evaluator measures.
func (e *Evaluator) Description() string { return e.description }

// Evaluate scores the prediction set against the gold set.
func (e *Evaluator) Evaluate(ctx context.Context, goldSet *annotation.GoldSet,
	predSet *prediction.Set, evalMetric *metric.EvalMetric) (*evaluator.EvaluateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pol := policy.Default()
	if evalMetric != nil && evalMetric.Criterion != nil && evalMetric.Criterion.Link != nil {
		pol = evalMetric.Criterion.Link
	}
	if e.ignoreQIDs {
		cp := *pol
		cp.IgnoreQIDs = true
		pol = &cp
	}
	result, err := linking.Evaluate(goldSet, predSet, pol)
	if err != nil {
		return nil, fmt.Errorf("evaluate entity links: %w", err)
	}

	out := &evaluator.EvaluateResult{
		OverallScore: result.Score.F1,
		Link:         result,
	}
	if goldSet == nil || len(goldSet.Annotations) == 0 {
		out.OverallStatus = status.EvalStatusNotEvaluated
		return out, nil
	}
	threshold := 0.0
	if evalMetric != nil {
		threshold = evalMetric.Threshold
	}
	if out.OverallScore >= threshold {
		out.OverallStatus = status.EvalStatusPassed
	} else {
		out.OverallStatus = status.EvalStatusFailed
	}
	return out, nil
}

var _ evaluator.Evaluator = (*Evaluator)(nil)
