// Package groundtruth implements ground-truth answer evaluation for question
// answering: exact match, smoothed BLEU, ROUGE variants and word-overlap F1.
package groundtruth

import (
	"context"
	"fmt"

	"github.com/KuangshiAi/keo/annotation"
	"github.com/KuangshiAi/keo/evaluator"
	"github.com/KuangshiAi/keo/metric"
	"github.com/KuangshiAi/keo/prediction"
	"github.com/KuangshiAi/keo/status"
	"github.com/KuangshiAi/keo/textmetric"
)

// defaultRougeTypes are computed when the metric criterion does not name any.
var defaultRougeTypes = []string{
	textmetric.RougeTypeRouge1,
	textmetric.RougeTypeRouge2,
	textmetric.RougeTypeRougeL,
}

// Evaluator scores tool answers against gold reference answers. Gold
// annotations carry the reference answer in Mention keyed by DocID;
// predictions carry the candidate answer the same way.
type Evaluator struct{}

// New creates the ground-truth answer evaluator.
func New() *Evaluator { return &Evaluator{} }

// Name returns the canonical metric name supported by this evaluator.
func (e *Evaluator) Name() string { return metric.MetricGroundTruthAvgScore }

// Description explains what the evaluator measures.
func (e *Evaluator) Description() string {
	return "Scores answers against ground-truth references with BLEU, ROUGE and word-overlap F1"
}

// Evaluate compares each gold reference answer with the candidate answer
// sharing its document ID. The per-answer score averages BLEU, ROUGE-L
// F-measure and word-overlap F1; the overall score averages across answers.
func (e *Evaluator) Evaluate(ctx context.Context, goldSet *annotation.GoldSet,
	predSet *prediction.Set, evalMetric *metric.EvalMetric) (*evaluator.EvaluateResult, error) {
	if goldSet == nil {
		return nil, fmt.Errorf("gold set is nil")
	}
	if predSet == nil {
		return nil, fmt.Errorf("prediction set is nil")
	}
	out := &evaluator.EvaluateResult{OverallStatus: status.EvalStatusNotEvaluated}
	if len(goldSet.Annotations) == 0 {
		return out, nil
	}

	rougeTypes := defaultRougeTypes
	useStemmer := false
	if evalMetric != nil && evalMetric.Criterion != nil && evalMetric.Criterion.Text != nil {
		if len(evalMetric.Criterion.Text.RougeTypes) > 0 {
			rougeTypes = evalMetric.Criterion.Text.RougeTypes
		}
		useStemmer = evalMetric.Criterion.Text.UseStemmer
	}
	threshold := 0.0
	if evalMetric != nil {
		threshold = evalMetric.Threshold
	}

	candidates := make(map[string]string, len(predSet.Predictions))
	for _, p := range predSet.Predictions {
		if p != nil {
			candidates[p.DocID] = p.Mention
		}
	}

	total := 0.0
	for _, a := range goldSet.Annotations {
		if a == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidate := candidates[a.DocID]
		answer, err := scoreAnswer(ctx, a.DocID, a.Mention, candidate, rougeTypes, useStemmer)
		if err != nil {
			return nil, err
		}
		if answer.Score >= threshold {
			answer.Status = status.EvalStatusPassed
			out.PassedAnswers++
		} else {
			answer.Status = status.EvalStatusFailed
		}
		total += answer.Score
		out.Answers = append(out.Answers, answer)
	}
	if len(out.Answers) == 0 {
		return out, nil
	}

	out.OverallScore = total / float64(len(out.Answers))
	if out.OverallScore >= threshold {
		out.OverallStatus = status.EvalStatusPassed
	} else {
		out.OverallStatus = status.EvalStatusFailed
	}
	return out, nil
}

// scoreAnswer computes all text metrics for one reference and candidate pair.
func scoreAnswer(ctx context.Context, docID, reference, candidate string,
	rougeTypes []string, useStemmer bool) (*evaluator.AnswerResult, error) {
	rouge, err := textmetric.Rouge(ctx, reference, candidate,
		textmetric.WithRougeTypes(rougeTypes...), textmetric.WithStemmer(useStemmer))
	if err != nil {
		return nil, fmt.Errorf("rouge %s: %w", docID, err)
	}
	answer := &evaluator.AnswerResult{
		DocID:      docID,
		Reference:  reference,
		Candidate:  candidate,
		ExactMatch: textmetric.ExactMatch(reference, candidate),
		BLEU:       textmetric.BLEU(reference, candidate),
		Rouge:      rouge,
		OverlapF1:  textmetric.OverlapF1(reference, candidate).FMeasure,
	}
	answer.Score = (answer.BLEU + rougeF(rouge) + answer.OverlapF1) / 3
	return answer, nil
}

// rougeF picks the ROUGE-L F-measure, falling back to the mean F-measure of
// whatever ROUGE types were computed.
func rougeF(scores map[string]textmetric.Score) float64 {
	if s, ok := scores[textmetric.RougeTypeRougeL]; ok {
		return s.FMeasure
	}
	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range scores {
		total += s.FMeasure
	}
	return total / float64(len(scores))
}

// ExactMatchRate returns the fraction of answers with an exact token match.
func ExactMatchRate(answers []*evaluator.AnswerResult) float64 {
	if len(answers) == 0 {
		return 0
	}
	matched := 0
	for _, a := range answers {
		if a != nil && a.ExactMatch {
			matched++
		}
	}
	return float64(matched) / float64(len(answers))
}

var _ evaluator.Evaluator = (*Evaluator)(nil)
