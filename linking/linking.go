// Package linking scores entity-linking predictions against gold-standard
// annotations. Predictions are assigned to gold mentions one-to-one per
// document, then each link is classified and tallied into precision, recall
// and F1.
package linking

import (
	"fmt"

	"github.com/KuangshiAi/keo/annotation"
	"github.com/KuangshiAi/keo/linking/internal/kuhn"
	"github.com/KuangshiAi/keo/metric/policy"
	"github.com/KuangshiAi/keo/prediction"
	"github.com/KuangshiAi/keo/status"
)

// Tally counts link classifications across a scored run.
type Tally struct {
	// TP counts gold mentions linked to an accepted identifier.
	TP int `json:"tp"`
	// FP counts wrong or spurious predictions.
	FP int `json:"fp"`
	// FN counts gold mentions left unlinked or wrongly linked.
	FN int `json:"fn"`
	// TN counts NIL gold mentions correctly left unlinked.
	TN int `json:"tn"`
}

// Add accumulates another tally into this one.
func (t *Tally) Add(other Tally) {
	t.TP += other.TP
	t.FP += other.FP
	t.FN += other.FN
	t.TN += other.TN
}

// Precision returns TP/(TP+FP), or 0 when the denominator is 0.
func (t *Tally) Precision() float64 {
	if t.TP+t.FP == 0 {
		return 0
	}
	return float64(t.TP) / float64(t.TP+t.FP)
}

// Recall returns TP/(TP+FN), or 0 when the denominator is 0.
func (t *Tally) Recall() float64 {
	if t.TP+t.FN == 0 {
		return 0
	}
	return float64(t.TP) / float64(t.TP+t.FN)
}

// Score returns the aggregate precision, recall and F1 for this tally.
func (t *Tally) Score() Score {
	p := t.Precision()
	r := t.Recall()
	var f1 float64
	if p+r > 0 {
		f1 = 2 * p * r / (p + r)
	}
	return Score{Precision: p, Recall: r, F1: f1}
}

// Score holds the aggregate evaluation scores.
type Score struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// LinkResult records the classification of one gold annotation or one
// spurious prediction.
type LinkResult struct {
	// DocID identifies the document the link belongs to.
	DocID string `json:"docId,omitempty"`
	// GoldMention is the annotated surface string, empty for spurious predictions.
	GoldMention string `json:"goldMention,omitempty"`
	// GoldQID is the primary annotated identifier.
	GoldQID string `json:"goldQid,omitempty"`
	// PredictedMention is the matched predicted surface string, if any.
	PredictedMention string `json:"predictedMention,omitempty"`
	// PredictedQID is the matched predicted identifier, if any.
	PredictedQID string `json:"predictedQid,omitempty"`
	// Outcome classifies the link.
	Outcome status.LinkOutcome `json:"outcome"`
}

// Result is the outcome of scoring one prediction set against one gold set.
type Result struct {
	// Tally holds the raw classification counts.
	Tally Tally `json:"tally"`
	// Score holds precision, recall and F1 derived from the tally.
	Score Score `json:"score"`
	// Links holds the per-annotation classifications.
	Links []*LinkResult `json:"links,omitempty"`
}

// Evaluate scores a prediction set against a gold set under the given policy.
// Predictions for documents absent from the gold set are ignored.
func Evaluate(goldSet *annotation.GoldSet, predSet *prediction.Set, pol *policy.LinkPolicy) (*Result, error) {
	if goldSet == nil {
		return nil, fmt.Errorf("gold set is nil")
	}
	if predSet == nil {
		return nil, fmt.Errorf("prediction set is nil")
	}
	if pol == nil {
		pol = policy.Default()
	}
	if err := pol.Validate(); err != nil {
		return nil, fmt.Errorf("validate link policy: %w", err)
	}
	predByDoc := predSet.ByDocument()
	goldByDoc := goldSet.ByDocument()
	result := &Result{}
	// Documents are scored in gold order so results are deterministic.
	for _, docID := range documentOrder(goldSet) {
		docResult := scoreDocument(docID, goldByDoc[docID], predByDoc[docID], pol)
		result.Tally.Add(docResult.Tally)
		result.Links = append(result.Links, docResult.Links...)
	}
	result.Score = result.Tally.Score()
	return result, nil
}

// documentOrder returns gold document IDs in first-appearance order.
func documentOrder(goldSet *annotation.GoldSet) []string {
	seen := make(map[string]bool)
	order := make([]string, 0)
	for _, a := range goldSet.Annotations {
		if a == nil || seen[a.DocID] {
			continue
		}
		seen[a.DocID] = true
		order = append(order, a.DocID)
	}
	return order
}

// scoreDocument assigns predictions to gold annotations one-to-one and
// classifies every link in a single document.
func scoreDocument(docID string, gold []*annotation.Annotation, preds []*prediction.Prediction, pol *policy.LinkPolicy) *Result {
	// A prediction may be mention-compatible with several gold rows. The
	// maximum bipartite matching ensures one prediction satisfies at most
	// one gold row while matching as many rows as possible.
	matcher := kuhn.New(len(preds), len(gold))
	for pi, p := range preds {
		for gi, g := range gold {
			if pol.MentionsMatch(g.Mention, p.Mention) {
				matcher.AddEdge(pi, gi)
			}
		}
	}
	matchLeft := matcher.Match()
	assigned := make([]int, len(gold))
	for gi := range assigned {
		assigned[gi] = kuhn.Unmatched
	}
	for pi, gi := range matchLeft {
		if gi != kuhn.Unmatched {
			assigned[gi] = pi
		}
	}

	result := &Result{}
	for gi, g := range gold {
		link := &LinkResult{DocID: docID, GoldMention: g.Mention, GoldQID: g.QID}
		pi := assigned[gi]
		if pi == kuhn.Unmatched {
			if g.NIL() {
				// A NIL mention with no prediction is correctly unlinked.
				link.Outcome = status.OutcomeCorrect
				result.Tally.TN++
			} else {
				link.Outcome = status.OutcomeMissing
				result.Tally.FN++
			}
			result.Links = append(result.Links, link)
			continue
		}
		p := preds[pi]
		link.PredictedMention = p.Mention
		link.PredictedQID = p.QID
		switch {
		case g.NIL() && p.NIL():
			link.Outcome = status.OutcomeCorrect
			result.Tally.TN++
		case pol.IgnoreQIDs || g.AcceptsQID(p.QID, pol.Extended()):
			link.Outcome = status.OutcomeCorrect
			result.Tally.TP++
		case g.NIL():
			// The tool linked a mention that has no knowledge-base entry.
			// Nothing was missed, so only a false positive is counted.
			link.Outcome = status.OutcomeWrongQID
			result.Tally.FP++
		default:
			// Mention found but linked to the wrong entity: the tool both
			// produced a wrong link and missed the right one.
			link.Outcome = status.OutcomeWrongQID
			result.Tally.FP++
			result.Tally.FN++
		}
		result.Links = append(result.Links, link)
	}
	for pi, gi := range matchLeft {
		if gi != kuhn.Unmatched {
			continue
		}
		p := preds[pi]
		link := &LinkResult{
			DocID:            docID,
			PredictedMention: p.Mention,
			PredictedQID:     p.QID,
			Outcome:          status.OutcomeSpurious,
		}
		if pol.CountUnmatchedPredictions {
			result.Tally.FP++
		}
		result.Links = append(result.Links, link)
	}
	return result
}
