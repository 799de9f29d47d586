// Package textmetric implements text comparison metrics used for ground-truth
// answer evaluation: ROUGE variants, smoothed sentence BLEU, word-overlap F1
// and exact match.
package textmetric

import "strings"

// Score holds precision, recall and F-measure for one metric.
type Score struct {
	// Precision is the fraction of predicted units that match the reference in range [0, 1].
	Precision float64 `json:"precision"`
	// Recall is the fraction of reference units that are matched by the prediction in range [0, 1].
	Recall float64 `json:"recall"`
	// FMeasure is the harmonic mean of precision and recall in range [0, 1].
	FMeasure float64 `json:"fMeasure"`
}

// fMeasure computes the harmonic mean of precision and recall.
func fMeasure(precision, recall float64) float64 {
	if precision+recall > 0 {
		return 2 * precision * recall / (precision + recall)
	}
	return 0
}

// ExactMatch reports whether reference and candidate are identical after
// tokenization.
func ExactMatch(reference, candidate string) bool {
	ref := Tokenize(reference, false)
	can := Tokenize(candidate, false)
	return strings.Join(ref, " ") == strings.Join(can, " ")
}

// OverlapF1 computes word-overlap precision, recall and F1 over the distinct
// token sets of reference and candidate.
func OverlapF1(reference, candidate string) Score {
	refSet := tokenSet(Tokenize(reference, false))
	canSet := tokenSet(Tokenize(candidate, false))
	if len(refSet) == 0 || len(canSet) == 0 {
		return Score{}
	}
	common := 0
	for tok := range canSet {
		if _, ok := refSet[tok]; ok {
			common++
		}
	}
	precision := float64(common) / float64(len(canSet))
	recall := float64(common) / float64(len(refSet))
	return Score{Precision: precision, Recall: recall, FMeasure: fMeasure(precision, recall)}
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
