package textmetric

import "math"

// bleuMaxOrder is the highest n-gram order used by sentence BLEU.
const bleuMaxOrder = 4

// bleuEpsilon replaces zero n-gram match counts so a single missing order
// does not zero the whole score.
const bleuEpsilon = 0.1

// BLEU computes a smoothed sentence-level BLEU score with uniform weights
// over 1- to 4-grams and a brevity penalty.
func BLEU(reference, candidate string) float64 {
	refTokens := Tokenize(reference, false)
	canTokens := Tokenize(candidate, false)
	if len(refTokens) == 0 || len(canTokens) == 0 {
		return 0
	}

	logSum := 0.0
	for n := 1; n <= bleuMaxOrder; n++ {
		logSum += math.Log(modifiedPrecision(refTokens, canTokens, n)) / bleuMaxOrder
	}

	bp := brevityPenalty(len(refTokens), len(canTokens))
	return bp * math.Exp(logSum)
}

// modifiedPrecision computes clipped n-gram precision with epsilon smoothing
// for zero match counts.
func modifiedPrecision(refTokens, canTokens []string, n int) float64 {
	canNGrams := ngramCounts(canTokens, n)
	total := 0
	for _, cnt := range canNGrams {
		total += cnt
	}
	// Candidates shorter than n have no n-grams at this order; smoothing
	// over a denominator of 1 keeps short answers from zeroing the score.
	if total == 0 {
		total = 1
	}
	refNGrams := ngramCounts(refTokens, n)
	matches := 0
	for key, cnt := range canNGrams {
		if refCnt, ok := refNGrams[key]; ok {
			if refCnt < cnt {
				matches += refCnt
			} else {
				matches += cnt
			}
		}
	}
	if matches == 0 {
		return bleuEpsilon / float64(total)
	}
	return float64(matches) / float64(total)
}

// brevityPenalty penalizes candidates shorter than the reference.
func brevityPenalty(refLen, canLen int) float64 {
	if canLen >= refLen {
		return 1
	}
	if canLen == 0 {
		return 0
	}
	return math.Exp(1 - float64(refLen)/float64(canLen))
}
