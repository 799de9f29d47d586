package textmetric

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Standard ROUGE type identifiers.
const (
	RougeTypeRouge1    = "rouge1"
	RougeTypeRouge2    = "rouge2"
	RougeTypeRougeL    = "rougeL"
	RougeTypeRougeLsum = "rougeLsum"
)

// Rouge returns ROUGE scores for a single reference and candidate pair. It
// returns an empty map when no ROUGE types are configured.
func Rouge(ctx context.Context, reference, candidate string, opt ...Option) (map[string]Score, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := newOptions(opt...)
	if len(opts.rougeTypes) == 0 {
		return map[string]Score{}, nil
	}
	for _, rougeType := range opts.rougeTypes {
		if err := validateRougeType(rougeType); err != nil {
			return nil, err
		}
	}

	refTokens := Tokenize(reference, opts.useStemmer)
	canTokens := Tokenize(candidate, opts.useStemmer)
	result := make(map[string]Score, len(opts.rougeTypes))
	for _, rougeType := range opts.rougeTypes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch {
		case rougeType == RougeTypeRougeL:
			result[rougeType] = scoreLCS(refTokens, canTokens)
		case rougeType == RougeTypeRougeLsum:
			score, err := scoreSummaryLCS(reference, candidate, opts)
			if err != nil {
				return nil, err
			}
			result[rougeType] = score
		default:
			n, err := parseRougeN(rougeType)
			if err != nil {
				return nil, err
			}
			result[rougeType] = scoreNGrams(refTokens, canTokens, n)
		}
	}
	return result, nil
}

// validateRougeType validates a ROUGE type identifier such as rouge1, rougeL, or rougeLsum.
func validateRougeType(rougeType string) error {
	if rougeType == RougeTypeRougeL || rougeType == RougeTypeRougeLsum {
		return nil
	}
	_, err := parseRougeN(rougeType)
	return err
}

// parseRougeN parses a ROUGE-N type string and returns the N value.
func parseRougeN(rougeType string) (int, error) {
	if !strings.HasPrefix(rougeType, "rouge") {
		return 0, fmt.Errorf("invalid rouge type: %s", rougeType)
	}
	nStr := strings.TrimPrefix(rougeType, "rouge")
	n, err := strconv.Atoi(nStr)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid rouge type: %s", rougeType)
	}
	return n, nil
}

// scoreNGrams computes ROUGE-N precision, recall, and F-measure for tokenized inputs.
func scoreNGrams(refTokens, canTokens []string, n int) Score {
	if len(refTokens) == 0 || len(canTokens) == 0 {
		return Score{}
	}
	refNGrams := ngramCounts(refTokens, n)
	canNGrams := ngramCounts(canTokens, n)

	var intersection, refCount, canCount int
	for key, cnt := range refNGrams {
		refCount += cnt
		if canCnt, ok := canNGrams[key]; ok {
			if cnt < canCnt {
				intersection += cnt
			} else {
				intersection += canCnt
			}
		}
	}
	for _, cnt := range canNGrams {
		canCount += cnt
	}

	precision := float64(intersection) / float64(maxInt(canCount, 1))
	recall := float64(intersection) / float64(maxInt(refCount, 1))
	return Score{Precision: precision, Recall: recall, FMeasure: fMeasure(precision, recall)}
}

// ngramCounts builds a multiset of n-grams keyed by a delimiter-joined token sequence.
func ngramCounts(tokens []string, n int) map[string]int {
	if n <= 0 || len(tokens) < n {
		return map[string]int{}
	}
	ngrams := make(map[string]int, len(tokens)-n+1)
	for i := 0; i <= len(tokens)-n; i++ {
		ngrams[strings.Join(tokens[i:i+n], "\x00")]++
	}
	return ngrams
}

// scoreLCS computes ROUGE-L precision, recall, and F-measure using the LCS length.
func scoreLCS(refTokens, canTokens []string) Score {
	if len(refTokens) == 0 || len(canTokens) == 0 {
		return Score{}
	}
	lcsLen := lcsLength(refTokens, canTokens)
	precision := float64(lcsLen) / float64(len(canTokens))
	recall := float64(lcsLen) / float64(len(refTokens))
	return Score{Precision: precision, Recall: recall, FMeasure: fMeasure(precision, recall)}
}

// lcsLength computes the length of the longest common subsequence using two
// rolling rows.
func lcsLength(ref, can []string) int {
	if len(ref) == 0 || len(can) == 0 {
		return 0
	}
	prev := make([]int, len(can)+1)
	curr := make([]int, len(can)+1)
	for i := 1; i <= len(ref); i++ {
		curr[0] = 0
		for j := 1; j <= len(can); j++ {
			switch {
			case ref[i-1] == can[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(can)]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// scoreSummaryLCS computes rougeLsum using summary-level LCS aggregation.
func scoreSummaryLCS(reference, candidate string, opts *options) (Score, error) {
	refSents, err := splitSentences(reference, opts.splitSummaries)
	if err != nil {
		return Score{}, err
	}
	canSents, err := splitSentences(candidate, opts.splitSummaries)
	if err != nil {
		return Score{}, err
	}

	refTokensList := make([][]string, 0, len(refSents))
	for _, s := range refSents {
		refTokensList = append(refTokensList, Tokenize(s, opts.useStemmer))
	}
	canTokensList := make([][]string, 0, len(canSents))
	for _, s := range canSents {
		canTokensList = append(canTokensList, Tokenize(s, opts.useStemmer))
	}
	return summaryLevelLCS(refTokensList, canTokensList), nil
}

// splitSentences returns sentence strings using either newline splitting or
// the Punkt sentence tokenizer.
func splitSentences(text string, usePunkt bool) ([]string, error) {
	var sents []string
	if usePunkt {
		list, err := sentTokenize(text)
		if err != nil {
			return nil, err
		}
		sents = list
	} else {
		sents = strings.Split(text, "\n")
	}
	out := make([]string, 0, len(sents))
	for _, sent := range sents {
		if sent == "" {
			continue
		}
		out = append(out, sent)
	}
	return out, nil
}

// summaryLevelLCS aggregates per-sentence LCS hits without double-counting
// matched tokens.
func summaryLevelLCS(refSents, canSents [][]string) Score {
	m := 0
	for _, s := range refSents {
		m += len(s)
	}
	n := 0
	for _, s := range canSents {
		n += len(s)
	}
	if m == 0 || n == 0 {
		return Score{}
	}

	refCounts := make(map[string]int)
	canCounts := make(map[string]int)
	for _, s := range refSents {
		for _, tok := range s {
			refCounts[tok]++
		}
	}
	for _, s := range canSents {
		for _, tok := range s {
			canCounts[tok]++
		}
	}

	hits := 0
	for _, ref := range refSents {
		for _, tok := range unionLCS(ref, canSents) {
			if canCounts[tok] <= 0 || refCounts[tok] <= 0 {
				continue
			}
			hits++
			canCounts[tok]--
			refCounts[tok]--
		}
	}

	recall := float64(hits) / float64(m)
	precision := float64(hits) / float64(n)
	return Score{Precision: precision, Recall: recall, FMeasure: fMeasure(precision, recall)}
}

// unionLCS returns reference tokens at the union of LCS indices across all
// candidate sentences.
func unionLCS(ref []string, cans [][]string) []string {
	seen := make(map[int]struct{})
	for _, can := range cans {
		for _, idx := range lcsIndices(ref, can) {
			seen[idx] = struct{}{}
		}
	}
	union := make([]int, 0, len(seen))
	for idx := range seen {
		union = append(union, idx)
	}
	sort.Ints(union)
	out := make([]string, 0, len(union))
	for _, idx := range union {
		out = append(out, ref[idx])
	}
	return out
}

// lcsIndices returns the ref indices of one LCS between ref and can.
func lcsIndices(ref, can []string) []int {
	rows, cols := len(ref), len(can)
	table := make([][]int, rows+1)
	for i := range table {
		table[i] = make([]int, cols+1)
	}
	for i := 1; i <= rows; i++ {
		for j := 1; j <= cols; j++ {
			switch {
			case ref[i-1] == can[j-1]:
				table[i][j] = table[i-1][j-1] + 1
			case table[i-1][j] >= table[i][j-1]:
				table[i][j] = table[i-1][j]
			default:
				table[i][j] = table[i][j-1]
			}
		}
	}
	i, j := rows, cols
	indices := make([]int, 0, table[i][j])
	for i > 0 && j > 0 {
		switch {
		case ref[i-1] == can[j-1]:
			indices = append(indices, i-1)
			i--
			j--
		case table[i][j-1] > table[i-1][j]:
			j--
		default:
			i--
		}
	}
	for left, right := 0, len(indices)-1; left < right; left, right = left+1, right-1 {
		indices[left], indices[right] = indices[right], indices[left]
	}
	return indices
}
