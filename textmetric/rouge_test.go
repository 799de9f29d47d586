package textmetric

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRougeIdentical(t *testing.T) {
	scores, err := Rouge(context.Background(), "the engine failed", "the engine failed",
		WithRougeTypes(RougeTypeRouge1, RougeTypeRouge2, RougeTypeRougeL))
	require.NoError(t, err)
	for _, rougeType := range []string{RougeTypeRouge1, RougeTypeRouge2, RougeTypeRougeL} {
		assert.Equal(t, 1.0, scores[rougeType].FMeasure, rougeType)
	}
}

func TestRouge1(t *testing.T) {
	scores, err := Rouge(context.Background(), "the engine failed on takeoff", "the engine failed",
		WithRougeTypes(RougeTypeRouge1))
	require.NoError(t, err)
	s := scores[RougeTypeRouge1]
	assert.Equal(t, 1.0, s.Precision)
	assert.InDelta(t, 0.6, s.Recall, 1e-9)
}

func TestRouge2Disjoint(t *testing.T) {
	scores, err := Rouge(context.Background(), "engine failure on takeoff", "gear collapsed during landing",
		WithRougeTypes(RougeTypeRouge2))
	require.NoError(t, err)
	assert.Equal(t, Score{}, scores[RougeTypeRouge2])
}

func TestRougeLSubsequence(t *testing.T) {
	// "the engine failed" is a subsequence of the reference even though the
	// matched words are not contiguous.
	scores, err := Rouge(context.Background(), "the left engine suddenly failed", "the engine failed",
		WithRougeTypes(RougeTypeRougeL))
	require.NoError(t, err)
	s := scores[RougeTypeRougeL]
	assert.Equal(t, 1.0, s.Precision)
	assert.InDelta(t, 0.6, s.Recall, 1e-9)
}

func TestRougeLsumNewlineSplit(t *testing.T) {
	scores, err := Rouge(context.Background(),
		"the engine failed\nthe pilot landed safely",
		"the engine failed\nthe pilot diverted",
		WithRougeTypes(RougeTypeRougeLsum))
	require.NoError(t, err)
	s := scores[RougeTypeRougeLsum]
	assert.Greater(t, s.FMeasure, 0.0)
	assert.Less(t, s.FMeasure, 1.0)
}

func TestRougeLsumPunktSplit(t *testing.T) {
	scores, err := Rouge(context.Background(),
		"The engine failed. The pilot landed safely.",
		"The engine failed. The pilot diverted.",
		WithRougeTypes(RougeTypeRougeLsum), WithSplitSummaries(true))
	require.NoError(t, err)
	assert.Greater(t, scores[RougeTypeRougeLsum].FMeasure, 0.0)
}

func TestRougeEmptyInputs(t *testing.T) {
	scores, err := Rouge(context.Background(), "", "the engine failed",
		WithRougeTypes(RougeTypeRouge1, RougeTypeRougeL))
	require.NoError(t, err)
	assert.Equal(t, Score{}, scores[RougeTypeRouge1])
	assert.Equal(t, Score{}, scores[RougeTypeRougeL])
}

func TestRougeNoTypes(t *testing.T) {
	scores, err := Rouge(context.Background(), "a", "a")
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestRougeInvalidType(t *testing.T) {
	_, err := Rouge(context.Background(), "a", "a", WithRougeTypes("rougeX"))
	require.Error(t, err)
	_, err = Rouge(context.Background(), "a", "a", WithRougeTypes("bleu"))
	require.Error(t, err)
}

func TestRougeWithStemmer(t *testing.T) {
	scores, err := Rouge(context.Background(), "the engines failed", "the engine failed",
		WithRougeTypes(RougeTypeRouge1), WithStemmer(true))
	require.NoError(t, err)
	assert.Equal(t, 1.0, scores[RougeTypeRouge1].FMeasure)
}

func TestBLEUIdentical(t *testing.T) {
	score := BLEU("the pilot landed the aircraft safely", "the pilot landed the aircraft safely")
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestBLEUShortIdenticalAnswer(t *testing.T) {
	// A two-token answer has no 3- or 4-grams. Those orders smooth to
	// epsilon instead of zeroing the whole score, so an exact short match
	// scores exp((ln 0.1 + ln 0.1) / 4) = sqrt(0.1).
	score := BLEU("replace pump", "replace pump")
	assert.InDelta(t, math.Sqrt(bleuEpsilon), score, 1e-9)
}

func TestBLEUPartial(t *testing.T) {
	score := BLEU("the pilot landed the aircraft safely", "the pilot landed the plane safely")
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 1.0)
}

func TestBLEUEmpty(t *testing.T) {
	assert.Equal(t, 0.0, BLEU("", "anything"))
	assert.Equal(t, 0.0, BLEU("anything", ""))
}

func TestBLEUSmoothedWhenNoHighOrderMatch(t *testing.T) {
	// No 3-gram or 4-gram overlap, but smoothing keeps the score positive.
	score := BLEU("engine failed on takeoff roll", "takeoff engine on failed roll")
	assert.Greater(t, score, 0.0)
}

func TestBLEUBrevityPenalty(t *testing.T) {
	long := BLEU("the pilot landed the aircraft safely", "the pilot landed the aircraft safely")
	short := BLEU("the pilot landed the aircraft safely", "the pilot landed")
	assert.Less(t, short, long)
}
