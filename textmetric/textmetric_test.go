package textmetric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("R&R the Hydraulic Pump, P/N 123-45.", false)
	assert.Equal(t, []string{"r", "r", "the", "hydraulic", "pump", "p", "n", "123", "45"}, tokens)
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Empty(t, Tokenize("", false))
	assert.Empty(t, Tokenize("...!!!", false))
}

func TestTokenizeWithStemmer(t *testing.T) {
	tokens := Tokenize("the pilots were landing repeatedly", true)
	assert.Equal(t, []string{"the", "pilot", "were", "land", "repeatedli"}, tokens)
}

func TestPorterStem(t *testing.T) {
	cases := map[string]string{
		"caresses":    "caress",
		"ponies":      "poni",
		"running":     "run",
		"relational":  "relat",
		"conditional": "condit",
		"hopeful":     "hope",
		"engines":     "engin",
		"adjustment":  "adjust",
		"replacement": "replac",
	}
	for word, want := range cases {
		assert.Equal(t, want, porterStem(word), "stem(%s)", word)
	}
}

func TestExactMatch(t *testing.T) {
	assert.True(t, ExactMatch("The engine failed.", "the engine failed"))
	assert.False(t, ExactMatch("the engine failed", "the engine stalled"))
	assert.True(t, ExactMatch("", ""))
}

func TestOverlapF1(t *testing.T) {
	s := OverlapF1("the engine failed on takeoff", "the engine failed")
	assert.Equal(t, 1.0, s.Precision)
	assert.InDelta(t, 0.6, s.Recall, 1e-9)
	assert.InDelta(t, 0.75, s.FMeasure, 1e-9)
}

func TestOverlapF1Disjoint(t *testing.T) {
	s := OverlapF1("engine failure", "landing gear")
	assert.Equal(t, Score{}, s)

	assert.Equal(t, Score{}, OverlapF1("", "anything"))
}
