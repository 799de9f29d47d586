package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvalStatusString(t *testing.T) {
	require.Equal(t, "passed", EvalStatusPassed.String())
	require.Equal(t, "failed", EvalStatusFailed.String())
	require.Equal(t, "not_evaluated", EvalStatusNotEvaluated.String())
	require.Equal(t, "unknown", EvalStatusUnknown.String())
	require.Equal(t, "unknown", EvalStatus(42).String())
}

func TestLinkOutcomeString(t *testing.T) {
	require.Equal(t, "correct", OutcomeCorrect.String())
	require.Equal(t, "wrong_qid", OutcomeWrongQID.String())
	require.Equal(t, "missing", OutcomeMissing.String())
	require.Equal(t, "spurious", OutcomeSpurious.String())
	require.Equal(t, "unknown", OutcomeUnknown.String())
}
