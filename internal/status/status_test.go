package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KuangshiAi/keo/status"
)

func TestSummarize(t *testing.T) {
	cases := []struct {
		name     string
		statuses []status.EvalStatus
		want     status.EvalStatus
	}{
		{"empty", nil, status.EvalStatusNotEvaluated},
		{"all passed", []status.EvalStatus{status.EvalStatusPassed, status.EvalStatusPassed}, status.EvalStatusPassed},
		{"failed wins", []status.EvalStatus{status.EvalStatusPassed, status.EvalStatusFailed}, status.EvalStatusFailed},
		{"passed over not evaluated", []status.EvalStatus{status.EvalStatusNotEvaluated, status.EvalStatusPassed}, status.EvalStatusPassed},
		{"all not evaluated", []status.EvalStatus{status.EvalStatusNotEvaluated}, status.EvalStatusNotEvaluated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Summarize(tc.statuses)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSummarizeUnknown(t *testing.T) {
	_, err := Summarize([]status.EvalStatus{status.EvalStatusUnknown})
	require.Error(t, err)
}

func TestJudge(t *testing.T) {
	assert.Equal(t, status.EvalStatusPassed, Judge(0.8, 0.8))
	assert.Equal(t, status.EvalStatusPassed, Judge(0.9, 0.8))
	assert.Equal(t, status.EvalStatusFailed, Judge(0.79, 0.8))
}
