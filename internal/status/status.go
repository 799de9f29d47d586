// Package status provides functions to summarize evaluation statuses.
package status

import (
	"fmt"

	"github.com/KuangshiAi/keo/status"
)

// Summarize reduces a collection of statuses into a single value. A Failed
// entry wins over everything, a Passed entry wins over NotEvaluated.
func Summarize(statuses []status.EvalStatus) (status.EvalStatus, error) {
	combined := status.EvalStatusNotEvaluated
	for _, s := range statuses {
		switch s {
		case status.EvalStatusFailed:
			return status.EvalStatusFailed, nil
		case status.EvalStatusPassed:
			combined = status.EvalStatusPassed
		case status.EvalStatusNotEvaluated:
			continue
		default:
			return status.EvalStatusFailed, fmt.Errorf("unexpected eval status %v", s)
		}
	}
	return combined, nil
}

// Judge maps a score and threshold to a pass or fail status.
func Judge(score, threshold float64) status.EvalStatus {
	if score >= threshold {
		return status.EvalStatusPassed
	}
	return status.EvalStatusFailed
}
