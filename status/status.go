// Package status provides the status of an evaluation.
package status

// EvalStatus represents the status of an evaluation.
type EvalStatus int

const (
	// EvalStatusUnknown represents an unknown evaluation status.
	EvalStatusUnknown EvalStatus = iota
	// EvalStatusPassed represents a passed evaluation status.
	EvalStatusPassed
	// EvalStatusFailed represents a failed evaluation status.
	EvalStatusFailed
	// EvalStatusNotEvaluated represents a not evaluated evaluation status.
	EvalStatusNotEvaluated
)

// String returns the string representation of the evaluation status.
func (s EvalStatus) String() string {
	switch s {
	case EvalStatusPassed:
		return "passed"
	case EvalStatusFailed:
		return "failed"
	case EvalStatusNotEvaluated:
		return "not_evaluated"
	default:
		return "unknown"
	}
}

// LinkOutcome classifies a single gold annotation after linking evaluation.
type LinkOutcome int

const (
	// OutcomeUnknown represents an unclassified annotation.
	OutcomeUnknown LinkOutcome = iota
	// OutcomeCorrect means the matched prediction carries a correct link.
	OutcomeCorrect
	// OutcomeWrongQID means a prediction matched the mention but linked the wrong entity.
	OutcomeWrongQID
	// OutcomeMissing means no prediction matched the gold mention.
	OutcomeMissing
	// OutcomeSpurious means a prediction matched no gold mention.
	OutcomeSpurious
)

// String returns the string representation of the link outcome.
func (o LinkOutcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrongQID:
		return "wrong_qid"
	case OutcomeMissing:
		return "missing"
	case OutcomeSpurious:
		return "spurious"
	default:
		return "unknown"
	}
}
