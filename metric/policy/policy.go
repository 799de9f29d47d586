// Package policy defines configurable matching policies for evaluation metrics.
package policy

import (
	"fmt"
	"strings"

	"github.com/KuangshiAi/keo/internal/textnorm"
)

// MatchStrategy enumerates supported mention comparison strategies.
type MatchStrategy string

const (
	// MatchStrategyStrong matches normalized mentions exactly.
	MatchStrategyStrong MatchStrategy = "strong"
	// MatchStrategyWeak matches when either normalized mention contains the other.
	MatchStrategyWeak MatchStrategy = "weak"
)

// GoldPolicy enumerates gold-set acceptance policies for predicted QIDs.
type GoldPolicy string

const (
	// GoldPolicyPrimary accepts only the primary gold QID.
	GoldPolicyPrimary GoldPolicy = "primary"
	// GoldPolicyExtended accepts the primary gold QID or any listed alternative.
	GoldPolicyExtended GoldPolicy = "extended"
)

// LinkPolicy governs how entity-linking predictions are scored against gold
// annotations.
type LinkPolicy struct {
	// MatchStrategy selects the mention comparison rule.
	MatchStrategy MatchStrategy `json:"matchStrategy,omitempty"`
	// GoldPolicy selects which gold QIDs count as correct.
	GoldPolicy GoldPolicy `json:"goldPolicy,omitempty"`
	// IgnoreQIDs restricts scoring to mention detection only.
	IgnoreQIDs bool `json:"ignoreQids,omitempty"`
	// CountUnmatchedPredictions counts predictions that match no gold mention
	// as false positives.
	CountUnmatchedPredictions bool `json:"countUnmatchedPredictions,omitempty"`
}

// Default returns the default link policy: strong matching against the primary
// gold QID, with unmatched predictions counted as false positives.
func Default() *LinkPolicy {
	return &LinkPolicy{
		MatchStrategy:             MatchStrategyStrong,
		GoldPolicy:                GoldPolicyPrimary,
		CountUnmatchedPredictions: true,
	}
}

// Validate checks the policy fields against the supported values.
func (p *LinkPolicy) Validate() error {
	switch p.MatchStrategy {
	case MatchStrategyStrong, MatchStrategyWeak, "":
	default:
		return fmt.Errorf("invalid match strategy %q", p.MatchStrategy)
	}
	switch p.GoldPolicy {
	case GoldPolicyPrimary, GoldPolicyExtended, "":
	default:
		return fmt.Errorf("invalid gold policy %q", p.GoldPolicy)
	}
	return nil
}

// Extended reports whether alternative gold QIDs count as correct.
func (p *LinkPolicy) Extended() bool {
	return p.GoldPolicy == GoldPolicyExtended
}

// MentionsMatch compares a gold mention with a predicted mention under the
// configured strategy. Both sides are normalized first.
func (p *LinkPolicy) MentionsMatch(gold, predicted string) bool {
	goldNorm := textnorm.Normalize(gold)
	predNorm := textnorm.Normalize(predicted)
	if goldNorm == "" || predNorm == "" {
		return false
	}
	switch p.MatchStrategy {
	// Default to strong match.
	case MatchStrategyStrong, "":
		return goldNorm == predNorm
	case MatchStrategyWeak:
		return strings.Contains(goldNorm, predNorm) || strings.Contains(predNorm, goldNorm)
	default:
		return false
	}
}

// TextPolicy governs ground-truth answer comparison for QA evaluation.
type TextPolicy struct {
	// RougeTypes lists the ROUGE variants to compute, e.g. rouge1, rouge2, rougeL.
	RougeTypes []string `json:"rougeTypes,omitempty"`
	// UseStemmer enables Porter stemming during tokenization.
	UseStemmer bool `json:"useStemmer,omitempty"`
}

// Criterion aggregates the matching policies carried by a metric.
type Criterion struct {
	// Link configures entity-linking comparison.
	Link *LinkPolicy `json:"link,omitempty"`
	// Text configures ground-truth text comparison.
	Text *TextPolicy `json:"text,omitempty"`
}
