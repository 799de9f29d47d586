// Package compare provides method-vs-method comparison of evaluation reports
// produced by different tools over the same gold set.
package compare

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/KuangshiAi/keo/evalresult"
)

// scoreEpsilon below which two metric scores count as a tie.
const scoreEpsilon = 1e-9

// MetricComparison compares one metric between two tools.
type MetricComparison struct {
	// MetricName identifies the metric.
	MetricName string `json:"metricName"`
	// ScoreA is the first tool's average score.
	ScoreA float64 `json:"scoreA"`
	// ScoreB is the second tool's average score.
	ScoreB float64 `json:"scoreB"`
	// Difference is ScoreA minus ScoreB.
	Difference float64 `json:"difference"`
	// Winner names the tool with the higher score, empty on a tie.
	Winner string `json:"winner,omitempty"`
}

// Comparison is the outcome of comparing two reports.
type Comparison struct {
	// ToolA names the first tool.
	ToolA string `json:"toolA"`
	// ToolB names the second tool.
	ToolB string `json:"toolB"`
	// GoldSetID identifies the shared gold set.
	GoldSetID string `json:"goldSetId"`
	// Metrics holds the per-metric comparisons for metrics present in both reports.
	Metrics []*MetricComparison `json:"metrics,omitempty"`
	// WinsA counts metrics won by the first tool.
	WinsA int `json:"winsA"`
	// WinsB counts metrics won by the second tool.
	WinsB int `json:"winsB"`
	// Ties counts metrics with equal scores.
	Ties int `json:"ties"`
	// WinRateA is WinsA over the number of compared metrics.
	WinRateA float64 `json:"winRateA"`
	// WinRateB is WinsB over the number of compared metrics.
	WinRateB float64 `json:"winRateB"`
	// OverallWinner names the tool with more metric wins, empty on a tie.
	OverallWinner string `json:"overallWinner,omitempty"`
}

// Reports compares two evaluation reports metric by metric. Both reports must
// cover the same gold set; metrics present in only one report are skipped.
func Reports(a, b *evalresult.EvalReport) (*Comparison, error) {
	if a == nil || b == nil {
		return nil, errors.New("report is nil")
	}
	if a.GoldSetID != b.GoldSetID {
		return nil, fmt.Errorf("reports cover different gold sets: %q vs %q", a.GoldSetID, b.GoldSetID)
	}

	summaryA, err := evalresult.Summarize(a)
	if err != nil {
		return nil, fmt.Errorf("summarize report %s: %w", a.ReportID, err)
	}
	summaryB, err := evalresult.Summarize(b)
	if err != nil {
		return nil, fmt.Errorf("summarize report %s: %w", b.ReportID, err)
	}

	toolA := toolName(a, "A")
	toolB := toolName(b, "B")
	comparison := &Comparison{
		ToolA:     toolA,
		ToolB:     toolB,
		GoldSetID: a.GoldSetID,
	}

	scoresB := make(map[string]float64, len(summaryB.MetricSummaries))
	for _, ms := range summaryB.MetricSummaries {
		scoresB[ms.MetricName] = ms.AverageScore
	}
	for _, ms := range summaryA.MetricSummaries {
		scoreB, ok := scoresB[ms.MetricName]
		if !ok {
			continue
		}
		mc := &MetricComparison{
			MetricName: ms.MetricName,
			ScoreA:     ms.AverageScore,
			ScoreB:     scoreB,
			Difference: ms.AverageScore - scoreB,
		}
		switch {
		case math.Abs(mc.Difference) <= scoreEpsilon:
			comparison.Ties++
		case mc.Difference > 0:
			mc.Winner = toolA
			comparison.WinsA++
		default:
			mc.Winner = toolB
			comparison.WinsB++
		}
		comparison.Metrics = append(comparison.Metrics, mc)
	}

	if total := len(comparison.Metrics); total > 0 {
		comparison.WinRateA = float64(comparison.WinsA) / float64(total)
		comparison.WinRateB = float64(comparison.WinsB) / float64(total)
	}
	switch {
	case comparison.WinsA > comparison.WinsB:
		comparison.OverallWinner = toolA
	case comparison.WinsB > comparison.WinsA:
		comparison.OverallWinner = toolB
	}
	return comparison, nil
}

// Render formats the comparison as a plain-text summary.
func (c *Comparison) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Comparison of %s vs %s on gold set %s\n", c.ToolA, c.ToolB, c.GoldSetID)
	for _, mc := range c.Metrics {
		winner := mc.Winner
		if winner == "" {
			winner = "tie"
		}
		fmt.Fprintf(&b, "  %-28s %s=%.4f  %s=%.4f  diff=%+.4f  winner=%s\n",
			mc.MetricName, c.ToolA, mc.ScoreA, c.ToolB, mc.ScoreB, mc.Difference, winner)
	}
	fmt.Fprintf(&b, "Wins: %s=%d (%.0f%%), %s=%d (%.0f%%), ties=%d\n",
		c.ToolA, c.WinsA, c.WinRateA*100, c.ToolB, c.WinsB, c.WinRateB*100, c.Ties)
	if c.OverallWinner != "" {
		fmt.Fprintf(&b, "Overall winner: %s\n", c.OverallWinner)
	} else {
		b.WriteString("Overall: tie\n")
	}
	return b.String()
}

// toolName falls back to a positional label when the report has no tool name.
func toolName(report *evalresult.EvalReport, fallback string) string {
	if report.Tool != "" {
		return report.Tool
	}
	if report.ReportID != "" {
		return report.ReportID
	}
	return fallback
}
