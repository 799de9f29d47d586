package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	evaluation "github.com/KuangshiAi/keo"
	"github.com/KuangshiAi/keo/epochtime"
	"github.com/KuangshiAi/keo/metric"
	"github.com/KuangshiAi/keo/metric/policy"
	"github.com/KuangshiAi/keo/prediction"
)

func newEvalCommand() *cobra.Command {
	var (
		goldSetID   string
		predictions string
		tool        string
		metricNames []string
		strategy    string
		goldPolicy  string
		threshold   float64
		runs        int
		parallelism int
	)
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a prediction set against a gold set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mgrs, err := setup()
			if err != nil {
				return err
			}
			defer mgrs.close()

			ctx := cmd.Context()
			predictionSetID, err := resolvePredictions(ctx, cfg, mgrs, predictions, tool)
			if err != nil {
				return err
			}

			if threshold < 0 {
				threshold = cfg.DefaultThreshold
			}
			link := &policy.LinkPolicy{
				MatchStrategy:             policy.MatchStrategy(strategy),
				GoldPolicy:                policy.GoldPolicy(goldPolicy),
				CountUnmatchedPredictions: true,
			}
			if err := link.Validate(); err != nil {
				return err
			}
			metrics := make([]*metric.EvalMetric, 0, len(metricNames))
			for _, name := range metricNames {
				metrics = append(metrics, &metric.EvalMetric{
					MetricName: name,
					Threshold:  threshold,
					Criterion:  &policy.Criterion{Link: link},
				})
			}
			if err := mgrs.metrics.Save(ctx, cfg.Corpus, goldSetID, metrics); err != nil {
				return fmt.Errorf("save metric configuration: %w", err)
			}

			ev, err := evaluation.New(cfg.Corpus,
				evaluation.WithGoldSetManager(mgrs.goldSets),
				evaluation.WithPredictionManager(mgrs.predictions),
				evaluation.WithMetricManager(mgrs.metrics),
				evaluation.WithResultManager(mgrs.reports),
				evaluation.WithNumRuns(runs),
				evaluation.WithParallelism(parallelism),
			)
			if err != nil {
				return err
			}
			defer ev.Close()

			logger.Info("evaluation started",
				zap.String("corpus", cfg.Corpus),
				zap.String("goldSetID", goldSetID),
				zap.String("predictionSetID", predictionSetID),
				zap.Strings("metrics", metricNames),
				zap.Int("runs", runs))
			result, err := ev.Evaluate(ctx, goldSetID, predictionSetID)
			if err != nil {
				return err
			}
			logger.Info("evaluation finished",
				zap.String("reportID", result.Report.ReportID),
				zap.String("status", result.OverallStatus.String()),
				zap.Duration("executionTime", result.ExecutionTime))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "report:  %s\n", result.Report.ReportID)
			fmt.Fprintf(out, "tool:    %s\n", result.Tool)
			fmt.Fprintf(out, "status:  %s\n", result.OverallStatus)
			for _, ms := range result.Summary.MetricSummaries {
				fmt.Fprintf(out, "%s: avg score %.4f (threshold %.2f) %s\n",
					ms.MetricName, ms.AverageScore, ms.Threshold, ms.EvalStatus)
			}
			// Counts from the first run give the per-link breakdown.
			if len(result.Report.Runs) > 0 {
				for _, mr := range result.Report.Runs[0].MetricResults {
					if mr.Tally == nil {
						continue
					}
					fmt.Fprintf(out, "%s: precision %.4f recall %.4f (tp %d fp %d fn %d tn %d)\n",
						mr.MetricName, mr.Tally.Precision(), mr.Tally.Recall(),
						mr.Tally.TP, mr.Tally.FP, mr.Tally.FN, mr.Tally.TN)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&goldSetID, "goldset", "", "gold set identifier")
	cmd.Flags().StringVar(&predictions, "predictions", "",
		"prediction set identifier, or a CSV file to import first")
	cmd.Flags().StringVar(&tool, "tool", "", "tool name recorded when importing a CSV file")
	cmd.Flags().StringSliceVar(&metricNames, "metric", []string{metric.MetricEntityLinkingF1},
		"metric names to evaluate")
	cmd.Flags().StringVar(&strategy, "strategy", string(policy.MatchStrategyStrong),
		"mention match strategy: strong or weak")
	cmd.Flags().StringVar(&goldPolicy, "policy", string(policy.GoldPolicyPrimary),
		"gold QID policy: primary or extended")
	cmd.Flags().Float64Var(&threshold, "threshold", -1,
		"minimum passing score, defaults to the configured threshold")
	cmd.Flags().IntVar(&runs, "runs", 1, "number of evaluation runs")
	cmd.Flags().IntVar(&parallelism, "parallelism", 4, "number of concurrent evaluation tasks")
	_ = cmd.MarkFlagRequired("goldset")
	_ = cmd.MarkFlagRequired("predictions")
	return cmd
}

// resolvePredictions returns the prediction set ID to evaluate. When ref names
// an existing CSV file, the file is imported first under an ID derived from
// its name.
func resolvePredictions(ctx context.Context, cfg *config, mgrs *managers, ref, tool string) (string, error) {
	info, err := os.Stat(ref)
	if err != nil || info.IsDir() {
		return ref, nil
	}
	file, err := os.Open(ref)
	if err != nil {
		return "", fmt.Errorf("open predictions file: %w", err)
	}
	defer file.Close()

	preds, err := prediction.ReadCSV(file)
	if err != nil {
		return "", fmt.Errorf("parse predictions file: %w", err)
	}
	id := strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
	set := &prediction.Set{
		PredictionSetID:   id,
		Tool:              tool,
		Predictions:       preds,
		CreationTimestamp: epochtime.Now(),
	}
	if err := mgrs.predictions.Put(ctx, cfg.Corpus, set); err != nil {
		return "", fmt.Errorf("store prediction set %s: %w", id, err)
	}
	logger.Info("predictions imported for evaluation",
		zap.String("corpus", cfg.Corpus),
		zap.String("predictionSetID", id),
		zap.String("tool", tool),
		zap.Int("predictions", len(preds)))
	return id, nil
}
