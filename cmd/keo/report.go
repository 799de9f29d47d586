package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KuangshiAi/keo/evalresult"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect stored evaluation reports",
	}
	cmd.AddCommand(newReportListCommand(), newReportShowCommand())
	return cmd
}

func newReportListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List report IDs for the corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mgrs, err := setup()
			if err != nil {
				return err
			}
			defer mgrs.close()

			ids, err := mgrs.reports.List(cmd.Context(), cfg.Corpus)
			if err != nil {
				return fmt.Errorf("list reports: %w", err)
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newReportShowCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <reportID>",
		Short: "Show a stored evaluation report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mgrs, err := setup()
			if err != nil {
				return err
			}
			defer mgrs.close()

			report, err := mgrs.reports.Get(cmd.Context(), cfg.Corpus, args[0])
			if err != nil {
				return fmt.Errorf("get report: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			summary, err := evalresult.Summarize(report)
			if err != nil {
				return fmt.Errorf("summarize report: %w", err)
			}
			fmt.Fprintf(out, "report:      %s\n", report.ReportID)
			fmt.Fprintf(out, "gold set:    %s\n", report.GoldSetID)
			fmt.Fprintf(out, "predictions: %s\n", report.PredictionSetID)
			if report.Tool != "" {
				fmt.Fprintf(out, "tool:        %s\n", report.Tool)
			}
			fmt.Fprintf(out, "status:      %s (%d runs)\n", summary.OverallStatus, summary.NumRuns)
			for _, ms := range summary.MetricSummaries {
				fmt.Fprintf(out, "  %s: avg score %.4f (threshold %.2f) %s\n",
					ms.MetricName, ms.AverageScore, ms.Threshold, ms.EvalStatus)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	return cmd
}
