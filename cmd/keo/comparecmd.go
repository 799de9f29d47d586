package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KuangshiAi/keo/compare"
)

func newCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <reportID-A> <reportID-B>",
		Short: "Compare two evaluation reports of the same gold set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mgrs, err := setup()
			if err != nil {
				return err
			}
			defer mgrs.close()

			ctx := cmd.Context()
			reportA, err := mgrs.reports.Get(ctx, cfg.Corpus, args[0])
			if err != nil {
				return fmt.Errorf("get report %s: %w", args[0], err)
			}
			reportB, err := mgrs.reports.Get(ctx, cfg.Corpus, args[1])
			if err != nil {
				return fmt.Errorf("get report %s: %w", args[1], err)
			}

			comparison, err := compare.Reports(reportA, reportB)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), comparison.Render())
			return nil
		},
	}
}
