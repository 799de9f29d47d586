package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KuangshiAi/keo/annotation"
)

func newGoldSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goldset",
		Short: "Manage gold-standard annotation sets",
	}
	cmd.AddCommand(newGoldSetImportCommand(), newGoldSetListCommand(), newGoldSetDeleteCommand())
	return cmd
}

func newGoldSetImportCommand() *cobra.Command {
	var goldSetID string
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import gold-standard annotations from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mgrs, err := setup()
			if err != nil {
				return err
			}
			defer mgrs.close()

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open annotations file: %w", err)
			}
			defer file.Close()

			annotations, err := annotation.ReadCSV(file)
			if err != nil {
				return fmt.Errorf("parse annotations file: %w", err)
			}

			ctx := cmd.Context()
			if _, err := mgrs.goldSets.Create(ctx, cfg.Corpus, goldSetID); err != nil {
				return fmt.Errorf("create gold set: %w", err)
			}
			for _, a := range annotations {
				if err := mgrs.goldSets.AddAnnotation(ctx, cfg.Corpus, goldSetID, a); err != nil {
					return fmt.Errorf("add annotation %s: %w", a.Key(), err)
				}
			}
			logger.Info("gold set imported",
				zap.String("corpus", cfg.Corpus),
				zap.String("goldSetID", goldSetID),
				zap.Int("annotations", len(annotations)))
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d annotations into gold set %s\n",
				len(annotations), goldSetID)
			return nil
		},
	}
	cmd.Flags().StringVar(&goldSetID, "id", "", "gold set identifier")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newGoldSetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List gold set IDs for the corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mgrs, err := setup()
			if err != nil {
				return err
			}
			defer mgrs.close()

			ids, err := mgrs.goldSets.List(cmd.Context(), cfg.Corpus)
			if err != nil {
				return fmt.Errorf("list gold sets: %w", err)
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newGoldSetDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <goldSetID>",
		Short: "Delete a gold set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mgrs, err := setup()
			if err != nil {
				return err
			}
			defer mgrs.close()

			if err := mgrs.goldSets.Delete(cmd.Context(), cfg.Corpus, args[0]); err != nil {
				return fmt.Errorf("delete gold set: %w", err)
			}
			logger.Info("gold set deleted",
				zap.String("corpus", cfg.Corpus), zap.String("goldSetID", args[0]))
			return nil
		},
	}
}
