package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KuangshiAi/keo/epochtime"
	"github.com/KuangshiAi/keo/prediction"
)

func newPredictionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predictions",
		Short: "Manage tool prediction sets",
	}
	cmd.AddCommand(newPredictionsImportCommand(), newPredictionsListCommand())
	return cmd
}

func newPredictionsImportCommand() *cobra.Command {
	var (
		predictionSetID string
		tool            string
	)
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import tool predictions from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mgrs, err := setup()
			if err != nil {
				return err
			}
			defer mgrs.close()

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open predictions file: %w", err)
			}
			defer file.Close()

			predictions, err := prediction.ReadCSV(file)
			if err != nil {
				return fmt.Errorf("parse predictions file: %w", err)
			}

			set := &prediction.Set{
				PredictionSetID:   predictionSetID,
				Tool:              tool,
				Predictions:       predictions,
				CreationTimestamp: epochtime.Now(),
			}
			if err := mgrs.predictions.Put(cmd.Context(), cfg.Corpus, set); err != nil {
				return fmt.Errorf("store prediction set: %w", err)
			}
			logger.Info("prediction set imported",
				zap.String("corpus", cfg.Corpus),
				zap.String("predictionSetID", predictionSetID),
				zap.String("tool", tool),
				zap.Int("predictions", len(predictions)))
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d predictions into set %s\n",
				len(predictions), predictionSetID)
			return nil
		},
	}
	cmd.Flags().StringVar(&predictionSetID, "id", "", "prediction set identifier")
	cmd.Flags().StringVar(&tool, "tool", "", "name of the tool that produced the predictions")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newPredictionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List prediction set IDs for the corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mgrs, err := setup()
			if err != nil {
				return err
			}
			defer mgrs.close()

			ids, err := mgrs.predictions.List(cmd.Context(), cfg.Corpus)
			if err != nil {
				return fmt.Errorf("list prediction sets: %w", err)
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
