// Command keo evaluates entity-linking tool output against gold-standard
// annotations and reports precision, recall and F1.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	logger *zap.Logger

	flagConfig string
	flagCorpus string
	flagDebug  bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "keo",
		Short:         "Evaluate entity-linking tool output against gold-standard annotations",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if flagDebug {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&flagConfig, "config", "keo.yaml", "path to the configuration file")
	cmd.PersistentFlags().StringVar(&flagCorpus, "corpus", "", "corpus name, overrides the configured default (alias: --app)")
	cmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	// --app is the historical name for --corpus; normalize it to the same flag.
	cmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "app" {
			name = "corpus"
		}
		return pflag.NormalizedName(name)
	})

	cmd.AddCommand(
		newGoldSetCommand(),
		newPredictionsCommand(),
		newEvalCommand(),
		newReportCommand(),
		newCompareCommand(),
	)
	return cmd
}

// setup loads the configuration and builds the storage managers. The caller
// must close the returned managers.
func setup() (*config, *managers, error) {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	if flagCorpus != "" {
		cfg.Corpus = flagCorpus
	}
	mgrs, err := cfg.build()
	if err != nil {
		return nil, nil, err
	}
	return cfg, mgrs, nil
}
