package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/denisok6893-rgb/relocation-advisor/internal/recommend"
	"github.com/denisok6893-rgb/relocation-advisor/internal/storage"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advisor",
		Short: "Advisor - rank relocation destinations against your criteria",
		Long: `Advisor scores countries against weighted criteria and minimum
requirements, then ranks the survivors into a shortlist.

It ships with a built-in country dataset; point --dataset at a JSON or CSV
file to rank your own data instead.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRecommendCommand())
	cmd.AddCommand(newScenariosCommand())
	cmd.AddCommand(newCountriesCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// loadEngine builds the engine the data-driven commands share. An empty
// dataset path means the embedded seed collection; an unreadable weights
// file degrades to the default distribution with a warning.
func loadEngine(datasetPath, weightsPath string) (*recommend.Engine, error) {
	countries := storage.SeedCountries()
	if datasetPath != "" {
		var err error
		countries, err = storage.LoadDataset(datasetPath)
		if err != nil {
			return nil, err
		}
	}

	var weights recommend.Weights
	if weightsPath != "" {
		var err error
		weights, err = recommend.LoadWeights(weightsPath)
		if err != nil {
			slog.Warn("using default weights", "reason", err)
		}
	}

	return recommend.NewEngine(countries, weights), nil
}
