package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/denisok6893-rgb/relocation-advisor/internal/recommend"
	"github.com/denisok6893-rgb/relocation-advisor/internal/scenario"
)

func newScenariosCommand() *cobra.Command {
	var (
		datasetPath string
		weightsPath string
		runAll      bool
		format      string
	)

	cmd := &cobra.Command{
		Use:   "scenarios [slug]",
		Short: "List built-in scenarios or run one against the dataset",
		Long: `List the built-in relocation scenarios, or run them.

With no arguments, prints the scenario catalog. With a slug, runs that
scenario's criteria against the dataset and prints the ranked shortlist with
explanations. --all walks every scenario in order:

  advisor scenarios
  advisor scenarios digital-nomad
  advisor scenarios --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q: must be table or json", format)
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 && !runAll {
				return printScenarioCatalog(out, format)
			}

			engine, err := loadEngine(datasetPath, weightsPath)
			if err != nil {
				return err
			}

			var selected []scenario.Scenario
			if runAll {
				selected = scenario.BuiltIn()
			} else {
				sc, ok := scenario.Find(args[0])
				if !ok {
					return fmt.Errorf("unknown scenario %q: known scenarios are %s",
						args[0], strings.Join(scenario.Slugs(), ", "))
				}
				selected = []scenario.Scenario{sc}
			}

			if format == "json" {
				return printScenarioRunsJSON(out, engine, selected)
			}
			for i, sc := range selected {
				if i > 0 {
					fmt.Fprintln(out)
				}
				runScenario(out, engine, sc)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "country dataset file, JSON or CSV (default: embedded seed)")
	cmd.Flags().StringVar(&weightsPath, "weights", "", "JSON file overriding the default weight distribution")
	cmd.Flags().BoolVar(&runAll, "all", false, "run every built-in scenario")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")

	return cmd
}

func printScenarioCatalog(w io.Writer, format string) error {
	presets := scenario.BuiltIn()

	if format == "json" {
		data, err := json.MarshalIndent(presets, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "  %-20s %-24s %-5s %s\n", "Slug", "Name", "Top", "Description")
	fmt.Fprintln(w, strings.Repeat("-", 96))
	for _, sc := range presets {
		fmt.Fprintf(w, "  %-20s %-24s %-5d %s\n", sc.Slug, sc.Name, sc.TopN, sc.Description)
	}
	return nil
}

// runScenario prints a scenario header and the explanation block for each
// ranked result.
func runScenario(w io.Writer, engine *recommend.Engine, sc scenario.Scenario) {
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "Scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Fprintln(w, sc.Description)
	}
	fmt.Fprintln(w, strings.Repeat("=", 70))

	topN := sc.TopN
	if topN <= 0 {
		topN = recommend.DefaultTopN
	}
	results := engine.Recommend(sc.Criteria, topN)
	if len(results) == 0 {
		fmt.Fprintln(w, "No countries meet this scenario's requirements.")
		return
	}

	for _, rec := range results {
		fmt.Fprintf(w, "\n#%d Recommendation:\n", rec.Rank)
		fmt.Fprint(w, recommend.Explain(rec))
	}
}

type scenarioRunJSON struct {
	Scenario string               `json:"scenario"`
	Results  []recommendationJSON `json:"results"`
}

func printScenarioRunsJSON(w io.Writer, engine *recommend.Engine, selected []scenario.Scenario) error {
	runs := make([]scenarioRunJSON, 0, len(selected))
	for _, sc := range selected {
		topN := sc.TopN
		if topN <= 0 {
			topN = recommend.DefaultTopN
		}
		results := engine.Recommend(sc.Criteria, topN)

		items := make([]recommendationJSON, 0, len(results))
		for _, rec := range results {
			items = append(items, recommendationJSON{Recommendation: rec})
		}
		runs = append(runs, scenarioRunJSON{Scenario: sc.Slug, Results: items})
	}

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
