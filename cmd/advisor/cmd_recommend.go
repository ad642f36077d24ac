package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/denisok6893-rgb/relocation-advisor/internal/domain"
	"github.com/denisok6893-rgb/relocation-advisor/internal/recommend"
	"github.com/denisok6893-rgb/relocation-advisor/internal/scenario"
	"github.com/denisok6893-rgb/relocation-advisor/internal/wizard"
)

func newRecommendCommand() *cobra.Command {
	var (
		weightFlags []string
		minFlags    []string
		topN        int
		scenarioID  string
		scenarioYML string
		datasetPath string
		weightsPath string
		format      string
		explain     bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank countries against weighted criteria",
		Long: `Rank countries against weighted criteria and minimum requirements.

Weights and minimums take metric=value pairs and may repeat:

  advisor recommend --weight cost_of_living_index=0.3 --weight safety_index=0.2 \
    --min internet_speed=80 --top 3

Start from a built-in scenario and refine it:

  advisor recommend --scenario digital-nomad --min safety_index=70

Or collect everything interactively:

  advisor recommend --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q: must be table or json", format)
			}
			if topN < 1 {
				return fmt.Errorf("--top must be at least 1, got %d", topN)
			}

			engine, err := loadEngine(datasetPath, weightsPath)
			if err != nil {
				return err
			}

			var criteria domain.Criteria
			top := topN

			switch {
			case interactive:
				answers, err := wizard.Run(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				criteria = answers.Criteria
				if !cmd.Flags().Changed("top") {
					top = answers.TopN
				}

			case scenarioID != "":
				sc, ok := scenario.Find(scenarioID)
				if !ok {
					return fmt.Errorf("unknown scenario %q: known scenarios are %s",
						scenarioID, strings.Join(scenario.Slugs(), ", "))
				}
				criteria = sc.Criteria
				if !cmd.Flags().Changed("top") && sc.TopN > 0 {
					top = sc.TopN
				}

			case scenarioYML != "":
				sc, err := scenario.LoadFile(scenarioYML)
				if err != nil {
					return err
				}
				criteria = sc.Criteria
				if !cmd.Flags().Changed("top") && sc.TopN > 0 {
					top = sc.TopN
				}
			}

			// Flag-level weights and minimums refine whatever base the
			// scenario (or wizard) provided.
			if len(weightFlags) > 0 {
				overrides, err := parseMetricAssignments(weightFlags)
				if err != nil {
					return fmt.Errorf("--weight: %w", err)
				}
				if criteria.Weights == nil {
					criteria.Weights = map[domain.Metric]float64{}
				}
				for m, v := range overrides {
					criteria.Weights[m] = v
				}
			}
			if len(minFlags) > 0 {
				minimums, err := parseMetricAssignments(minFlags)
				if err != nil {
					return fmt.Errorf("--min: %w", err)
				}
				if criteria.MinRequirements == nil {
					criteria.MinRequirements = map[domain.Metric]float64{}
				}
				for m, v := range minimums {
					criteria.MinRequirements[m] = v
				}
			}

			results := engine.Recommend(criteria, top)
			out := cmd.OutOrStdout()

			if format == "json" {
				return printResultsJSON(out, results, explain)
			}

			printRecommendationsTable(out, results)
			if explain {
				for _, rec := range results {
					fmt.Fprintln(out)
					fmt.Fprint(out, recommend.Explain(rec))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&weightFlags, "weight", nil, "metric=value scoring weight, repeatable")
	cmd.Flags().StringArrayVar(&minFlags, "min", nil, "metric=value minimum requirement, repeatable")
	cmd.Flags().IntVar(&topN, "top", recommend.DefaultTopN, "number of countries to shortlist")
	cmd.Flags().StringVar(&scenarioID, "scenario", "", "start from a built-in scenario (see 'advisor scenarios')")
	cmd.Flags().StringVar(&scenarioYML, "scenario-file", "", "start from a scenario YAML file")
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "country dataset file, JSON or CSV (default: embedded seed)")
	cmd.Flags().StringVar(&weightsPath, "weights", "", "JSON file overriding the default weight distribution")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")
	cmd.Flags().BoolVar(&explain, "explain", false, "print a detailed explanation per country")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "collect criteria through an interactive wizard")

	// A run takes its base criteria from at most one source.
	cmd.MarkFlagsMutuallyExclusive("interactive", "scenario", "scenario-file")

	return cmd
}

// parseMetricAssignments parses repeatable metric=value flags.
func parseMetricAssignments(pairs []string) (map[domain.Metric]float64, error) {
	out := make(map[domain.Metric]float64, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%q is not in metric=value form", pair)
		}
		m, err := domain.ParseMetric(key)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("value for %s: %q is not a number", m, value)
		}
		if v < 0 {
			return nil, fmt.Errorf("value for %s cannot be negative", m)
		}
		out[m] = v
	}
	return out, nil
}

// recommendationJSON is the CLI's JSON projection of one result.
type recommendationJSON struct {
	domain.Recommendation
	Explanation string `json:"explanation,omitempty"`
}

func printResultsJSON(w io.Writer, results []domain.Recommendation, explain bool) error {
	payload := make([]recommendationJSON, 0, len(results))
	for _, rec := range results {
		item := recommendationJSON{Recommendation: rec}
		if explain {
			item.Explanation = recommend.Explain(rec)
		}
		payload = append(payload, item)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printRecommendationsTable(w io.Writer, results []domain.Recommendation) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No countries meet the given requirements.")
		return
	}

	fmt.Fprintf(w, "  %-6s %-20s %-10s %s\n", "Rank", "Country", "Score", "Expat Community")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, rec := range results {
		fmt.Fprintf(w, "  %-6d %-20s %-10.2f %s\n",
			rec.Rank, rec.Country.Name, rec.Score, rec.Country.ExpatCommunity)
	}
}
