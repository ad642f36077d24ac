package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/denisok6893-rgb/relocation-advisor/internal/domain"
)

func newCountriesCommand() *cobra.Command {
	var (
		datasetPath string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List the countries in the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q: must be table or json", format)
			}

			engine, err := loadEngine(datasetPath, "")
			if err != nil {
				return err
			}
			countries := engine.Countries()
			out := cmd.OutOrStdout()

			if format == "json" {
				data, err := json.MarshalIndent(countries, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			fmt.Fprintf(out, "  %-20s %6s %6s %6s %6s %9s  %s\n",
				"Country", "Cost", "QoL", "Safety", "Health", "Internet", "Expat Community")
			fmt.Fprintln(out, strings.Repeat("-", 84))
			for _, c := range countries {
				fmt.Fprintf(out, "  %-20s %6s %6s %6s %6s %9s  %s\n",
					c.Name,
					metricCell(c, domain.MetricCostOfLiving),
					metricCell(c, domain.MetricQualityOfLife),
					metricCell(c, domain.MetricSafety),
					metricCell(c, domain.MetricHealthcare),
					metricCell(c, domain.MetricInternetSpeed),
					c.ExpatCommunity)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "country dataset file, JSON or CSV (default: embedded seed)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")

	return cmd
}

// metricCell renders one table cell, dash for an absent metric.
func metricCell(c domain.Country, m domain.Metric) string {
	v, ok := c.MetricValue(m)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%g", v)
}
