// Package scenario carries named criteria presets: the built-in profiles the
// service ships with, plus user-authored YAML files. Presets are operator
// configuration, so unlike ad-hoc query criteria they are validated on load.
package scenario

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/denisok6893-rgb/relocation-advisor/internal/domain"
)

// Scenario is a named, reusable criteria preset.
type Scenario struct {
	Name        string          `json:"name" yaml:"name"`
	Slug        string          `json:"slug" yaml:"slug"`
	Description string          `json:"description" yaml:"description"`
	Criteria    domain.Criteria `json:"criteria" yaml:"criteria"`
	TopN        int             `json:"top_n" yaml:"top_n"`
}

// weightSumTolerance bounds how far a preset's weights may drift from 1.0.
const weightSumTolerance = 0.001

// BuiltIn returns the shipped presets. Each call returns a fresh copy.
func BuiltIn() []Scenario {
	return []Scenario{
		{
			Name:        "Digital Nomad",
			Slug:        "digital-nomad",
			Description: "Remote worker who needs fast internet and favors low cost, good climate, and easy visas.",
			Criteria: domain.Criteria{
				Weights: map[domain.Metric]float64{
					domain.MetricCostOfLiving:  0.25,
					domain.MetricQualityOfLife: 0.15,
					domain.MetricSafety:        0.15,
					domain.MetricHealthcare:    0.10,
					domain.MetricClimate:       0.15,
					domain.MetricJobMarket:     0.02,
					domain.MetricEnglish:       0.08,
					domain.MetricVisaEase:      0.10,
					domain.MetricTax:           0.00,
				},
				MinRequirements: map[domain.Metric]float64{
					domain.MetricInternetSpeed: 80,
					domain.MetricSafety:        60,
				},
			},
			TopN: 3,
		},
		{
			Name:        "Family Relocation",
			Slug:        "family-relocation",
			Description: "Family move that puts safety, healthcare, and quality of life ahead of cost.",
			Criteria: domain.Criteria{
				Weights: map[domain.Metric]float64{
					domain.MetricCostOfLiving:  0.10,
					domain.MetricQualityOfLife: 0.25,
					domain.MetricSafety:        0.25,
					domain.MetricHealthcare:    0.20,
					domain.MetricClimate:       0.05,
					domain.MetricJobMarket:     0.10,
					domain.MetricEnglish:       0.05,
					domain.MetricVisaEase:      0.00,
					domain.MetricTax:           0.00,
				},
				MinRequirements: map[domain.Metric]float64{
					domain.MetricSafety:        75,
					domain.MetricHealthcare:    70,
					domain.MetricQualityOfLife: 70,
				},
			},
			TopN: 3,
		},
		{
			Name:        "Budget Retiree",
			Slug:        "budget-retiree",
			Description: "Retiree stretching a fixed income: cheap living, solid healthcare, pleasant weather.",
			Criteria: domain.Criteria{
				Weights: map[domain.Metric]float64{
					domain.MetricCostOfLiving:  0.30,
					domain.MetricQualityOfLife: 0.15,
					domain.MetricSafety:        0.15,
					domain.MetricHealthcare:    0.20,
					domain.MetricClimate:       0.15,
					domain.MetricJobMarket:     0.00,
					domain.MetricEnglish:       0.05,
					domain.MetricVisaEase:      0.00,
					domain.MetricTax:           0.00,
				},
				MinRequirements: map[domain.Metric]float64{
					domain.MetricHealthcare: 60,
					domain.MetricSafety:     65,
				},
			},
			TopN: 3,
		},
	}
}

// Find returns the built-in scenario with the given slug.
func Find(slug string) (Scenario, bool) {
	for _, s := range BuiltIn() {
		if strings.EqualFold(s.Slug, slug) {
			return s, true
		}
	}
	return Scenario{}, false
}

// Slugs lists the built-in scenario slugs in order.
func Slugs() []string {
	presets := BuiltIn()
	out := make([]string, 0, len(presets))
	for _, s := range presets {
		out = append(out, s.Slug)
	}
	return out
}

// LoadFile reads one scenario from a YAML file and validates it.
func LoadFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario file: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("scenario file %s: %w", path, err)
	}
	return s, nil
}

// Validate checks the fields a preset must get right. Weights may be empty
// (the engine then applies its default distribution), but when present they
// must name known metrics, be non-negative, and sum to 1.0.
func (s Scenario) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("scenario has no name")
	}
	if strings.TrimSpace(s.Slug) == "" {
		return fmt.Errorf("scenario %q has no slug", s.Name)
	}
	if s.TopN < 0 {
		return fmt.Errorf("scenario %q: top_n must not be negative", s.Slug)
	}

	if len(s.Criteria.Weights) > 0 {
		var sum float64
		for metric, w := range s.Criteria.Weights {
			if _, err := domain.ParseMetric(string(metric)); err != nil {
				return fmt.Errorf("scenario %q weights: %w", s.Slug, err)
			}
			if w < 0 {
				return fmt.Errorf("scenario %q: negative weight %v for %s", s.Slug, w, metric)
			}
			sum += w
		}
		if math.Abs(sum-1.0) > weightSumTolerance {
			return fmt.Errorf("scenario %q: weights sum to %.4f, must sum to 1.0", s.Slug, sum)
		}
	}

	for metric, v := range s.Criteria.MinRequirements {
		if _, err := domain.ParseMetric(string(metric)); err != nil {
			return fmt.Errorf("scenario %q minimums: %w", s.Slug, err)
		}
		if v < 0 {
			return fmt.Errorf("scenario %q: negative minimum %v for %s", s.Slug, v, metric)
		}
	}
	return nil
}
