package domain

import (
	"fmt"
	"strings"
)

// Metric names one numeric attribute of a country. The set is closed:
// lookups go through Country.MetricValue, which reports absence explicitly.
type Metric string

const (
	MetricCostOfLiving  Metric = "cost_of_living_index"
	MetricQualityOfLife Metric = "quality_of_life_index"
	MetricSafety        Metric = "safety_index"
	MetricHealthcare    Metric = "healthcare_index"
	MetricClimate       Metric = "climate_score"
	MetricJobMarket     Metric = "job_market_score"
	MetricEnglish       Metric = "english_proficiency"
	MetricVisaEase      Metric = "visa_ease"
	MetricTax           Metric = "tax_friendliness"
	MetricInternetSpeed Metric = "internet_speed"
)

// StandardMetrics returns every metric a country record may carry. All are
// 0..100 scores by convention except internet_speed, an unbounded Mbps rate.
func StandardMetrics() []Metric {
	return []Metric{
		MetricCostOfLiving,
		MetricQualityOfLife,
		MetricSafety,
		MetricHealthcare,
		MetricClimate,
		MetricJobMarket,
		MetricEnglish,
		MetricVisaEase,
		MetricTax,
		MetricInternetSpeed,
	}
}

func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range StandardMetrics() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

type CommunitySize string

const (
	CommunitySmall  CommunitySize = "Small"
	CommunityMedium CommunitySize = "Medium"
	CommunityLarge  CommunitySize = "Large"
)

func ParseCommunitySize(s string) (CommunitySize, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return CommunitySmall, nil
	case "medium":
		return CommunityMedium, nil
	case "large":
		return CommunityLarge, nil
	default:
		return "", fmt.Errorf("unknown community size %q", s)
	}
}

// Country is immutable once constructed: the collection is loaded at startup
// and read-only for the process lifetime.
type Country struct {
	Name           string             `json:"name"`
	Metrics        map[Metric]float64 `json:"metrics"`
	ExpatCommunity CommunitySize      `json:"expat_community_size"`
}

// MetricValue returns the raw value for m and whether the country carries it.
func (c Country) MetricValue(m Metric) (float64, bool) {
	v, ok := c.Metrics[m]
	return v, ok
}

// Criteria is built fresh per query and never mutated afterwards. Weights
// carry no sum invariant; empty weights mean the default distribution.
// PreferredRegions and DealBreakers are carried as data only and are not
// consulted by filtering or scoring.
type Criteria struct {
	Weights          map[Metric]float64 `json:"weights" yaml:"weights"`
	MinRequirements  map[Metric]float64 `json:"min_requirements" yaml:"min_requirements"`
	PreferredRegions []string           `json:"preferred_regions,omitempty" yaml:"preferred_regions,omitempty"`
	DealBreakers     []string           `json:"deal_breakers,omitempty" yaml:"deal_breakers,omitempty"`
}

// Recommendation is one ranked result. MaxScore is the ceiling the weights
// that produced it can attain (100 when they sum to 1), carried so renderers
// never have to guess a denominator.
type Recommendation struct {
	Country   Country            `json:"country"`
	Score     float64            `json:"score"`
	MaxScore  float64            `json:"max_score"`
	Rank      int                `json:"rank"`
	Breakdown map[Metric]float64 `json:"breakdown"`
}

type CheckStatus string

const (
	CheckMet    CheckStatus = "met"
	CheckFailed CheckStatus = "failed"
	CheckAbsent CheckStatus = "absent"
)

type RequirementCheck struct {
	Metric    Metric      `json:"metric"`
	Threshold float64     `json:"threshold"`
	Value     float64     `json:"value"`
	Status    CheckStatus `json:"status"`
}

type EvaluationStatus string

const (
	EvaluationQualified    EvaluationStatus = "qualified"
	EvaluationDisqualified EvaluationStatus = "disqualified"
)

// Evaluation is the explicit per-country outcome: disqualification is a
// status with the failed checks attached, never a zero-score sentinel.
type Evaluation struct {
	Country   string             `json:"country"`
	Status    EvaluationStatus   `json:"status"`
	Checks    []RequirementCheck `json:"checks,omitempty"`
	Score     float64            `json:"score"`
	MaxScore  float64            `json:"max_score,omitempty"`
	Breakdown map[Metric]float64 `json:"breakdown,omitempty"`
}
