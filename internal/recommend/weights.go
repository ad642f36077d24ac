package recommend

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/denisok6893-rgb/relocation-advisor/internal/domain"
)

// Weights maps a metric to its scoring weight.
type Weights map[domain.Metric]float64

// DefaultWeights returns the standard nine-metric distribution applied when
// a query carries no weights of its own. It sums to 1.0, which keeps
// default-weighted totals on a 0..100 scale.
func DefaultWeights() Weights {
	return Weights{
		domain.MetricCostOfLiving:  0.15,
		domain.MetricQualityOfLife: 0.20,
		domain.MetricSafety:        0.15,
		domain.MetricHealthcare:    0.10,
		domain.MetricClimate:       0.10,
		domain.MetricJobMarket:     0.10,
		domain.MetricEnglish:       0.05,
		domain.MetricVisaEase:      0.10,
		domain.MetricTax:           0.05,
	}
}

// Sum returns the total of all weights. Terms are added in metric-name
// order so the float result is identical across calls.
func (w Weights) Sum() float64 {
	var sum float64
	for _, m := range w.sortedMetrics() {
		sum += w[m]
	}
	return sum
}

// sortedMetrics returns the weighted metric names in ascending order.
// Float accumulation is not associative, so anything summing over the map
// must not follow its iteration order.
func (w Weights) sortedMetrics() []domain.Metric {
	metrics := make([]domain.Metric, 0, len(w))
	for m := range w {
		metrics = append(metrics, m)
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i] < metrics[j] })
	return metrics
}

// LoadWeights reads a JSON object of metric name to weight and merges its
// non-zero entries over the default distribution, logging which metrics were
// recalibrated. On a missing or malformed file the defaults are returned
// alongside the error so the caller can log and continue.
func LoadWeights(path string) (Weights, error) {
	defaults := DefaultWeights()

	b, err := os.ReadFile(path)
	if err != nil {
		return defaults, fmt.Errorf("read weights file: %w", err)
	}

	var overrides map[domain.Metric]float64
	if err := json.Unmarshal(b, &overrides); err != nil {
		return defaults, fmt.Errorf("unmarshal weights: %w", err)
	}

	merged := make(Weights, len(defaults))
	for m, v := range defaults {
		merged[m] = v
	}

	var recalibrated []string
	for m, v := range overrides {
		if v == 0 {
			continue
		}
		merged[m] = v
		recalibrated = append(recalibrated, string(m))
	}
	if len(recalibrated) > 0 {
		sort.Strings(recalibrated)
		slog.Info("weight calibration applied", "path", path, "metrics", recalibrated)
	}
	return merged, nil
}
