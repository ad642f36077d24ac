package recommend

import (
	"math"
	"sort"

	"github.com/denisok6893-rgb/relocation-advisor/internal/domain"
)

// DefaultTopN is the conventional shortlist length callers use when no
// explicit count is requested.
const DefaultTopN = 5

// Engine scores and ranks a fixed country collection against per-query
// criteria. The collection is read-only after construction and every query
// is an independent in-memory computation, so a single Engine is safe to
// share across concurrent callers.
type Engine struct {
	countries []domain.Country
	defaults  Weights
}

// NewEngine builds an engine over countries. The defaults distribution is
// used whenever a query's criteria carry no weights; pass nil to use
// DefaultWeights.
func NewEngine(countries []domain.Country, defaults Weights) *Engine {
	if len(defaults) == 0 {
		defaults = DefaultWeights()
	}
	return &Engine{countries: countries, defaults: defaults}
}

// Countries returns the collection the engine was constructed with.
func (e *Engine) Countries() []domain.Country { return e.countries }

// Recommend filters the collection by the criteria's minimum requirements,
// scores the survivors, and returns up to topN results in descending score
// order with ranks assigned from 1. topN <= 0 yields an empty result;
// callers wanting the conventional shortlist pass DefaultTopN.
func (e *Engine) Recommend(criteria domain.Criteria, topN int) []domain.Recommendation {
	if topN <= 0 {
		return nil
	}

	weights := e.effectiveWeights(criteria)
	maxScore := weights.Sum() * 100

	var out []domain.Recommendation
	for _, c := range e.countries {
		if !meetsRequirements(c, criteria.MinRequirements) {
			continue
		}
		score, breakdown := scoreCountry(c, weights)
		out = append(out, domain.Recommendation{
			Country:   c,
			Score:     score,
			MaxScore:  maxScore,
			Breakdown: breakdown,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > topN {
		out = out[:topN]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Evaluate reports the outcome for one country under the given criteria.
// Every minimum requirement yields a check (met, failed, or absent when the
// record lacks the metric); a qualified country also gets its score and
// breakdown. Disqualification is an explicit status here, never a zero
// score.
func (e *Engine) Evaluate(c domain.Country, criteria domain.Criteria) domain.Evaluation {
	ev := domain.Evaluation{
		Country: c.Name,
		Status:  domain.EvaluationQualified,
		Checks:  requirementChecks(c, criteria.MinRequirements),
	}
	for _, check := range ev.Checks {
		if check.Status == domain.CheckFailed {
			ev.Status = domain.EvaluationDisqualified
			break
		}
	}
	if ev.Status == domain.EvaluationQualified {
		weights := e.effectiveWeights(criteria)
		ev.Score, ev.Breakdown = scoreCountry(c, weights)
		ev.MaxScore = weights.Sum() * 100
	}
	return ev
}

func (e *Engine) effectiveWeights(criteria domain.Criteria) Weights {
	if len(criteria.Weights) > 0 {
		return Weights(criteria.Weights)
	}
	return e.defaults
}

// meetsRequirements is the single authoritative threshold gate. A country
// lacking a named metric satisfies that particular threshold.
func meetsRequirements(c domain.Country, minimums map[domain.Metric]float64) bool {
	for metric, threshold := range minimums {
		raw, ok := c.MetricValue(metric)
		if !ok {
			continue
		}
		if raw < threshold {
			return false
		}
	}
	return true
}

func requirementChecks(c domain.Country, minimums map[domain.Metric]float64) []domain.RequirementCheck {
	if len(minimums) == 0 {
		return nil
	}

	metrics := make([]domain.Metric, 0, len(minimums))
	for m := range minimums {
		metrics = append(metrics, m)
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i] < metrics[j] })

	checks := make([]domain.RequirementCheck, 0, len(metrics))
	for _, m := range metrics {
		check := domain.RequirementCheck{Metric: m, Threshold: minimums[m]}
		raw, ok := c.MetricValue(m)
		switch {
		case !ok:
			check.Status = domain.CheckAbsent
		case raw < check.Threshold:
			check.Value = raw
			check.Status = domain.CheckFailed
		default:
			check.Value = raw
			check.Status = domain.CheckMet
		}
		checks = append(checks, check)
	}
	return checks
}

// scoreCountry computes the weighted total and per-metric contributions.
// Cost of living is inverted (lower is cheaper) before weighting; all other
// metrics are used raw. Normalized values are clamped to 0..100, so weights
// summing to 1 keep the total on a 0..100 scale. Metrics the country does
// not carry are skipped silently. Contributions are accumulated in
// metric-name order so identical inputs always produce the identical total.
func scoreCountry(c domain.Country, weights Weights) (float64, map[domain.Metric]float64) {
	breakdown := make(map[domain.Metric]float64, len(weights))
	var total float64

	for _, metric := range weights.sortedMetrics() {
		weight := weights[metric]
		raw, ok := c.MetricValue(metric)
		if !ok {
			continue
		}

		normalized := raw
		if metric == domain.MetricCostOfLiving {
			normalized = 100 - raw
		}
		normalized = clamp(normalized, 0, 100)

		contribution := normalized * weight
		breakdown[metric] = contribution
		total += contribution
	}
	return total, breakdown
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
