// Package recommend implements the country scoring and ranking engine.
//
// An Engine is constructed once over a read-only country collection and then
// serves independent queries: filter by minimum requirements, score each
// survivor as the weighted sum of its normalized metrics (cost of living is
// inverted so that cheaper is better), sort descending, truncate.
//
// Basic usage:
//
//	engine := recommend.NewEngine(countries, nil)
//	results := engine.Recommend(domain.Criteria{
//		MinRequirements: map[domain.Metric]float64{
//			domain.MetricSafety:        70,
//			domain.MetricInternetSpeed: 80,
//		},
//	}, recommend.DefaultTopN)
//	for _, rec := range results {
//		fmt.Println(recommend.Explain(rec))
//	}
//
// Queries with no weights use the engine's default distribution, either
// DefaultWeights or a calibration file loaded with LoadWeights. Evaluate
// answers the complementary question for a single country: which minimum
// requirements it met, failed, or does not carry a value for.
package recommend
