package storage

import "github.com/denisok6893-rgb/relocation-advisor/internal/domain"

// SeedCountries returns the built-in dataset. Each call returns a fresh
// copy; the records themselves are treated as immutable.
//
// Column order: cost of living, quality of life, safety, healthcare,
// climate, job market, english proficiency, visa ease, tax friendliness,
// internet speed (Mbps), expat community size.
func SeedCountries() []domain.Country {
	return []domain.Country{
		seedCountry("Portugal", 45, 75, 82, 72, 85, 60, 65, 75, 60, 95, domain.CommunityLarge),
		seedCountry("Spain", 50, 78, 80, 78, 88, 58, 60, 72, 55, 110, domain.CommunityLarge),
		seedCountry("Thailand", 30, 68, 70, 65, 75, 55, 50, 85, 70, 85, domain.CommunityLarge),
		seedCountry("Germany", 65, 85, 85, 88, 65, 82, 70, 60, 45, 120, domain.CommunityLarge),
		seedCountry("Mexico", 35, 65, 55, 60, 80, 60, 45, 90, 65, 70, domain.CommunityLarge),
		seedCountry("Canada", 70, 88, 88, 85, 60, 80, 95, 55, 50, 130, domain.CommunityLarge),
		seedCountry("Australia", 75, 90, 87, 87, 85, 78, 100, 50, 55, 110, domain.CommunityLarge),
		seedCountry("Estonia", 48, 72, 82, 70, 55, 72, 75, 80, 75, 150, domain.CommunityMedium),
		seedCountry("New Zealand", 72, 87, 90, 82, 82, 70, 100, 52, 58, 105, domain.CommunityMedium),
		seedCountry("Costa Rica", 40, 70, 68, 72, 88, 58, 52, 88, 68, 75, domain.CommunityLarge),
		seedCountry("Singapore", 85, 92, 95, 92, 70, 88, 85, 65, 80, 200, domain.CommunityLarge),
		seedCountry("Czech Republic", 42, 74, 80, 75, 68, 70, 65, 70, 65, 115, domain.CommunityMedium),
	}
}

func seedCountry(
	name string,
	cost, qol, safety, healthcare, climate, job, english, visa, tax, internet float64,
	community domain.CommunitySize,
) domain.Country {
	return domain.Country{
		Name: name,
		Metrics: map[domain.Metric]float64{
			domain.MetricCostOfLiving:  cost,
			domain.MetricQualityOfLife: qol,
			domain.MetricSafety:        safety,
			domain.MetricHealthcare:    healthcare,
			domain.MetricClimate:       climate,
			domain.MetricJobMarket:     job,
			domain.MetricEnglish:       english,
			domain.MetricVisaEase:      visa,
			domain.MetricTax:           tax,
			domain.MetricInternetSpeed: internet,
		},
		ExpatCommunity: community,
	}
}
