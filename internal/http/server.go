// Package httpapi exposes the recommendation engine over a JSON HTTP API.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/denisok6893-rgb/relocation-advisor/internal/domain"
	"github.com/denisok6893-rgb/relocation-advisor/internal/middleware"
	"github.com/denisok6893-rgb/relocation-advisor/internal/recommend"
	"github.com/denisok6893-rgb/relocation-advisor/internal/scenario"
)

type Server struct {
	Engine  *recommend.Engine
	Presets []scenario.Scenario

	// Metrics, when set, records result counts per recommendation request.
	Metrics *middleware.Metrics
	// Exposition, when set, is mounted at /metrics.
	Exposition http.Handler
}

func NewServer(engine *recommend.Engine, presets []scenario.Scenario) *Server {
	return &Server{Engine: engine, Presets: presets}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/recommend", s.handleRecommend)
	mux.HandleFunc("/countries", s.handleCountriesList)
	mux.HandleFunc("/countries/", s.handleCountrySubtree)
	mux.HandleFunc("/scenarios", s.handleScenariosList)
	mux.HandleFunc("/scenarios/", s.handleScenarioSubtree)
	if s.Exposition != nil {
		mux.Handle("/metrics", s.Exposition)
	}
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RecommendRequest carries the query criteria. TopN is a pointer so an
// absent field gets the conventional shortlist length while an explicit
// zero or negative value yields an empty result.
type RecommendRequest struct {
	Criteria domain.Criteria `json:"criteria"`
	TopN     *int            `json:"top_n"`
}

// RecommendationPayload is a ranked result, optionally with the rendered
// explanation when the caller asks for one.
type RecommendationPayload struct {
	domain.Recommendation
	Explanation string `json:"explanation,omitempty"`
}

type RecommendResponse struct {
	Results []RecommendationPayload `json:"results"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "use POST")
		return
	}

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	topN := recommend.DefaultTopN
	if req.TopN != nil {
		topN = *req.TopN
	}
	if v := r.URL.Query().Get("top_n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, ErrCodeValidation, "top_n must be an integer")
			return
		}
		topN = parsed
	}

	results := s.Engine.Recommend(req.Criteria, topN)
	s.observeResults(len(results))

	writeJSON(w, http.StatusOK, RecommendResponse{
		Results: s.buildPayloads(results, wantExplanations(r)),
	})
}

// ---- Countries API (read-only) ----

// CountrySummary is the list projection: name, community size, and the
// headline indexes. Pointers distinguish an absent metric from a zero.
type CountrySummary struct {
	Name           string               `json:"name"`
	ExpatCommunity domain.CommunitySize `json:"expat_community_size"`
	CostOfLiving   *float64             `json:"cost_of_living_index,omitempty"`
	QualityOfLife  *float64             `json:"quality_of_life_index,omitempty"`
	SafetyIndex    *float64             `json:"safety_index,omitempty"`
}

type CountriesListResponse struct {
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
	Total  int              `json:"total"`
	Items  []CountrySummary `json:"items"`
}

func (s *Server) handleCountriesList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "use GET")
		return
	}

	limit, offset := parseLimitOffset(r, 20, 0)
	countries := s.Engine.Countries()

	total := len(countries)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	items := make([]CountrySummary, 0, end-offset)
	for _, c := range countries[offset:end] {
		items = append(items, CountrySummary{
			Name:           c.Name,
			ExpatCommunity: c.ExpatCommunity,
			CostOfLiving:   metricPtr(c, domain.MetricCostOfLiving),
			QualityOfLife:  metricPtr(c, domain.MetricQualityOfLife),
			SafetyIndex:    metricPtr(c, domain.MetricSafety),
		})
	}

	writeJSON(w, http.StatusOK, CountriesListResponse{
		Limit:  limit,
		Offset: offset,
		Total:  total,
		Items:  items,
	})
}

func (s *Server) handleCountrySubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/countries/")
	if rest == "" {
		WriteError(w, http.StatusBadRequest, ErrCodeBadRequest, "missing country name")
		return
	}

	if name, ok := strings.CutSuffix(rest, "/evaluate"); ok {
		s.handleCountryEvaluate(w, r, name)
		return
	}
	s.handleCountryGet(w, r, rest)
}

func (s *Server) handleCountryGet(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "use GET")
		return
	}

	country, ok := s.findCountry(name)
	if !ok {
		WriteError(w, http.StatusNotFound, ErrCodeNotFound, "unknown country "+strconv.Quote(name))
		return
	}
	writeJSON(w, http.StatusOK, country)
}

// EvaluateRequest mirrors RecommendRequest without a result count: the
// outcome is always a single evaluation.
type EvaluateRequest struct {
	Criteria domain.Criteria `json:"criteria"`
}

func (s *Server) handleCountryEvaluate(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "use POST")
		return
	}

	country, ok := s.findCountry(name)
	if !ok {
		WriteError(w, http.StatusNotFound, ErrCodeNotFound, "unknown country "+strconv.Quote(name))
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	writeJSON(w, http.StatusOK, s.Engine.Evaluate(country, req.Criteria))
}

// ---- Scenarios API ----

type ScenariosListResponse struct {
	Scenarios []scenario.Scenario `json:"scenarios"`
}

type ScenarioRecommendResponse struct {
	Scenario string                  `json:"scenario"`
	Results  []RecommendationPayload `json:"results"`
}

func (s *Server) handleScenariosList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "use GET")
		return
	}
	writeJSON(w, http.StatusOK, ScenariosListResponse{Scenarios: s.Presets})
}

func (s *Server) handleScenarioSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/scenarios/")
	if rest == "" {
		WriteError(w, http.StatusBadRequest, ErrCodeBadRequest, "missing scenario slug")
		return
	}

	if slug, ok := strings.CutSuffix(rest, "/recommend"); ok {
		s.handleScenarioRecommend(w, r, slug)
		return
	}

	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "use GET")
		return
	}
	sc, ok := s.findScenario(rest)
	if !ok {
		WriteError(w, http.StatusNotFound, ErrCodeNotFound, "unknown scenario "+strconv.Quote(rest))
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleScenarioRecommend(w http.ResponseWriter, r *http.Request, slug string) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "use GET")
		return
	}

	sc, ok := s.findScenario(slug)
	if !ok {
		WriteError(w, http.StatusNotFound, ErrCodeNotFound, "unknown scenario "+strconv.Quote(slug))
		return
	}

	topN := sc.TopN
	if topN <= 0 {
		topN = recommend.DefaultTopN
	}
	if v := r.URL.Query().Get("top_n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, ErrCodeValidation, "top_n must be an integer")
			return
		}
		topN = parsed
	}

	results := s.Engine.Recommend(sc.Criteria, topN)
	s.observeResults(len(results))

	writeJSON(w, http.StatusOK, ScenarioRecommendResponse{
		Scenario: sc.Slug,
		Results:  s.buildPayloads(results, wantExplanations(r)),
	})
}

// ---- helpers ----

func (s *Server) findCountry(name string) (domain.Country, bool) {
	for _, c := range s.Engine.Countries() {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return domain.Country{}, false
}

func (s *Server) findScenario(slug string) (scenario.Scenario, bool) {
	for _, sc := range s.Presets {
		if strings.EqualFold(sc.Slug, slug) {
			return sc, true
		}
	}
	return scenario.Scenario{}, false
}

func (s *Server) buildPayloads(results []domain.Recommendation, explain bool) []RecommendationPayload {
	payloads := make([]RecommendationPayload, 0, len(results))
	for _, rec := range results {
		p := RecommendationPayload{Recommendation: rec}
		if explain {
			p.Explanation = recommend.Explain(rec)
		}
		payloads = append(payloads, p)
	}
	return payloads
}

func (s *Server) observeResults(n int) {
	if s.Metrics != nil {
		s.Metrics.ObserveRecommendation(n)
	}
}

func wantExplanations(r *http.Request) bool {
	explain, err := strconv.ParseBool(r.URL.Query().Get("explain"))
	return err == nil && explain
}

func parseLimitOffset(r *http.Request, defLimit, defOffset int) (int, int) {
	q := r.URL.Query()

	limit := defLimit
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = defLimit
	}
	// safety cap
	if limit > 200 {
		limit = 200
	}

	offset := defOffset
	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = defOffset
	}

	return limit, offset
}

func metricPtr(c domain.Country, m domain.Metric) *float64 {
	if v, ok := c.MetricValue(m); ok {
		return &v
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
