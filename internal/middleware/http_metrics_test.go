package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsRecordsRequests(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		path        string
		status      int
		wantPath    string
		wantMetrics bool
	}{
		{
			name:        "static route",
			method:      http.MethodPost,
			path:        "/recommend",
			status:      http.StatusOK,
			wantPath:    "/recommend",
			wantMetrics: true,
		},
		{
			name:        "country lookup normalized",
			method:      http.MethodGet,
			path:        "/countries/Portugal",
			status:      http.StatusOK,
			wantPath:    "/countries/{name}",
			wantMetrics: true,
		},
		{
			name:        "error status recorded",
			method:      http.MethodGet,
			path:        "/countries/Narnia",
			status:      http.StatusNotFound,
			wantPath:    "/countries/{name}",
			wantMetrics: true,
		},
		{
			name:        "health excluded",
			method:      http.MethodGet,
			path:        "/health",
			status:      http.StatusOK,
			wantMetrics: false,
		},
		{
			name:        "scrape endpoint excluded",
			method:      http.MethodGet,
			path:        "/metrics",
			status:      http.StatusOK,
			wantMetrics: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetrics()
			reg := prometheus.NewRegistry()
			require.NoError(t, m.Register(reg))

			handler := HTTPMetrics(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)

			if !tt.wantMetrics {
				assert.Zero(t, testutil.CollectAndCount(m.requestsTotal))
				return
			}
			count := testutil.ToFloat64(m.requestsTotal.WithLabelValues(tt.method, tt.wantPath, strconv.Itoa(tt.status)))
			assert.Equal(t, 1.0, count)
		})
	}
}

func TestHTTPMetricsInFlightGauge(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	var during float64
	handler := HTTPMetrics(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(m.requestsInFlight)
	}))

	req := httptest.NewRequest(http.MethodGet, "/countries", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1.0, during, "gauge should be raised while serving")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requestsInFlight), "gauge should drop after serving")
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/health", "/health"},
		{"/recommend", "/recommend"},
		{"/countries", "/countries"},
		{"/countries/Portugal", "/countries/{name}"},
		{"/countries/New Zealand", "/countries/{name}"},
		{"/countries/Portugal/evaluate", "/countries/{name}/evaluate"},
		{"/scenarios", "/scenarios"},
		{"/scenarios/digital-nomad", "/scenarios/{slug}"},
		{"/scenarios/digital-nomad/recommend", "/scenarios/{slug}/recommend"},
		{"/unknown/route", "/unknown/route"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizePath(tt.path))
		})
	}
}
