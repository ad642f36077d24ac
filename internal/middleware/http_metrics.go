package middleware

import (
	"net/http"
	"strings"
	"time"
)

// HTTPMetrics records request duration, count, and in-flight gauge for every
// request except the health and scrape endpoints. Paths are normalized to
// route patterns so country and scenario names do not explode label
// cardinality.
func HTTPMetrics(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			metrics.requestsInFlight.Inc()
			defer metrics.requestsInFlight.Dec()

			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			metrics.ObserveRequest(r.Method, normalizePath(r.URL.Path), rw.statusCode, time.Since(start).Seconds())
		})
	}
}

// normalizePath collapses parameterized routes into their patterns.
func normalizePath(path string) string {
	switch path {
	case "/", "/health", "/metrics", "/recommend", "/countries", "/scenarios":
		return path
	}

	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	if strings.HasPrefix(path, "/countries/") {
		switch {
		case len(parts) == 4 && parts[3] == "evaluate":
			return "/countries/{name}/evaluate"
		case len(parts) == 3 && parts[2] != "":
			return "/countries/{name}"
		}
	}
	if strings.HasPrefix(path, "/scenarios/") {
		switch {
		case len(parts) == 4 && parts[3] == "recommend":
			return "/scenarios/{slug}/recommend"
		case len(parts) == 3 && parts[2] != "":
			return "/scenarios/{slug}"
		}
	}
	return path
}
