package providers

import (
	"net/http"
	"time"
)

// unmatchedRoute labels requests no route claimed, keeping label cardinality
// bounded when a bridge probes unknown paths.
const unmatchedRoute = "unmatched"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// MetricsMiddleware labels request metrics by the route pattern of api
// rather than the raw path and writes an access line to the channel of the
// request method. Server errors are logged as warnings.
func MetricsMiddleware(metrics MetricsProviderInterface, logger Logger, api *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := unmatchedRoute
		if _, pattern := api.Handler(r); pattern != "" {
			route = pattern
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()
		api.ServeHTTP(rec, r)
		elapsed := time.Since(started)

		metrics.IncRequestsTotal(route, rec.status)
		metrics.ObserveRequestDuration(route, elapsed)

		channel := GetLogTypeByRequestType(r.Method)
		if rec.status >= http.StatusInternalServerError {
			logger.Warnf(channel, "%s %s -> %d in %s", r.Method, r.URL.Path, rec.status, elapsed)
			return
		}
		logger.Debugf(channel, "%s %s -> %d in %s", r.Method, r.URL.Path, rec.status, elapsed)
	})
}
