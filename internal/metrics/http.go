package metrics

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/restadmin/internal/dependencies/clock"
)

// statusRecorder captures the response status
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

// Middleware records request counts and latency per route template. It is
// meant for mux.Router.Use, so only matched routes are labelled.
func (m *Metrics) Middleware(clk clock.Clock) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := "unknown"
			if cur := mux.CurrentRoute(r); cur != nil {
				if tmpl, err := cur.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}

			start := clk.Now()
			wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.status)).Inc()
			m.RequestDuration.WithLabelValues(r.Method, route).Observe(clk.Since(start).Seconds())
		})
	}
}
