package web

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gricha/site/game"
)

type metrics struct {
	requests *prometheus.CounterVec
	commands *prometheus.CounterVec
	attempts prometheus.Histogram
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "site",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "site",
			Name:      "game_commands_total",
			Help:      "Game commands by outcome.",
		}, []string{"outcome"}),
		attempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "site",
			Name:      "game_command_attempts",
			Help:      "Attempts spent per game command.",
			Buckets:   []float64{1, 2, 3, 5},
		}),
	}
	registerer.MustRegister(m.requests, m.commands, m.attempts)
	return m
}

func (m *metrics) observe(result game.Result) {
	m.commands.WithLabelValues(string(result.Outcome)).Inc()
	m.attempts.Observe(float64(result.Attempts))
}

func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(recorder.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
