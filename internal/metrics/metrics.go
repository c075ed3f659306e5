// apps/go-server/internal/metrics/metrics.go
//
// Prometheus instrumentation on a private registry.
// Counters are fed from handler results; HTTP metrics are recorded by
// Middleware using the chi route pattern as the route label.

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/games/apps/go-server/internal/chain"
	"github.com/robalobadob/games/apps/go-server/internal/robot"
)

// Command kinds used as the "kind" label of games_robot_commands_total.
const (
	KindAdvance   = "advance"
	KindTurnLeft  = "turn_left"
	KindTurnRight = "turn_right"
	KindUnknown   = "unknown"
)

type Metrics struct {
	reg *prometheus.Registry

	robotCommands  *prometheus.CounterVec
	robotAnomalies *prometheus.CounterVec
	wordVerdicts   *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New registers all collectors, plus Go and process collectors, on a fresh
// registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		robotCommands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "games_robot_commands_total",
				Help: "Robot command tokens processed, by kind",
			},
			[]string{"kind"},
		),
		robotAnomalies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "games_robot_anomalies_total",
				Help: "Robot anomalies recorded, by kind",
			},
			[]string{"kind"},
		),
		wordVerdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "games_word_verdicts_total",
				Help: "Word chain verdicts, by reason (accepted for none)",
			},
			[]string{"reason"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "games_http_requests_total",
				Help: "HTTP requests served, by route and status code",
			},
			[]string{"route", "code"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "games_http_request_duration_seconds",
				Help:    "HTTP request latency, by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
	m.reg.MustRegister(
		m.robotCommands, m.robotAnomalies, m.wordVerdicts, m.httpRequests, m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry (tests, extra collectors).
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// ObserveRobot counts the tokens and anomalies of one interpretation.
func (m *Metrics) ObserveRobot(tokens []string, res robot.Result) {
	for _, tok := range tokens {
		m.robotCommands.WithLabelValues(commandKind(tok)).Inc()
	}
	for _, a := range res.Anomalies {
		m.robotAnomalies.WithLabelValues(string(a.Kind)).Inc()
	}
}

func commandKind(tok string) string {
	switch tok {
	case robot.CmdAdvance:
		return KindAdvance
	case robot.CmdTurnLeft:
		return KindTurnLeft
	case robot.CmdTurnRight:
		return KindTurnRight
	default:
		return KindUnknown
	}
}

// ObserveVerdict counts one validator verdict.
func (m *Metrics) ObserveVerdict(v chain.Verdict) {
	reason := string(v.Reason)
	if v.Accepted || reason == "" {
		reason = "accepted"
	}
	m.wordVerdicts.WithLabelValues(reason).Inc()
}

// Middleware records request count and latency. Requests that matched no
// route are labelled "unmatched" to keep label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
