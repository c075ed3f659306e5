package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/games/apps/go-server/internal/chain"
	"github.com/robalobadob/games/apps/go-server/internal/robot"
)

func TestObserveRobot(t *testing.T) {
	m := New()
	cmds := "A A A A D X"
	m.ObserveRobot(robot.Tokenize(cmds), robot.Interpret(cmds))

	assert.Equal(t, 4.0, testutil.ToFloat64(m.robotCommands.WithLabelValues(KindAdvance)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.robotCommands.WithLabelValues(KindTurnRight)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.robotCommands.WithLabelValues(KindUnknown)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.robotAnomalies.WithLabelValues(string(robot.AnomalyBoundary))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.robotAnomalies.WithLabelValues(string(robot.AnomalyUnknownCommand))))
}

func TestObserveVerdict(t *testing.T) {
	m := New()
	m.ObserveVerdict(chain.Verdict{Accepted: true, Word: "perro"})
	m.ObserveVerdict(chain.Verdict{Reason: chain.ReasonAlreadyUsed})
	m.ObserveVerdict(chain.Verdict{Reason: chain.ReasonAlreadyUsed})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.wordVerdicts.WithLabelValues("accepted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.wordVerdicts.WithLabelValues(string(chain.ReasonAlreadyUsed))))
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/items/{id}", "418")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `games_http_requests_total{code="418",route="/items/{id}"} 2`), body)
	assert.Contains(t, body, "games_http_request_duration_seconds_bucket")
}
