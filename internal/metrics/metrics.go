package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/logik/internal/game"
)

const namespace = "logik"

// Metrics holds the Prometheus collectors for game activity.
type Metrics struct {
	registry *prometheus.Registry

	sessionsStarted prometheus.Counter
	restarts        prometheus.Counter
	digits          prometheus.Counter
	guesses         *prometheus.CounterVec
	rejected        *prometheus.CounterVec
	liveSessions    prometheus.Gauge
}

// New creates a metrics set on its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Total number of sessions created",
		}),
		restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restarts_total",
			Help:      "Total number of session restarts",
		}),
		digits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "digits_appended_total",
			Help:      "Total number of digits accepted into a guess buffer",
		}),
		guesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_submitted_total",
			Help:      "Total number of scored guesses",
		}, []string{"result"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_rejected_total",
			Help:      "Total number of engine operations rejected",
		}, []string{"reason"}),
		liveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Number of sessions currently held in memory",
		}),
	}
	m.registry.MustRegister(m.sessionsStarted, m.restarts, m.digits, m.guesses, m.rejected, m.liveSessions)
	return m
}

func (m *Metrics) SessionStarted() {
	m.sessionsStarted.Inc()
	m.liveSessions.Inc()
}

func (m *Metrics) SessionEnded() { m.liveSessions.Dec() }

func (m *Metrics) Restarted() { m.restarts.Inc() }

func (m *Metrics) DigitAppended() { m.digits.Inc() }

// GuessScored counts a submitted guess as "won" or "miss".
func (m *Metrics) GuessScored(a game.Attempt) {
	result := "miss"
	if a.Solved() {
		result = "won"
	}
	m.guesses.WithLabelValues(result).Inc()
}

// Rejected counts an engine error by reason. Errors that are not engine
// errors are counted as "other".
func (m *Metrics) Rejected(err error) {
	m.rejected.WithLabelValues(Reason(err)).Inc()
}

// Reason maps an engine error to a short label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, game.ErrBufferFull):
		return "buffer_full"
	case errors.Is(err, game.ErrIncompleteGuess):
		return "incomplete_guess"
	case errors.Is(err, game.ErrInvalidDigit):
		return "invalid_digit"
	case errors.Is(err, game.ErrGameWon):
		return "game_won"
	}
	return "other"
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
