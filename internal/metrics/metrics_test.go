package metrics

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/robalobadob/logik/internal/game"
)

func TestReason(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{game.ErrBufferFull, "buffer_full"},
		{fmt.Errorf("wrapped: %w", game.ErrIncompleteGuess), "incomplete_guess"},
		{game.ErrInvalidDigit, "invalid_digit"},
		{game.ErrGameWon, "game_won"},
		{fmt.Errorf("boom"), "other"},
	}
	for _, tc := range cases {
		if got := Reason(tc.err); got != tc.want {
			t.Fatalf("Reason(%v) = %s; want %s", tc.err, got, tc.want)
		}
	}
}

func TestCounters(t *testing.T) {
	m := New()
	m.SessionStarted()
	m.SessionStarted()
	m.SessionEnded()
	m.DigitAppended()
	m.GuessScored(game.Attempt{Marks: [3]game.Mark{game.MarkExact, game.MarkExact, game.MarkExact}})
	m.GuessScored(game.Attempt{})
	m.GuessScored(game.Attempt{})
	m.Rejected(game.ErrBufferFull)

	if v := testutil.ToFloat64(m.sessionsStarted); v != 2 {
		t.Fatalf("sessions_started = %v; want 2", v)
	}
	if v := testutil.ToFloat64(m.liveSessions); v != 1 {
		t.Fatalf("live_sessions = %v; want 1", v)
	}
	if v := testutil.ToFloat64(m.guesses.WithLabelValues("miss")); v != 2 {
		t.Fatalf("guesses{miss} = %v; want 2", v)
	}
	if v := testutil.ToFloat64(m.guesses.WithLabelValues("won")); v != 1 {
		t.Fatalf("guesses{won} = %v; want 1", v)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `logik_operations_rejected_total{reason="buffer_full"} 1`) {
		t.Fatalf("metrics output missing rejected counter:\n%s", rec.Body.String())
	}
}
