package game

import (
	"encoding/json"
	"errors"
	"testing"
)

// seqGen hands out secrets in order, repeating the last one.
type seqGen struct {
	secrets []Secret
	calls   int
}

func (g *seqGen) Generate() Secret {
	i := g.calls
	if i >= len(g.secrets) {
		i = len(g.secrets) - 1
	}
	g.calls++
	return g.secrets[i]
}

func newEngine(t *testing.T, secrets ...Secret) (*Engine, *seqGen) {
	t.Helper()
	gen := &seqGen{secrets: secrets}
	return New(gen), gen
}

func enter(t *testing.T, e *Engine, digits ...Digit) {
	t.Helper()
	for _, d := range digits {
		if err := e.AppendDigit(d); err != nil {
			t.Fatalf("AppendDigit(%d) = %v", d, err)
		}
	}
}

func TestScore(t *testing.T) {
	cases := []struct {
		secret Secret
		guess  [CodeLength]Digit
		want   [CodeLength]Mark
	}{
		{Secret{3, 7, 1}, [3]Digit{3, 1, 9}, [3]Mark{MarkExact, MarkPresent, MarkAbsent}},
		{Secret{2, 5, 8}, [3]Digit{2, 5, 8}, [3]Mark{MarkExact, MarkExact, MarkExact}},
		{Secret{2, 5, 8}, [3]Digit{8, 2, 5}, [3]Mark{MarkPresent, MarkPresent, MarkPresent}},
		{Secret{0, 1, 2}, [3]Digit{7, 8, 9}, [3]Mark{MarkAbsent, MarkAbsent, MarkAbsent}},
		// no consumption accounting: the exact 4 does not use up the other 4s
		{Secret{4, 5, 6}, [3]Digit{4, 4, 4}, [3]Mark{MarkExact, MarkPresent, MarkPresent}},
		{Secret{1, 2, 3}, [3]Digit{2, 2, 9}, [3]Mark{MarkPresent, MarkExact, MarkAbsent}},
	}
	for _, tc := range cases {
		if got := Score(tc.secret, tc.guess); got != tc.want {
			t.Fatalf("Score(%v,%v) = %v; want %v", tc.secret, tc.guess, got, tc.want)
		}
	}
}

func TestScoreClassificationProperty(t *testing.T) {
	secrets := []Secret{{0, 1, 2}, {3, 7, 1}, {9, 8, 7}, {5, 0, 4}}
	for _, s := range secrets {
		for n := 0; n < 1000; n++ {
			g := [CodeLength]Digit{Digit(n / 100), Digit(n / 10 % 10), Digit(n % 10)}
			marks := Score(s, g)
			for i := range g {
				var want Mark
				switch {
				case g[i] == s[i]:
					want = MarkExact
				case !s.Contains(g[i]):
					want = MarkAbsent
				default:
					want = MarkPresent
				}
				if marks[i] != want {
					t.Fatalf("Score(%v,%v)[%d] = %v; want %v", s, g, i, marks[i], want)
				}
			}
		}
	}
}

func TestNewEngineStartsAwaitingInput(t *testing.T) {
	e, _ := newEngine(t, Secret{3, 7, 1})
	if e.State() != StateAwaitingInput {
		t.Fatalf("State() = %v; want %v", e.State(), StateAwaitingInput)
	}
	if e.GuessCount() != 0 || e.IsWon() || len(e.Buffer()) != 0 {
		t.Fatalf("fresh engine not empty: %+v", e.Snapshot())
	}
	if e.Secret() != (Secret{3, 7, 1}) {
		t.Fatalf("Secret() = %v", e.Secret())
	}
}

func TestSubmitMiss(t *testing.T) {
	e, _ := newEngine(t, Secret{3, 7, 1})
	enter(t, e, 3, 1, 9)
	if e.State() != StateReadyToSubmit {
		t.Fatalf("State() = %v; want ready", e.State())
	}
	a, err := e.SubmitGuess()
	if err != nil {
		t.Fatalf("SubmitGuess() = %v", err)
	}
	want := [3]Mark{MarkExact, MarkPresent, MarkAbsent}
	if a.Marks != want || a.Guess != [3]Digit{3, 1, 9} {
		t.Fatalf("attempt = %+v", a)
	}
	if e.GuessCount() != 1 || e.IsWon() || e.State() != StateAwaitingInput {
		t.Fatalf("after miss: count=%d won=%v state=%v", e.GuessCount(), e.IsWon(), e.State())
	}
	if len(e.Buffer()) != 0 {
		t.Fatalf("buffer not cleared: %v", e.Buffer())
	}
}

func TestSubmitWin(t *testing.T) {
	e, _ := newEngine(t, Secret{2, 5, 8})
	enter(t, e, 2, 5, 8)
	a, err := e.SubmitGuess()
	if err != nil {
		t.Fatalf("SubmitGuess() = %v", err)
	}
	if !a.Solved() || !e.IsWon() || e.State() != StateWon {
		t.Fatalf("expected win, got %+v state=%v", a, e.State())
	}
	for i := 0; i < 3; i++ {
		if !e.IsWon() {
			t.Fatal("IsWon() changed without a submit")
		}
	}
	if err := e.AppendDigit(1); !errors.Is(err, ErrGameWon) {
		t.Fatalf("AppendDigit after win = %v; want ErrGameWon", err)
	}
	if _, err := e.SubmitGuess(); !errors.Is(err, ErrGameWon) {
		t.Fatalf("SubmitGuess after win = %v; want ErrGameWon", err)
	}
	snap := e.Snapshot()
	if snap.Secret == nil || *snap.Secret != (Secret{2, 5, 8}) {
		t.Fatalf("won snapshot should reveal secret: %+v", snap)
	}
}

func TestAppendBufferFull(t *testing.T) {
	e, _ := newEngine(t, Secret{3, 7, 1})
	enter(t, e, 4, 5, 6)
	if err := e.AppendDigit(7); !errors.Is(err, ErrBufferFull) {
		t.Fatalf("4th AppendDigit = %v; want ErrBufferFull", err)
	}
	got := e.Buffer()
	if len(got) != 3 || got[0] != 4 || got[1] != 5 || got[2] != 6 {
		t.Fatalf("Buffer() = %v; want [4 5 6]", got)
	}
}

func TestAppendInvalidDigit(t *testing.T) {
	e, _ := newEngine(t, Secret{3, 7, 1})
	for _, d := range []Digit{-1, 10, 42} {
		if err := e.AppendDigit(d); !errors.Is(err, ErrInvalidDigit) {
			t.Fatalf("AppendDigit(%d) = %v; want ErrInvalidDigit", d, err)
		}
	}
	if len(e.Buffer()) != 0 {
		t.Fatalf("invalid digits changed buffer: %v", e.Buffer())
	}
}

func TestSubmitIncomplete(t *testing.T) {
	e, _ := newEngine(t, Secret{3, 7, 1})
	enter(t, e, 1, 2)
	if _, err := e.SubmitGuess(); !errors.Is(err, ErrIncompleteGuess) {
		t.Fatalf("SubmitGuess() = %v; want ErrIncompleteGuess", err)
	}
	if e.GuessCount() != 0 || len(e.History()) != 0 {
		t.Fatal("incomplete submit touched history")
	}
	if b := e.Buffer(); len(b) != 2 {
		t.Fatalf("Buffer() = %v; want 2 digits kept", b)
	}
}

func TestGuessCountAndRestart(t *testing.T) {
	e, gen := newEngine(t, Secret{3, 7, 1}, Secret{0, 4, 9})
	for i := 1; i <= 4; i++ {
		enter(t, e, 5, 5, 5)
		if _, err := e.SubmitGuess(); err != nil {
			t.Fatalf("SubmitGuess() = %v", err)
		}
		if e.GuessCount() != i {
			t.Fatalf("GuessCount() = %d; want %d", e.GuessCount(), i)
		}
	}
	enter(t, e, 1)
	e.Restart()
	if gen.calls != 2 {
		t.Fatalf("generator calls = %d; want 2", gen.calls)
	}
	if e.Secret() != (Secret{0, 4, 9}) {
		t.Fatalf("Secret() = %v after restart", e.Secret())
	}
	if e.GuessCount() != 0 || len(e.History()) != 0 || len(e.Buffer()) != 0 || e.IsWon() {
		t.Fatalf("restart did not reset: %+v", e.Snapshot())
	}
	if e.State() != StateAwaitingInput {
		t.Fatalf("State() = %v after restart", e.State())
	}
}

func TestRestartAfterWin(t *testing.T) {
	e, _ := newEngine(t, Secret{2, 5, 8}, Secret{1, 2, 3})
	enter(t, e, 2, 5, 8)
	if _, err := e.SubmitGuess(); err != nil {
		t.Fatal(err)
	}
	e.Restart()
	if e.IsWon() {
		t.Fatal("IsWon() true after restart")
	}
	enter(t, e, 1, 2, 3)
	if _, err := e.SubmitGuess(); err != nil || !e.IsWon() {
		t.Fatalf("second session win failed: %v", err)
	}
}

func TestHistoryIsCopied(t *testing.T) {
	e, _ := newEngine(t, Secret{3, 7, 1})
	enter(t, e, 4, 5, 6)
	if _, err := e.SubmitGuess(); err != nil {
		t.Fatal(err)
	}
	h := e.History()
	h[0].Marks[0] = MarkExact
	if e.History()[0].Marks[0] != MarkAbsent {
		t.Fatal("History() exposes internal state")
	}
}

func TestMarkJSON(t *testing.T) {
	a := Attempt{Guess: [3]Digit{3, 1, 9}, Marks: [3]Mark{MarkExact, MarkPresent, MarkAbsent}}
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	const want = `{"guess":[3,1,9],"marks":["exact","present","absent"]}`
	if string(b) != want {
		t.Fatalf("json = %s; want %s", b, want)
	}
	var back Attempt
	if err := json.Unmarshal(b, &back); err != nil || back != a {
		t.Fatalf("round trip = %+v, %v", back, err)
	}
	if MarkExact.Icon() != "correct" || MarkPresent.Icon() != "maybe" || MarkAbsent.Icon() != "incorrect" {
		t.Fatal("unexpected icon names")
	}
}
