// internal/game/engine.go
//
// Core game engine for a single Logik session.
// Responsibilities:
//   - Hold the one live Session (secret, input buffer, history, won flag).
//   - Accept digits one at a time into the input buffer.
//   - Score a full buffer against the secret (exact/present/absent).
//   - Track state transitions: awaiting input → ready → awaiting input | won.
//   - Restart with a fresh secret.
//
// Notes:
//   - Secrets come from an injected Generator (see the secret package).
//   - The engine is not safe for concurrent use; callers drive it from one
//     goroutine at a time (the store package serialises HTTP access).
//   - Every rejected operation leaves the session untouched.
package game

import "errors"

// Errors returned by Engine operations. All are recoverable.
var (
	ErrBufferFull      = errors.New("buffer full")
	ErrIncompleteGuess = errors.New("incomplete guess")
	ErrInvalidDigit    = errors.New("invalid digit")
	ErrGameWon         = errors.New("game already won")
)

// Generator produces secrets for new sessions.
type Generator interface {
	Generate() Secret
}

// Engine drives one session at a time.
type Engine struct {
	gen     Generator
	session Session
}

// New constructs an engine with a freshly generated secret.
func New(gen Generator) *Engine {
	e := &Engine{gen: gen}
	e.Restart()
	return e
}

// AppendDigit adds d to the input buffer.
//
// Validation rules:
//   - d must be 0–9 (ErrInvalidDigit).
//   - The session must not be won (ErrGameWon).
//   - The buffer must hold fewer than CodeLength digits (ErrBufferFull).
func (e *Engine) AppendDigit(d Digit) error {
	if !d.Valid() {
		return ErrInvalidDigit
	}
	if e.session.Won {
		return ErrGameWon
	}
	if len(e.session.Buffer) >= CodeLength {
		return ErrBufferFull
	}
	e.session.Buffer = append(e.session.Buffer, d)
	return nil
}

// SubmitGuess scores the buffered guess, appends it to the history and clears
// the buffer. Returns ErrIncompleteGuess if the buffer is not full.
//
// State transitions:
//   - All marks exact → StateWon.
//   - Otherwise → StateAwaitingInput.
func (e *Engine) SubmitGuess() (Attempt, error) {
	if e.session.Won {
		return Attempt{}, ErrGameWon
	}
	if len(e.session.Buffer) < CodeLength {
		return Attempt{}, ErrIncompleteGuess
	}

	var a Attempt
	copy(a.Guess[:], e.session.Buffer)
	a.Marks = Score(e.session.Secret, a.Guess)

	e.session.History = append(e.session.History, a)
	e.session.Buffer = e.session.Buffer[:0]
	if a.Solved() {
		e.session.Won = true
	}
	return a, nil
}

// IsWon reports whether the current session has been solved.
func (e *Engine) IsWon() bool { return e.session.Won }

// State reports the engine's current state.
func (e *Engine) State() State {
	switch {
	case e.session.Won:
		return StateWon
	case len(e.session.Buffer) == CodeLength:
		return StateReadyToSubmit
	default:
		return StateAwaitingInput
	}
}

// GuessCount is the number of submitted attempts in this session.
func (e *Engine) GuessCount() int { return len(e.session.History) }

// Restart discards the current session and starts a new one.
func (e *Engine) Restart() {
	e.session = Session{
		Secret:  e.gen.Generate(),
		Buffer:  make([]Digit, 0, CodeLength),
		History: []Attempt{},
	}
}

// Buffer returns a copy of the digits entered for the current attempt.
func (e *Engine) Buffer() []Digit {
	return append([]Digit{}, e.session.Buffer...)
}

// History returns a copy of the scored attempts, oldest first.
func (e *Engine) History() []Attempt {
	return append([]Attempt{}, e.session.History...)
}

// Secret returns the current session's secret.
func (e *Engine) Secret() Secret { return e.session.Secret }

// Snapshot returns a render-ready copy of the session.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		State:   e.State(),
		Buffer:  e.Buffer(),
		History: e.History(),
		Guesses: e.GuessCount(),
		Won:     e.session.Won,
	}
	if s.Won {
		sec := e.session.Secret
		s.Secret = &sec
	}
	return s
}

// Score classifies each position of guess against secret.
//
//   - guess[i] == secret[i]            → MarkExact
//   - guess[i] appears anywhere in secret → MarkPresent
//   - otherwise                        → MarkAbsent
//
// Unlike canonical Mastermind there is no one-to-one consumption of secret
// digits: a digit already matched exactly elsewhere, or repeated in the
// guess, is still marked present at every other position it occupies.
func Score(secret Secret, guess [CodeLength]Digit) [CodeLength]Mark {
	var res [CodeLength]Mark
	for i, d := range guess {
		switch {
		case d == secret[i]:
			res[i] = MarkExact
		case secret.Contains(d):
			res[i] = MarkPresent
		default:
			res[i] = MarkAbsent
		}
	}
	return res
}
