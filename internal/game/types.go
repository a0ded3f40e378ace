// internal/game/types.go
//
// Core type definitions for the Logik game engine.
// Defines:
//   - Digit / Secret: the values a player guesses and the hidden code.
//   - Mark: per-position result of a guess (exact/present/absent).
//   - Attempt: a scored guess, one row of the history grid.
//   - State: coarse engine state (awaiting input, ready, won).
//   - Session: everything that belongs to one play-through.

package game

import (
	"encoding/json"
	"fmt"
)

// CodeLength is the number of digits in a secret and in every guess.
const CodeLength = 3

// Digit is a single decimal digit 0–9.
type Digit int

// Valid reports whether d lies in 0–9.
func (d Digit) Valid() bool { return d >= 0 && d <= 9 }

// Secret is the hidden code. Its digits are pairwise distinct.
type Secret [CodeLength]Digit

// Contains reports whether d appears anywhere in the secret.
func (s Secret) Contains(d Digit) bool {
	for _, x := range s {
		if x == d {
			return true
		}
	}
	return false
}

// Distinct reports whether every digit is valid and no digit repeats.
func (s Secret) Distinct() bool {
	var seen [10]bool
	for _, d := range s {
		if !d.Valid() || seen[d] {
			return false
		}
		seen[d] = true
	}
	return true
}

// Mark represents the evaluation result for a single position in a guess.
// Possible values:
//   - "exact":   digit is in the secret at the same position.
//   - "present": digit is in the secret at some other position.
//   - "absent":  digit is not in the secret at all.
type Mark int

const (
	MarkAbsent Mark = iota
	MarkExact
	MarkPresent
)

var markNames = [...]string{
	MarkAbsent:  "absent",
	MarkExact:   "exact",
	MarkPresent: "present",
}

// Icon names used by front ends for each mark.
var markIcons = [...]string{
	MarkAbsent:  "incorrect",
	MarkExact:   "correct",
	MarkPresent: "maybe",
}

func (m Mark) String() string {
	if m < 0 || int(m) >= len(markNames) {
		return fmt.Sprintf("Mark(%d)", int(m))
	}
	return markNames[m]
}

// Icon returns the name of the icon a front end shows for m.
func (m Mark) Icon() string {
	if m < 0 || int(m) >= len(markIcons) {
		return ""
	}
	return markIcons[m]
}

func (m Mark) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Mark) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for i, name := range markNames {
		if name == s {
			*m = Mark(i)
			return nil
		}
	}
	return fmt.Errorf("game: unknown mark %q", s)
}

// Attempt is a submitted guess paired with its marks. Never mutated after creation.
type Attempt struct {
	Guess [CodeLength]Digit `json:"guess"`
	Marks [CodeLength]Mark  `json:"marks"`
}

// Solved reports whether every mark is MarkExact.
func (a Attempt) Solved() bool {
	for _, m := range a.Marks {
		if m != MarkExact {
			return false
		}
	}
	return true
}

// State is the engine's position in the play loop.
type State int

const (
	StateAwaitingInput State = iota // buffer holds fewer than CodeLength digits
	StateReadyToSubmit              // buffer is full
	StateWon                        // terminal until Restart
)

func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting_input"
	case StateReadyToSubmit:
		return "ready"
	case StateWon:
		return "won"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *State) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	for _, st := range []State{StateAwaitingInput, StateReadyToSubmit, StateWon} {
		if st.String() == name {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("game: unknown state %q", name)
}

// Session holds the state of a single play-through.
// Owned by an Engine and replaced wholesale on restart.
type Session struct {
	Secret  Secret    // hidden code, fixed for the session
	Buffer  []Digit   // digits entered for the current attempt (0..CodeLength)
	History []Attempt // scored attempts in submission order
	Won     bool      // true once an attempt was all exact
}

// Snapshot is a render-ready copy of a session.
// Secret is only filled in once the session is won.
type Snapshot struct {
	State   State     `json:"state"`
	Buffer  []Digit   `json:"buffer"`
	History []Attempt `json:"history"`
	Guesses int       `json:"guesses"`
	Won     bool      `json:"won"`
	Secret  *Secret   `json:"secret,omitempty"`
}
