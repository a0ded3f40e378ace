// internal/console/console.go
//
// Line-oriented terminal front end for a single Logik session.
//
// Input, one command per line:
//   0-9            enter digits (several per line are fine: "371")
//   c, check       score the filled boxes
//   r, restart     new secret, clear history
//   ?, help        how to play
//   q, exit        quit
//
// After a win the player is asked "[a]gain / [e]xit".

package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/logik/internal/game"
)

// Symbols printed for each mark.
var symbols = map[game.Mark]string{
	game.MarkExact:   "✓",
	game.MarkPresent: "?",
	game.MarkAbsent:  "✗",
}

// Console drives an Engine from text input.
type Console struct {
	e     *game.Engine
	in    *bufio.Scanner
	out   io.Writer
	howTo string
}

// New returns a Console reading commands from in and writing to out.
func New(e *game.Engine, in io.Reader, out io.Writer, howTo string) *Console {
	return &Console{e: e, in: bufio.NewScanner(in), out: out, howTo: howTo}
}

// Run plays until the player exits or input ends.
func (c *Console) Run() error {
	c.printf("Logik: guess the 3 different digits. Type ? for help.\n")
	c.prompt()
	for c.in.Scan() {
		line := strings.ToLower(strings.TrimSpace(c.in.Text()))
		if c.e.IsWon() {
			switch line {
			case "a", "again":
				c.restart()
			case "e", "exit", "q", "quit":
				return nil
			default:
				c.printf("Play again? [a]gain / [e]xit\n")
			}
			continue
		}
		if quit := c.handle(line); quit {
			return nil
		}
		if !c.e.IsWon() {
			c.prompt()
		}
	}
	return c.in.Err()
}

// handle executes one command line and reports whether to quit.
func (c *Console) handle(line string) bool {
	switch line {
	case "":
		return false
	case "q", "quit", "exit":
		return true
	case "?", "h", "help":
		c.printf("%s", c.howTo)
		return false
	case "r", "restart":
		c.restart()
		return false
	case "c", "check":
		c.check()
		return false
	}

	for _, r := range line {
		if r == ' ' {
			continue
		}
		if r < '0' || r > '9' {
			c.printf("Unknown input %q. Type ? for help.\n", r)
			return false
		}
		if err := c.e.AppendDigit(game.Digit(r - '0')); err != nil {
			if errors.Is(err, game.ErrBufferFull) {
				c.printf("All 3 boxes are filled. Type c to check.\n")
				return false
			}
			log.Debug().Err(err).Msg("append digit")
			return false
		}
	}
	return false
}

func (c *Console) check() {
	a, err := c.e.SubmitGuess()
	if errors.Is(err, game.ErrIncompleteGuess) {
		c.printf("Please fill all 3 boxes\n")
		return
	}
	if err != nil {
		log.Debug().Err(err).Msg("submit guess")
		return
	}
	c.printf("%s\n", Row(a))
	c.printf("Guesses: %d\n", c.e.GuessCount())
	if c.e.IsWon() {
		c.printf("You Win! Congratulations! You are amazing! Play this game again?\n")
		c.printf("[a]gain / [e]xit\n")
	}
}

func (c *Console) restart() {
	c.e.Restart()
	c.printf("New secret. Guesses: 0\n")
	c.prompt()
}

// prompt shows the input boxes.
func (c *Console) prompt() {
	buf := c.e.Buffer()
	boxes := make([]string, game.CodeLength)
	for i := range boxes {
		boxes[i] = "_"
		if i < len(buf) {
			boxes[i] = fmt.Sprint(buf[i])
		}
	}
	c.printf("[%s] > ", strings.Join(boxes, " "))
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// Row renders an attempt as "3 1 9  ✓ ? ✗".
func Row(a game.Attempt) string {
	var b strings.Builder
	for i, d := range a.Guess {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, d)
	}
	b.WriteString("  ")
	for i, m := range a.Marks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(symbols[m])
	}
	return b.String()
}
