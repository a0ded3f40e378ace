// internal/secret/secret.go
//
// Secret generation for Logik sessions.
// A secret is CodeLength distinct digits sampled without replacement from
// 0–9, built with a partial Fisher–Yates shuffle.
//
// Randomness comes from an injected Source. CryptoSource is the production
// default; tests pass a seeded math/rand/v2 generator.

package secret

import (
	"crypto/rand"
	"math/big"

	"github.com/robalobadob/logik/internal/game"
)

// Source yields uniform integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// CryptoSource draws from crypto/rand.
type CryptoSource struct{}

// IntN returns a cryptographically random integer in [0, n).
// Panics if n <= 0.
func (CryptoSource) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand.Reader does not fail on supported platforms.
		panic(err)
	}
	return int(v.Int64())
}

// Generator implements game.Generator.
type Generator struct {
	src Source
}

// New returns a Generator drawing from src. A nil src means CryptoSource.
func New(src Source) *Generator {
	if src == nil {
		src = CryptoSource{}
	}
	return &Generator{src: src}
}

// Generate returns CodeLength pairwise-distinct digits.
func (g *Generator) Generate() game.Secret {
	digits := [10]game.Digit{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	var s game.Secret
	for i := range s {
		j := i + g.src.IntN(len(digits)-i)
		digits[i], digits[j] = digits[j], digits[i]
		s[i] = digits[i]
	}
	return s
}

// Fixed always returns the same secret.
type Fixed game.Secret

// Generate returns the fixed secret.
func (f Fixed) Generate() game.Secret { return game.Secret(f) }

// Parse converts a string such as "371" into a secret.
// Returns false unless s is CodeLength distinct decimal digits.
func Parse(s string) (game.Secret, bool) {
	var out game.Secret
	if len(s) != len(out) {
		return out, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return out, false
		}
		out[i] = game.Digit(s[i] - '0')
	}
	return out, out.Distinct()
}
