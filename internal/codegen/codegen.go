// Package codegen derives the inner/outer code pair identifying one
// physical traced unit. The inner code stays private to the platform, the
// outer code is printed on packaging and scanned publicly.
package codegen

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
)

// VersionTag prefixes every generated code so future code formats can be
// told apart by prefix alone.
const VersionTag = "01"

const seedSize = 16 // 128-bit seed

// Pair holds the two codes derived from one seed
type Pair struct {
	Inner string
	Outer string
}

// Generator produces collision-resistant code pairs
//
//go:generate mockgen -source=codegen.go -destination=../mocks/codegen.go -package=mocks -mock_names=Generator=MockCodeGenerator
type Generator interface {
	// NewPair derives a fresh inner/outer code pair from internal entropy
	NewPair() (Pair, error)
}

type generator struct{}

// NewGenerator creates a code pair generator backed by crypto/rand
func NewGenerator() Generator {
	return &generator{}
}

// NewPair generates a random seed U and derives
// inner = VersionTag + hex(SHA512(U||"1")), outer = VersionTag + hex(SHA512(U||"2")).
// The per-role suffix is byte concatenation, not arithmetic, so the two
// digests never collapse into the same hash preimage family.
func (g *generator) NewPair() (Pair, error) {
	seed := make([]byte, seedSize)
	if _, err := rand.Read(seed); err != nil {
		// Entropy failure means the process cannot mint trustworthy codes.
		return Pair{}, fmt.Errorf("failed to read entropy: %w", err)
	}

	return derivePair(seed), nil
}

func derivePair(seed []byte) Pair {
	inner := sha512.Sum512(append(append([]byte{}, seed...), '1'))
	outer := sha512.Sum512(append(append([]byte{}, seed...), '2'))

	return Pair{
		Inner: VersionTag + hex.EncodeToString(inner[:]),
		Outer: VersionTag + hex.EncodeToString(outer[:]),
	}
}
