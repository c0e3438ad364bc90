// Package reference mints the ledger reference numbers handed to submitters.
package reference

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// Length is the number of characters in a reference number.
	Length = 10
	// Alphabet is the set of characters a reference number is drawn from.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Generator produces candidate reference numbers. Uniqueness is enforced by
// the store, not the generator.
type Generator interface {
	Next() (string, error)
}

// RandomGenerator draws uniformly from Alphabet using crypto/rand.
type RandomGenerator struct{}

func NewRandomGenerator() RandomGenerator {
	return RandomGenerator{}
}

func (RandomGenerator) Next() (string, error) {
	max := big.NewInt(int64(len(Alphabet)))
	out := make([]byte, Length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		out[i] = Alphabet[n.Int64()]
	}
	return string(out), nil
}

// IsWellFormed reports whether s has the shape of a reference number.
func IsWellFormed(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
