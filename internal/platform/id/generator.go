package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const defaultRandomBytes = 8

// Generator creates opaque identifiers.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator returns hex encoded random ids of a fixed byte length.
type RandomGenerator struct {
	size int
}

func NewRandomGenerator(size int) *RandomGenerator {
	if size <= 0 {
		size = defaultRandomBytes
	}
	return &RandomGenerator{size: size}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, g.size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
