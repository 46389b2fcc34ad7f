// Package random derives seeds for the deterministic game RNGs.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed returns an int64 drawn from the operating system's entropy
// source, suitable for seeding a math/rand generator when the caller did
// not supply an explicit seed.
func NewSeed() (int64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("read entropy: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}
