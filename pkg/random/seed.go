// Package random provides seed generation for the game's PRNGs.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"time"
)

// NewSeed returns a high-entropy seed from crypto/rand. If the system
// entropy source is unavailable it falls back to the wall clock, which is
// good enough for loot rolls.
func NewSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
