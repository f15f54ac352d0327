package game

import "errors"

// Sentinel kinds for engine contract violations. Normal play never
// produces these; they signal a buggy caller.
var (
	ErrNegativeDamage = errors.New("damage must not be negative")
	ErrNegativeXP     = errors.New("xp amount must not be negative")
)
