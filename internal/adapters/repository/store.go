// Package repository persists the game state document and defines the
// load/save contract the rest of the application depends on.
package repository

import (
	"context"

	"committed/internal/domain/game"
)

// loadFallbackName is the name used when a save document omits the
// character name entirely.
const loadFallbackName = "Adventurer"

// SaveDocument is the persisted top-level record. LastSync is the ISO-8601
// watermark bounding which remote events count as new; the save path
// carries it through verbatim.
type SaveDocument struct {
	Character *game.Character `json:"character"`
	LastSync  string          `json:"last_sync,omitempty"`
}

// Store provides read/write access to the single save document.
//
// Load distinguishes its failure modes through sentinel kinds: ErrNotFound
// when no document exists, ErrCorrupted when one exists but cannot be
// decoded. Anything else is an I/O failure. Callers decide whether to fall
// back to a fresh character; the store never does that silently.
type Store interface {
	Load(ctx context.Context) (*SaveDocument, error)
	Save(ctx context.Context, doc *SaveDocument) error
}
