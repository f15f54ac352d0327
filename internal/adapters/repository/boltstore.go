package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"committed/internal/domain/game"
)

const (
	gameBucket = "game"
	stateKey   = "state"

	openTimeout    = time.Second
	filePermission = 0o600
)

// BoltStore is a bbolt-backed Store. The whole game state lives under a
// single key, read once at startup and written at save points; two
// processes sharing a file are not guarded against beyond bbolt's own file
// lock.
type BoltStore struct {
	db       *bbolt.DB
	charOpts []game.Option
}

// Option applies a configuration option to the BoltStore.
type Option func(*BoltStore)

// WithCharacterOptions sets the options applied to characters
// reconstructed by Load, e.g. the randomness source.
func WithCharacterOptions(opts ...game.Option) Option {
	return func(s *BoltStore) {
		s.charOpts = opts
	}
}

// Open opens (creating if needed) the save database at path.
func Open(path string, opts ...Option) (*BoltStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("save path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), filePermission, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open save db: %w", err)
	}

	store := &BoltStore{db: db}
	for _, opt := range opts {
		opt(store)
	}

	if err := store.ensureBucket(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *BoltStore) ensureBucket() error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(gameBucket))
		return err
	})
	if err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// Load reads the save document. Fields missing from the stored document
// keep fresh-character defaults; an absent current_mob stays nil.
func (s *BoltStore) Load(ctx context.Context) (*SaveDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(gameBucket))
		if bucket == nil {
			return ErrNotFound
		}
		value := bucket.Get([]byte(stateKey))
		if value == nil {
			return ErrNotFound
		}
		raw = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Decoding on top of a defaulted character lets absent fields fall
	// back without per-field checks.
	doc := &SaveDocument{Character: game.NewCharacter(loadFallbackName, s.charOpts...)}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if doc.Character == nil {
		doc.Character = game.NewCharacter(loadFallbackName, s.charOpts...)
	}
	return doc, nil
}

// Save writes the document, replacing any previous state.
func (s *BoltStore) Save(ctx context.Context, doc *SaveDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode save document: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(gameBucket)).Put([]byte(stateKey), raw)
	})
	if err != nil {
		return fmt.Errorf("write save document: %w", err)
	}
	return nil
}

// Close releases the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
