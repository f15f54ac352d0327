// Package service orchestrates the game: it loads and saves state through
// the repository, pulls activity from the configured source, and feeds it
// to the progression engine.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"committed/internal/adapters/repository"
	"committed/internal/domain/game"
	"committed/internal/domain/model"
	"committed/pkg/logger"
	"committed/pkg/metrics"
)

// Commit damage formula: 10 + level*2 per commit.
const (
	baseDamage     = 10
	damagePerLevel = 2
)

// DefaultCharacterName is used for a fresh save.
const DefaultCharacterName = "Brave Adventurer"

// fallbackTitle stands in for approvals whose title is missing.
const fallbackTitle = "Unknown MR"

// ErrNoActivitySource is returned by Sync when the service runs offline.
var ErrNoActivitySource = errors.New("no activity source configured")

// ActivitySource is the contract the network collaborator must satisfy.
// Implementations must fail fast rather than hang; the engine has no
// cancellation of its own.
type ActivitySource interface {
	LanguageStats(ctx context.Context) (model.LanguageStats, error)
	RecentCommits(ctx context.Context, since string) ([]model.CommitEvent, error)
	ApprovedMergeRequests(ctx context.Context, since string) ([]model.ApprovalEvent, error)
}

// Service owns the in-memory game state for one session. It is
// single-owner and not safe for concurrent use; the design assumes exactly
// one process per save file.
type Service struct {
	store  repository.Store
	source ActivitySource

	character *game.Character
	lastSync  string

	characterName string
	charOpts      []game.Option

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the save document store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSource sets the activity source. Leaving it unset runs the game
// offline: state can be viewed and saved, but Sync is unavailable.
func WithSource(source ActivitySource) Option {
	return func(s *Service) {
		s.source = source
	}
}

// WithCharacterName sets the name given to a freshly created character.
func WithCharacterName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.characterName = name
		}
	}
}

// WithCharacterOptions sets the options applied to characters the service
// creates, e.g. the randomness source.
func WithCharacterOptions(opts ...game.Option) Option {
	return func(s *Service) {
		s.charOpts = opts
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service.
func New(opts ...Option) *Service {
	s := &Service{
		characterName: DefaultCharacterName,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// LoadState loads the save document, falling back to a fresh character
// when no usable save exists. A missing save, a corrupt save and an I/O
// failure all land on the same fallback; they differ only in what gets
// logged. The character always has a current mob on return.
func (s *Service) LoadState(ctx context.Context) *game.Character {
	doc, err := s.store.Load(ctx)
	switch {
	case err == nil:
		s.character = doc.Character
		s.lastSync = doc.LastSync
		s.logger.Info(ctx, "loaded character", logger.String("name", s.character.Name))
	case errors.Is(err, repository.ErrNotFound):
		s.logger.Info(ctx, "no saved game, creating new character")
		s.character = game.NewCharacter(s.characterName, s.charOpts...)
	case errors.Is(err, repository.ErrCorrupted):
		s.logger.Warn(ctx, "save corrupted, creating new character", logger.Error(err))
		s.character = game.NewCharacter(s.characterName, s.charOpts...)
	default:
		metrics.RecordStoreError()
		s.logger.Warn(ctx, "load failed, creating new character", logger.Error(err))
		s.character = game.NewCharacter(s.characterName, s.charOpts...)
	}

	if s.character.CurrentMob == nil {
		s.character.SpawnMob()
	}

	metrics.UpdateCharacterLevel(s.character.Level)
	metrics.UpdateCharacterXP(s.character.XP)
	return s.character
}

// SaveState writes the current state. It is a no-op before LoadState. The
// last-sync watermark is carried through as held in memory; the save path
// never recomputes it. The error is returned for observability, but
// callers are expected to log rather than abort on it.
func (s *Service) SaveState(ctx context.Context) error {
	if s.character == nil {
		return nil
	}

	doc := &repository.SaveDocument{
		Character: s.character,
		LastSync:  s.lastSync,
	}
	if err := s.store.Save(ctx, doc); err != nil {
		metrics.RecordStoreError()
		s.logger.Error(ctx, "save failed", logger.Error(err))
		return err
	}
	s.logger.Info(ctx, "game saved")
	return nil
}

// Character returns the loaded character, or nil before LoadState.
func (s *Service) Character() *game.Character {
	return s.character
}

// LastSync returns the current sync watermark, empty if never synced.
func (s *Service) LastSync() string {
	return s.lastSync
}

// Offline reports whether the service has no activity source.
func (s *Service) Offline() bool {
	return s.source == nil
}

// Sync pulls fresh activity and applies it to the character: commits
// become attacks, approvals become special items. A failed fetch is
// logged and treated as an empty batch so transient outages never corrupt
// progression. The watermark advances only when both event fetches
// succeeded.
func (s *Service) Sync(ctx context.Context) (*Report, error) {
	if s.source == nil {
		return nil, ErrNoActivitySource
	}
	if s.character == nil {
		s.LoadState(ctx)
	}

	c := s.character
	report := &Report{
		RunID:      uuid.NewString(),
		StartLevel: c.Level,
	}
	syncStart := time.Now().UTC().Format(time.RFC3339)

	s.logger.Info(ctx, "sync started",
		logger.String("run_id", report.RunID),
		logger.String("since", s.lastSync),
	)

	// A character still at the default class has never been classified.
	if c.Class == game.DefaultClass {
		stats, err := s.source.LanguageStats(ctx)
		if err != nil {
			s.logger.Warn(ctx, "language stats unavailable", logger.Error(err))
		} else if len(stats) > 0 {
			c.DetermineClassRace(stats)
			report.ClassAssigned = true
			s.logger.Info(ctx, "class determined",
				logger.String("race", c.Race),
				logger.String("class", c.Class),
			)
		}
	}

	commits, commitsErr := s.source.RecentCommits(ctx, s.lastSync)
	if commitsErr != nil {
		s.logger.Warn(ctx, "commit fetch failed, treating as no events", logger.Error(commitsErr))
		commits = nil
	}
	s.applyCommits(commits, report)

	approvals, approvalsErr := s.source.ApprovedMergeRequests(ctx, s.lastSync)
	if approvalsErr != nil {
		s.logger.Warn(ctx, "approval fetch failed, treating as no events", logger.Error(approvalsErr))
		approvals = nil
	}
	for _, approval := range approvals {
		title := approval.TargetTitle
		if title == "" {
			title = fallbackTitle
		}
		item := c.AddSpecialItem(title)
		report.SpecialItems = append(report.SpecialItems, item)
		metrics.RecordSpecialItemForged()
	}

	// Advance the watermark only after a fully successful sync so a
	// failed fetch gets retried from the same point next time.
	if commitsErr == nil && approvalsErr == nil {
		s.lastSync = syncStart
	}

	report.EndLevel = c.Level
	metrics.RecordSync()
	metrics.UpdateCharacterLevel(c.Level)
	metrics.UpdateCharacterXP(c.XP)

	s.logger.Info(ctx, "sync complete",
		logger.String("run_id", report.RunID),
		logger.Int("commits", report.TotalCommits),
		logger.Int("approvals", len(report.SpecialItems)),
		logger.Int("level", c.Level),
	)
	return report, nil
}

// applyCommits turns each commit into one attack.
func (s *Service) applyCommits(commits []model.CommitEvent, report *Report) {
	c := s.character

	for _, commit := range commits {
		count := commit.CommitCount
		if count < 1 {
			count = 1
		}
		report.TotalCommits += count
		c.Stats.TotalCommits += count

		for i := 0; i < count; i++ {
			damage := baseDamage + c.Level*damagePerLevel
			attack := Attack{
				MobName: c.CurrentMob.Name,
				Damage:  damage,
			}

			levelBefore := c.Level
			mobBefore := c.CurrentMob
			drop, err := c.AttackMob(damage)
			if err != nil {
				// Unreachable with the formula above; log and move on.
				s.logger.Error(context.Background(), "attack rejected", logger.Error(err))
				continue
			}
			metrics.RecordCommitProcessed()
			metrics.RecordDamageDealt(damage)

			// A defeat always swaps in a replacement mob.
			attack.Defeated = c.CurrentMob != mobBefore
			attack.Drop = drop
			attack.LevelsGained = c.Level - levelBefore
			attack.MobHP = c.CurrentMob.HP
			attack.MobMaxHP = c.CurrentMob.MaxHP
			report.Attacks = append(report.Attacks, attack)

			if attack.Defeated {
				metrics.RecordMobDefeated()
			}
			if drop != nil {
				metrics.RecordItemDropped()
			}
			if attack.LevelsGained > 0 {
				metrics.RecordLevelUps(attack.LevelsGained)
			}
		}
	}
}
