// Package demo provides an offline activity source that synthesizes
// commits and approvals, so the game can be played without GitLab
// credentials.
package demo

import (
	"context"
	"math/rand"

	"committed/internal/domain/model"
	"committed/pkg/random"
)

// Batch size bounds for synthesized activity.
const (
	minPushes      = 2
	maxPushes      = 5
	maxCommitCount = 4
	maxApprovals   = 2
)

// demoLanguages is the fixed language profile assigned in demo mode.
var demoLanguages = model.LanguageStats{
	"Python":     65,
	"JavaScript": 20,
	"Go":         15,
}

// demoTitles is the pool of merge request titles approvals draw from.
var demoTitles = []string{
	"Fix critical bug in payment processing",
	"Add dark mode support",
	"Refactor authentication flow",
	"Improve database query performance",
	"Update API documentation",
}

// Option applies a configuration option to the Source.
type Option func(*Source)

// WithRand sets the randomness source used to synthesize activity.
func WithRand(rng *rand.Rand) Option {
	return func(s *Source) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// Source fabricates a plausible stream of developer activity.
type Source struct {
	rng *rand.Rand
}

// New creates a demo source.
func New(opts ...Option) *Source {
	s := &Source{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(random.NewSeed()))
	}
	return s
}

// LanguageStats returns the fixed demo language profile.
func (s *Source) LanguageStats(_ context.Context) (model.LanguageStats, error) {
	stats := make(model.LanguageStats, len(demoLanguages))
	for lang, weight := range demoLanguages {
		stats[lang] = weight
	}
	return stats, nil
}

// RecentCommits synthesizes a handful of pushes.
func (s *Source) RecentCommits(_ context.Context, _ string) ([]model.CommitEvent, error) {
	pushes := s.rng.Intn(maxPushes-minPushes+1) + minPushes
	commits := make([]model.CommitEvent, 0, pushes)
	for i := 0; i < pushes; i++ {
		commits = append(commits, model.CommitEvent{
			CommitCount: s.rng.Intn(maxCommitCount) + 1,
			Ref:         "main",
		})
	}
	return commits, nil
}

// ApprovedMergeRequests synthesizes zero or more approvals from the
// canned title pool.
func (s *Source) ApprovedMergeRequests(_ context.Context, _ string) ([]model.ApprovalEvent, error) {
	count := s.rng.Intn(maxApprovals + 1)
	approvals := make([]model.ApprovalEvent, 0, count)
	for i := 0; i < count; i++ {
		approvals = append(approvals, model.ApprovalEvent{
			TargetTitle: demoTitles[s.rng.Intn(len(demoTitles))],
		})
	}
	return approvals, nil
}
