package service

import "committed/internal/domain/game"

// Attack records the outcome of one commit-driven attack for the display
// layer. Mob HP fields reflect the state after the hit; on a defeat they
// describe the freshly spawned replacement.
type Attack struct {
	MobName      string
	Damage       int
	Defeated     bool
	Drop         *game.Item
	LevelsGained int
	MobHP        int
	MobMaxHP     int
}

// Report summarizes one sync run. The display layer formats it; nothing
// here feeds back into game rules.
type Report struct {
	RunID         string
	ClassAssigned bool
	TotalCommits  int
	Attacks       []Attack
	SpecialItems  []game.Item
	StartLevel    int
	EndLevel      int
}

// Empty reports whether the sync found no new activity at all.
func (r *Report) Empty() bool {
	return r.TotalCommits == 0 && len(r.SpecialItems) == 0
}
