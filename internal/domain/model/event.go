// Package model contains activity records passed between layers.
package model

// CommitEvent represents one push recorded on the activity feed. A single
// push can carry several commits; each commit drives one attack.
type CommitEvent struct {
	CommitCount int    // commits in the push, at least 1
	CreatedAt   string // ISO-8601 event timestamp
	ProjectID   int    // originating project
	Ref         string // branch or tag pushed to
}

// ApprovalEvent represents a merge request approval on the activity feed.
type ApprovalEvent struct {
	TargetTitle string // merge request title
	CreatedAt   string // ISO-8601 event timestamp
	ProjectID   int    // originating project
}

// LanguageStats maps language names to aggregated usage weight across a
// user's projects.
type LanguageStats map[string]float64
