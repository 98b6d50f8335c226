// Package profile holds the per-user rolling sentiment profile maintained by
// the background analysis worker and consumed by the chat prompt builder.
package profile

import (
	"context"
	"time"
)

// Profile is the rolling summary of what the assistant should remember about
// a user. It is eventually consistent: it may lag the newest messages by one
// analysis cycle.
type Profile struct {
	UserID     uint
	Summary    string
	Sentiment  string
	AnalyzedAt time.Time
}

// Empty returns a blank profile for users that have never been analyzed.
func Empty(userID uint) *Profile {
	return &Profile{UserID: userID}
}

// HasSummary reports whether the profile carries anything worth injecting
// into a prompt.
func (p *Profile) HasSummary() bool {
	return p != nil && p.Summary != ""
}

// Repository persists sentiment profiles, one row per user.
type Repository interface {
	FindByUserID(ctx context.Context, userID uint) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) error
}
