package entities

import (
	"time"

	"softday/wellness-api/internal/domain/profile"
)

// SentimentProfile represents the database schema for per-user analysis results
type SentimentProfile struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	UserID     uint      `gorm:"uniqueIndex;not null"`
	Summary    string    `gorm:"type:text"`
	Sentiment  string    `gorm:"type:varchar(100)"`
	AnalyzedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for SentimentProfile.
func (SentimentProfile) TableName() string {
	return "sentiment_profiles"
}

// EtoD converts database entity to domain model
func (p *SentimentProfile) EtoD() *profile.Profile {
	return &profile.Profile{
		UserID:     p.UserID,
		Summary:    p.Summary,
		Sentiment:  p.Sentiment,
		AnalyzedAt: p.AnalyzedAt,
	}
}

// NewSchemaSentimentProfile creates a database entity from domain model
func NewSchemaSentimentProfile(p *profile.Profile) *SentimentProfile {
	return &SentimentProfile{
		UserID:     p.UserID,
		Summary:    p.Summary,
		Sentiment:  p.Sentiment,
		AnalyzedAt: p.AnalyzedAt,
	}
}
