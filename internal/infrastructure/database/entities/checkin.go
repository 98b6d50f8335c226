package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"softday/wellness-api/internal/domain/checkin"
)

// CheckIn represents the database schema for daily stress check-ins. The
// composite unique index on user+date is the authoritative guard against
// duplicate same-day check-ins.
type CheckIn struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	PublicID    string         `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID      uint           `gorm:"uniqueIndex:idx_checkin_user_date;not null"`
	CheckinDate time.Time      `gorm:"type:date;uniqueIndex:idx_checkin_user_date;not null"`
	StressLevel int            `gorm:"not null"`
	Memo        string         `gorm:"type:text"`
	Emoji       string         `gorm:"type:varchar(10)"`
	Causes      datatypes.JSON `gorm:"type:jsonb"`
}

// TableName specifies the table name for CheckIn.
func (CheckIn) TableName() string {
	return "daily_checkins"
}

// EtoD converts database entity to domain model
func (c *CheckIn) EtoD() *checkin.CheckIn {
	var causes []string
	if len(c.Causes) > 0 {
		_ = json.Unmarshal(c.Causes, &causes)
	}

	return &checkin.CheckIn{
		ID:          c.ID,
		PublicID:    c.PublicID,
		UserID:      c.UserID,
		CheckinDate: c.CheckinDate,
		StressLevel: c.StressLevel,
		Memo:        c.Memo,
		Emoji:       c.Emoji,
		Causes:      causes,
		CreatedAt:   c.CreatedAt,
	}
}

// NewSchemaCheckIn creates a database entity from domain model
func NewSchemaCheckIn(c *checkin.CheckIn) *CheckIn {
	causes, _ := json.Marshal(c.Causes)
	return &CheckIn{
		ID:          c.ID,
		PublicID:    c.PublicID,
		UserID:      c.UserID,
		CheckinDate: c.CheckinDate,
		StressLevel: c.StressLevel,
		Memo:        c.Memo,
		Emoji:       c.Emoji,
		Causes:      causes,
		CreatedAt:   c.CreatedAt,
	}
}
