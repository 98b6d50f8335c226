package entities

import (
	"time"

	"softday/wellness-api/internal/domain/user"
)

// User represents the database schema for users
type User struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Email string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name  string `gorm:"type:varchar(100);not null"`

	// Web push subscription, all three set together or all null.
	PushEndpoint *string `gorm:"type:text"`
	PushP256dh   *string `gorm:"type:varchar(255)"`
	PushAuth     *string `gorm:"type:varchar(255)"`

	Conversations []Conversation `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CheckIns      []CheckIn      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for User.
func (User) TableName() string {
	return "users"
}

// EtoD converts database entity to domain model
func (u *User) EtoD() *user.User {
	var sub *user.PushSubscription
	if u.PushEndpoint != nil && *u.PushEndpoint != "" {
		sub = &user.PushSubscription{
			Endpoint: *u.PushEndpoint,
			P256dh:   stringOrEmpty(u.PushP256dh),
			Auth:     stringOrEmpty(u.PushAuth),
		}
	}

	return &user.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Push:      sub,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewSchemaUser creates a database entity from domain model
func NewSchemaUser(u *user.User) *User {
	entity := &User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Push != nil {
		entity.PushEndpoint = &u.Push.Endpoint
		entity.PushP256dh = &u.Push.P256dh
		entity.PushAuth = &u.Push.Auth
	}
	return entity
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
