package user

import "time"

// User is an account known to the wellness service. Credentials and signup
// live in the auth service; this side only needs identity and the push
// delivery target.
type User struct {
	ID        uint
	Email     string
	Name      string
	Push      *PushSubscription
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PushSubscription is the opaque delivery target registered by the client.
// The keys are passed through to the delivery collaborator untouched.
type PushSubscription struct {
	Endpoint string
	P256dh   string
	Auth     string
}

// HasPush reports whether a delivery target is registered.
func (u *User) HasPush() bool {
	return u.Push != nil && u.Push.Endpoint != ""
}
