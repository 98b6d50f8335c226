package user

import "context"

// Repository exposes user lookups and push target maintenance.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*User, error)
	ListAll(ctx context.Context) ([]User, error)
	SavePushSubscription(ctx context.Context, id uint, sub PushSubscription) error
	ClearPushSubscription(ctx context.Context, id uint) error
}
