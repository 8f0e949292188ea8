package services

import "context"

// IdentityProvider maps email/password pairs to durable account ids.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, error)
	DeleteAccount(ctx context.Context, uid string) error
}
