package services

import (
	"context"

	"github.com/harentsoaR/sewa-finder/internal/models"
)

// ProfileStore is the document database surface: one keyed write and
// equality lookups by email.
type ProfileStore interface {
	CreateProfile(ctx context.Context, collection string, p models.Profile) error
	HasEmail(ctx context.Context, collection, email string) (bool, error)
	GetProfile(ctx context.Context, collection, uid string) (*models.Profile, error)
	Ping(ctx context.Context) error
}
