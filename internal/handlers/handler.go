package handlers

import (
	"github.com/harentsoaR/sewa-finder/internal/services"
)

// Handler holds the services every route needs.
type Handler struct {
	Locator       *services.Locator
	Onboarding    *services.Onboarding
	Profiles      services.ProfileStore
	TileURL       string
	SecureCookies bool
}

func NewHandler(locator *services.Locator, onboarding *services.Onboarding, profiles services.ProfileStore, tileURL string, secureCookies bool) *Handler {
	return &Handler{
		Locator:       locator,
		Onboarding:    onboarding,
		Profiles:      profiles,
		TileURL:       tileURL,
		SecureCookies: secureCookies,
	}
}
