package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/sewa-finder/internal/models"
	"github.com/harentsoaR/sewa-finder/internal/services"
)

// ProviderDashboard renders the provider landing page.
func (h *Handler) ProviderDashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "provider_dashboard", gin.H{
		"Email": c.GetString("userEmail"),
	})
}

// CustomerHome renders the customer area with the stored profile.
func (h *Handler) CustomerHome(c *gin.Context) {
	profile, err := h.Profiles.GetProfile(c.Request.Context(), models.CustomerCollection, c.GetString("userID"))
	if err != nil && !errors.Is(err, services.ErrProfileNotFound) {
		log.Printf("CustomerHome: load profile: %v", err)
	}
	c.HTML(http.StatusOK, "customer_home", gin.H{
		"Email":   c.GetString("userEmail"),
		"Profile": profile,
		"Notice":  c.Query("notice"),
	})
}

// GetCurrentProfile returns the signed-in user's profile document.
func (h *Handler) GetCurrentProfile(c *gin.Context) {
	var collection string
	switch models.Role(c.GetString("userRole")) {
	case models.RoleProvider:
		collection = models.ProviderCollection
	case models.RoleCustomer:
		collection = models.CustomerCollection
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrNoMatchingUser.Error()})
		return
	}

	profile, err := h.Profiles.GetProfile(c.Request.Context(), collection, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
