package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/sewa-finder/internal/middleware"
	"github.com/harentsoaR/sewa-finder/internal/models"
	"github.com/harentsoaR/sewa-finder/internal/pagestate"
)

// RegisterRoutes mounts the page, dashboard and API routes on r.
func (h *Handler) RegisterRoutes(r *gin.Engine, pages *pagestate.Store) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/logout", h.Logout)

	// --- Signup/login page ---
	page := r.Group("/")
	page.Use(middleware.PageState(pages, h.SecureCookies))
	{
		page.GET("/", h.ShowPage)
		page.POST("/ui/forms", h.ToggleForms)
		page.POST("/ui/modal", h.ToggleModal)

		page.POST("/location/current", h.CurrentLocation)
		page.POST("/location/click", h.MapClick)
		page.POST("/location/search", h.SearchAddress)

		page.POST("/signup", h.Signup)
		page.POST("/login", h.Login)
	}

	// --- Dashboards ---
	provider := r.Group("/provider_dashboard")
	provider.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleProvider))
	{
		provider.GET("", h.ProviderDashboard)
	}

	customer := r.Group("/customer-login")
	customer.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleCustomer))
	{
		customer.GET("/", h.CustomerHome)
	}

	// --- JSON API ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/profile", h.GetCurrentProfile)
	}
}
