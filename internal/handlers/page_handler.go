package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/sewa-finder/internal/middleware"
	"github.com/harentsoaR/sewa-finder/internal/pagestate"
)

// PageData is passed to the index template.
type PageData struct {
	View       pagestate.View
	TileURL    string
	Alert      string
	Notice     string
	Signup     SignupForm
	LoginEmail string
}

// SignupForm echoes submitted values back after a failed signup.
type SignupForm struct {
	Name  string
	Email string
	Phone string
}

// ShowPage renders the login/signup page (GET /).
func (h *Handler) ShowPage(c *gin.Context) {
	h.renderPage(c, http.StatusOK, PageData{
		Alert:  c.Query("err"),
		Notice: c.Query("notice"),
	})
}

// ToggleForms switches between the login and signup forms.
func (h *Handler) ToggleForms(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentPage(c).ToggleForms())
}

// ToggleModal opens or closes the location confirmation modal.
func (h *Handler) ToggleModal(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentPage(c).ToggleModal())
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the profile store answers.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Profiles.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": "profile store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) renderPage(c *gin.Context, status int, data PageData) {
	data.View = middleware.CurrentPage(c).Snapshot()
	data.TileURL = h.TileURL
	c.HTML(status, "index", data)
}
