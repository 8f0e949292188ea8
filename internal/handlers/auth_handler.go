// internal/handlers/auth_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/sewa-finder/internal/middleware"
	"github.com/harentsoaR/sewa-finder/internal/models"
	"github.com/harentsoaR/sewa-finder/internal/services"
	"github.com/harentsoaR/sewa-finder/internal/utils"
)

// Signup handles the signup form (POST /signup).
func (h *Handler) Signup(c *gin.Context) {
	req := services.SignupRequest{
		Name:            strings.TrimSpace(c.PostForm("customerName")),
		Email:           strings.TrimSpace(c.PostForm("new-email")),
		Phone:           strings.TrimSpace(c.PostForm("phone")),
		Address:         strings.TrimSpace(c.PostForm("address")),
		Password:        c.PostForm("new-password"),
		ConfirmPassword: c.PostForm("confirm-password"),
	}
	page := middleware.CurrentPage(c)
	page.SetAddress(req.Address)

	var location *models.GeoPoint
	if p, ok := page.Selected(); ok {
		location = &p
	}

	profile, err := h.Onboarding.Signup(c.Request.Context(), req, location)
	if err != nil {
		status, msg := signupFailure(err)
		h.renderPage(c, status, PageData{
			Alert:  msg,
			Signup: SignupForm{Name: req.Name, Email: req.Email, Phone: req.Phone},
		})
		return
	}

	// The new account is signed in right away, as the identity SDK does.
	if err := h.setSession(c, profile.UID, profile.Email, models.RoleCustomer); err != nil {
		log.Printf("Signup: session for %s not issued: %v", profile.UID, err)
	}
	c.Redirect(http.StatusSeeOther, services.CustomerHomePath+"?notice="+url.QueryEscape("Account created!"))
}

func signupFailure(err error) (int, string) {
	if services.IsValidation(err) {
		return http.StatusBadRequest, err.Error()
	}
	var authErr *services.AuthError
	switch {
	case errors.Is(err, services.ErrEmailInUse):
		return http.StatusConflict, "Signup failed: " + err.Error()
	case errors.As(err, &authErr):
		return http.StatusBadRequest, "Signup failed: " + err.Error()
	default:
		return http.StatusInternalServerError, "Signup failed: " + err.Error()
	}
}

// Login handles the login form (POST /login).
func (h *Handler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	res, err := h.Onboarding.Login(c.Request.Context(), email, password)
	// Sign-in alone starts a session, even when no profile matches.
	if res.UID != "" {
		if serr := h.setSession(c, res.UID, res.Email, res.Role); serr != nil {
			log.Printf("Login: session for %s not issued: %v", res.UID, serr)
			h.renderPage(c, http.StatusInternalServerError, PageData{Alert: "Login failed: could not start session.", LoginEmail: email})
			return
		}
	}
	if err != nil {
		var authErr *services.AuthError
		status := http.StatusInternalServerError
		switch {
		case errors.As(err, &authErr):
			status = http.StatusUnauthorized
		case errors.Is(err, services.ErrNoMatchingUser):
			status = http.StatusNotFound
		}
		h.renderPage(c, status, PageData{Alert: "Login failed: " + err.Error(), LoginEmail: email})
		return
	}

	log.Printf("Login: %s routed to %s", res.UID, res.Redirect)
	c.Redirect(http.StatusSeeOther, res.Redirect)
}

// Logout clears the session cookie and redirects to /.
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.SecureCookies, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) setSession(c *gin.Context, uid, email string, role models.Role) error {
	token, err := utils.GenerateJWT(uid, email, role)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(utils.SessionTTL.Seconds()), "/", "", h.SecureCookies, true)
	return nil
}
