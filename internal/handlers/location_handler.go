package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/sewa-finder/internal/middleware"
	"github.com/harentsoaR/sewa-finder/internal/models"
	"github.com/harentsoaR/sewa-finder/internal/services"
)

type coordinateRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

func bindCoordinate(c *gin.Context) (models.GeoPoint, bool) {
	var req coordinateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expecting {\"lat\": ..., \"lng\": ...}"})
		return models.GeoPoint{}, false
	}
	return models.GeoPoint{Lat: *req.Lat, Lng: *req.Lng}, true
}

// CurrentLocation receives the browser's geolocation fix.
func (h *Handler) CurrentLocation(c *gin.Context) {
	p, ok := bindCoordinate(c)
	if !ok {
		return
	}
	view := h.Locator.UseCurrentPosition(c.Request.Context(), middleware.CurrentPage(c), p)
	c.JSON(http.StatusOK, view)
}

// MapClick receives a click on the map.
func (h *Handler) MapClick(c *gin.Context) {
	p, ok := bindCoordinate(c)
	if !ok {
		return
	}
	view := h.Locator.SelectOnMap(c.Request.Context(), middleware.CurrentPage(c), p)
	c.JSON(http.StatusOK, view)
}

// SearchAddress resolves the typed address. A geocoder failure leaves the
// page as it was without an alert.
func (h *Handler) SearchAddress(c *gin.Context) {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expecting {\"query\": \"...\"}"})
		return
	}

	view, err := h.Locator.SearchAddress(c.Request.Context(), middleware.CurrentPage(c), req.Query)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, view)
	case errors.Is(err, services.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "view": view})
	case errors.Is(err, services.ErrNoLocationFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"alert": err.Error(), "view": view})
	default:
		c.JSON(http.StatusOK, view)
	}
}
