package services

import (
	"context"
	"log"
	"strings"

	"github.com/harentsoaR/sewa-finder/internal/models"
	"github.com/harentsoaR/sewa-finder/internal/pagestate"
)

const (
	currentPositionZoom = 15
	searchResultZoom    = 16
)

// AddressResolver is the geocoding surface the locator needs.
type AddressResolver interface {
	Reverse(ctx context.Context, p models.GeoPoint) (string, error)
	Search(ctx context.Context, query string) ([]Place, error)
}

// Locator drives location selection on a page.
type Locator struct {
	geo AddressResolver
}

func NewLocator(geo AddressResolver) *Locator {
	return &Locator{geo: geo}
}

// UseCurrentPosition handles a browser geolocation fix: recenter, mark
// and fill the address field.
func (l *Locator) UseCurrentPosition(ctx context.Context, st *pagestate.ViewState, p models.GeoPoint) pagestate.View {
	st.Recenter(p, currentPositionZoom)
	st.PlaceMarker(p)
	st.SetAddress(l.resolveAddress(ctx, p))
	return st.Snapshot()
}

// SelectOnMap handles a map click. The viewport is left alone and the
// confirmation modal toggles once the address is known.
func (l *Locator) SelectOnMap(ctx context.Context, st *pagestate.ViewState, p models.GeoPoint) pagestate.View {
	st.PlaceMarker(p)
	st.SetAddress(l.resolveAddress(ctx, p))
	return st.ToggleModal()
}

// SearchAddress resolves a typed address and selects the first match.
// When nothing matches the current selection is kept.
func (l *Locator) SearchAddress(ctx context.Context, st *pagestate.ViewState, query string) (pagestate.View, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return st.Snapshot(), ErrEmptyQuery
	}

	places, err := l.geo.Search(ctx, query)
	if err != nil {
		log.Printf("SearchAddress: lookup for %q failed: %v", query, err)
		return st.Snapshot(), err
	}
	if len(places) == 0 {
		return st.Snapshot(), ErrNoLocationFound
	}

	best := places[0].Location
	st.Recenter(best, searchResultZoom)
	st.PlaceMarker(best)
	return st.Snapshot(), nil
}

func (l *Locator) resolveAddress(ctx context.Context, p models.GeoPoint) string {
	name, err := l.geo.Reverse(ctx, p)
	if err != nil {
		log.Printf("reverse geocode %v,%v: %v", p.Lat, p.Lng, err)
		return FallbackAddress(p)
	}
	return name
}
