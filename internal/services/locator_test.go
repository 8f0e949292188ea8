package services

import (
	"context"
	"errors"
	"testing"

	"github.com/harentsoaR/sewa-finder/internal/models"
	"github.com/harentsoaR/sewa-finder/internal/pagestate"
)

var kathmandu = models.GeoPoint{Lat: 27.7172, Lng: 85.3240}

func newPage() *pagestate.ViewState {
	_, st := pagestate.NewStore(kathmandu, 13).Load("")
	return st
}

func TestUseCurrentPosition(t *testing.T) {
	here := models.GeoPoint{Lat: 27.6710, Lng: 85.4298}
	geo := &fakeResolver{names: map[models.GeoPoint]string{here: "Bhaktapur, Nepal"}}
	st := newPage()

	v := NewLocator(geo).UseCurrentPosition(context.Background(), st, here)

	if v.Center != here || v.Zoom != 15 {
		t.Fatalf("expected recenter on %v at zoom 15, got %v at %d", here, v.Center, v.Zoom)
	}
	if v.Marker == nil || v.Marker.Position != here {
		t.Fatalf("expected marker at %v, got %+v", here, v.Marker)
	}
	if v.Address != "Bhaktapur, Nepal" {
		t.Fatalf("unexpected address %q", v.Address)
	}
	if v.ModalOpen {
		t.Fatalf("geolocation must not open the modal")
	}
}

func TestUseCurrentPositionFallsBack(t *testing.T) {
	geo := &fakeResolver{reverseErr: errBoom}
	st := newPage()
	p := models.GeoPoint{Lat: 27.123456, Lng: 85.654321}

	v := NewLocator(geo).UseCurrentPosition(context.Background(), st, p)
	if v.Address != "Lat: 27.12346, Lng: 85.65432" {
		t.Fatalf("unexpected fallback %q", v.Address)
	}
}

func TestSelectOnMapTogglesModal(t *testing.T) {
	p := models.GeoPoint{Lat: 27.7, Lng: 85.3}
	tests := []struct {
		name    string
		geo     *fakeResolver
		address string
	}{
		{name: "resolved", geo: &fakeResolver{names: map[models.GeoPoint]string{p: "Naxal"}}, address: "Naxal"},
		{name: "missing display_name", geo: &fakeResolver{}, address: "Lat: 27.70000, Lng: 85.30000"},
		{name: "lookup error", geo: &fakeResolver{reverseErr: errBoom}, address: "Lat: 27.70000, Lng: 85.30000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := newPage()
			v := NewLocator(tc.geo).SelectOnMap(context.Background(), st, p)
			if !v.ModalOpen {
				t.Fatalf("expected modal open after click")
			}
			if v.Address != tc.address {
				t.Fatalf("expected address %q, got %q", tc.address, v.Address)
			}
			if v.Center != kathmandu {
				t.Fatalf("map click must not recenter, got %v", v.Center)
			}
			if v.Marker == nil || v.Marker.Position != p {
				t.Fatalf("expected marker at %v", p)
			}
		})
	}
}

func TestRepeatedClicksMoveTheMarker(t *testing.T) {
	a := models.GeoPoint{Lat: 27.1, Lng: 85.1}
	b := models.GeoPoint{Lat: 27.2, Lng: 85.2}
	geo := &fakeResolver{names: map[models.GeoPoint]string{a: "A", b: "B"}}
	st := newPage()
	l := NewLocator(geo)

	l.SelectOnMap(context.Background(), st, a)
	v := l.SelectOnMap(context.Background(), st, b)

	if v.Marker.Position != b || *v.Selected != b {
		t.Fatalf("expected single marker at %v, got %+v", b, v)
	}
	if v.Address != "B" {
		t.Fatalf("expected last address to win, got %q", v.Address)
	}
	if v.ModalOpen {
		t.Fatalf("second click should toggle the modal closed")
	}
}

func TestSearchAddressSelectsFirstMatch(t *testing.T) {
	first := models.GeoPoint{Lat: 28.2096, Lng: 83.9856}
	geo := &fakeResolver{places: []Place{
		{Location: first, DisplayName: "Pokhara"},
		{Location: models.GeoPoint{Lat: 1, Lng: 1}, DisplayName: "elsewhere"},
	}}
	st := newPage()
	st.PlaceMarker(models.GeoPoint{Lat: 27, Lng: 85})
	st.SetAddress("Pokhara")

	v, err := NewLocator(geo).SearchAddress(context.Background(), st, "  Pokhara ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if geo.searches[0] != "Pokhara" {
		t.Fatalf("expected trimmed query, got %q", geo.searches[0])
	}
	if *v.Selected != first || v.Marker.Position != first {
		t.Fatalf("expected selection %v, got %+v", first, v)
	}
	if v.Center != first || v.Zoom != 16 {
		t.Fatalf("expected recenter at zoom 16, got %v/%d", v.Center, v.Zoom)
	}
	if v.Address != "Pokhara" {
		t.Fatalf("search must keep typed address, got %q", v.Address)
	}
}

func TestSearchAddressNoMatchKeepsSelection(t *testing.T) {
	prev := models.GeoPoint{Lat: 27.5, Lng: 85.5}
	geo := &fakeResolver{places: nil}
	st := newPage()
	st.PlaceMarker(prev)

	v, err := NewLocator(geo).SearchAddress(context.Background(), st, "Atlantis")
	if !errors.Is(err, ErrNoLocationFound) {
		t.Fatalf("expected ErrNoLocationFound, got %v", err)
	}
	if *v.Selected != prev || v.Marker.Position != prev {
		t.Fatalf("selection changed: %+v", v)
	}
}

func TestSearchAddressEmptyQuery(t *testing.T) {
	geo := &fakeResolver{}
	_, err := NewLocator(geo).SearchAddress(context.Background(), newPage(), "   ")
	if !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
	if len(geo.searches) != 0 {
		t.Fatalf("expected no geocoder call, got %v", geo.searches)
	}
}
