// Package pagestate holds the per-tab map and form state of the signup page.
package pagestate

import (
	"sync"
	"time"

	"github.com/harentsoaR/sewa-finder/internal/models"
)

// View is a copy of a ViewState safe to render or encode.
type View struct {
	Center     models.GeoPoint  `json:"center"`
	Zoom       int              `json:"zoom"`
	Selected   *models.GeoPoint `json:"selected,omitempty"`
	Marker     *models.Marker   `json:"marker,omitempty"`
	Address    string           `json:"address"`
	ShowSignup bool             `json:"showSignup"`
	ModalOpen  bool             `json:"modalOpen"`
}

// ViewState is the mutable state of one page: the map viewport, the
// selected coordinate with its single marker, the address field and the
// two UI toggles.
type ViewState struct {
	mu       sync.Mutex
	view     View
	lastSeen time.Time
}

func newViewState(center models.GeoPoint, zoom int, now time.Time) *ViewState {
	return &ViewState{
		view:     View{Center: center, Zoom: zoom},
		lastSeen: now,
	}
}

// Snapshot returns a deep copy of the current view.
func (s *ViewState) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *ViewState) snapshotLocked() View {
	v := s.view
	if v.Selected != nil {
		p := *v.Selected
		v.Selected = &p
	}
	if v.Marker != nil {
		m := *v.Marker
		v.Marker = &m
	}
	return v
}

// Selected returns the chosen coordinate, if any.
func (s *ViewState) Selected() (models.GeoPoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view.Selected == nil {
		return models.GeoPoint{}, false
	}
	return *s.view.Selected, true
}

// PlaceMarker selects p and moves the marker there, creating it on first use.
func (s *ViewState) PlaceMarker(p models.GeoPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Selected = &p
	if s.view.Marker != nil {
		s.view.Marker.Position = p
		return
	}
	s.view.Marker = &models.Marker{Position: p}
}

// Recenter moves the viewport.
func (s *ViewState) Recenter(p models.GeoPoint, zoom int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Center = p
	s.view.Zoom = zoom
}

func (s *ViewState) SetAddress(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Address = address
}

// ToggleForms swaps the visible form between login and signup.
func (s *ViewState) ToggleForms() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ShowSignup = !s.view.ShowSignup
	return s.snapshotLocked()
}

// ToggleModal opens or closes the location confirmation modal.
func (s *ViewState) ToggleModal() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ModalOpen = !s.view.ModalOpen
	return s.snapshotLocked()
}

func (s *ViewState) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *ViewState) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
