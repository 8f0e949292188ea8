package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/harentsoaR/sewa-finder/internal/models"
)

// Place is one forward geocoding match.
type Place struct {
	Location    models.GeoPoint
	DisplayName string
}

// Geocoder talks to a Nominatim compatible service.
type Geocoder struct {
	baseURL   string
	country   string
	userAgent string
	client    *http.Client
}

func NewGeocoder(baseURL, country, userAgent string, timeout time.Duration) *Geocoder {
	return &Geocoder{
		baseURL:   baseURL,
		country:   country,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Reverse returns the display name for p. A response without a display
// name is reported as ErrLookup.
func (g *Geocoder) Reverse(ctx context.Context, p models.GeoPoint) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(p.Lng, 'f', -1, 64))

	var resp reverseResponse
	if err := g.get(ctx, "/reverse", q, &resp); err != nil {
		return "", err
	}
	if resp.DisplayName == "" {
		return "", fmt.Errorf("%w: no display_name for %v,%v", ErrLookup, p.Lat, p.Lng)
	}
	return resp.DisplayName, nil
}

// Search runs a free text query limited to the configured country and
// returns matches in the service's order.
func (g *Geocoder) Search(ctx context.Context, query string) ([]Place, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("countrycodes", g.country)
	q.Set("q", query)

	var results []searchResult
	if err := g.get(ctx, "/search", q, &results); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(results))
	for _, r := range results {
		lat, err1 := strconv.ParseFloat(r.Lat, 64)
		lng, err2 := strconv.ParseFloat(r.Lon, 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: bad coordinates %q,%q", ErrLookup, r.Lat, r.Lon)
		}
		places = append(places, Place{
			Location:    models.GeoPoint{Lat: lat, Lng: lng},
			DisplayName: r.DisplayName,
		})
	}
	return places, nil
}

func (g *Geocoder) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLookup, err)
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLookup, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrLookup, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrLookup, path, err)
	}
	return nil
}

// FallbackAddress is the address text used when reverse geocoding fails.
func FallbackAddress(p models.GeoPoint) string {
	return "Lat: " + toFixed5(p.Lat) + ", Lng: " + toFixed5(p.Lng)
}

// toFixed5 formats v with five decimals the way browsers format
// coordinates: exact ties round away from zero and -0 prints as 0.
func toFixed5(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0.00000"
	}

	r := new(big.Rat).SetFloat64(math.Abs(v))
	r.Mul(r, big.NewRat(100000, 1))
	q, rem := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	if rem.Lsh(rem, 1).Cmp(r.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}

	digits := q.String()
	if len(digits) < 6 {
		digits = strings.Repeat("0", 6-len(digits)) + digits
	}
	out := digits[:len(digits)-5] + "." + digits[len(digits)-5:]
	if v < 0 {
		out = "-" + out
	}
	return out
}
