package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultTileURL     = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	defaultGeocoderURL = "https://nominatim.openstreetmap.org"
	defaultUserAgent   = "sewa-finder/1.0"

	// Kathmandu.
	defaultCenterLat = 27.7172
	defaultCenterLng = 85.3240
	defaultZoom      = 13
)

// Load reads .env from the current directory. Existing env vars win.
func Load() error {
	return godotenv.Load()
}

func MongoURI() string {
	return os.Getenv("MONGO_URI")
}

func MongoDatabase() string {
	if v := os.Getenv("MONGO_DATABASE"); v != "" {
		return v
	}
	return "sewa"
}

// APIPort returns the listen port, defaulting to 8080.
func APIPort() string {
	if v := strings.TrimPrefix(os.Getenv("API_PORT"), ":"); v != "" {
		return v
	}
	return "8080"
}

func JWTSecret() string {
	return os.Getenv("JWT_SECRET")
}

// CORSOrigins returns the comma separated CORS_ORIGINS list.
func CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// IdentityBackend is "local" (Mongo accounts) or "firebase".
func IdentityBackend() string {
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("IDENTITY_BACKEND"))); v == "firebase" {
		return v
	}
	return "local"
}

// ProfileBackend is "mongo" or "firestore".
func ProfileBackend() string {
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("PROFILE_BACKEND"))); v == "firestore" {
		return v
	}
	return "mongo"
}

func FirebaseCredentials() string {
	return os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
}

func FirebaseAPIKey() string {
	return os.Getenv("FIREBASE_API_KEY")
}

func FirebaseProjectID() string {
	return os.Getenv("FIREBASE_PROJECT_ID")
}

func GeocoderURL() string {
	if v := os.Getenv("GEOCODER_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultGeocoderURL
}

// GeocoderCountry is the ISO country code forward searches are limited to.
func GeocoderCountry() string {
	if v := strings.TrimSpace(os.Getenv("GEOCODER_COUNTRY")); v != "" {
		return strings.ToLower(v)
	}
	return "np"
}

func GeocoderUserAgent() string {
	if v := os.Getenv("GEOCODER_USER_AGENT"); v != "" {
		return v
	}
	return defaultUserAgent
}

func GeocoderTimeout() time.Duration {
	return durationEnv("GEOCODER_TIMEOUT", 10*time.Second)
}

func TileURL() string {
	if v := os.Getenv("TILE_URL"); v != "" {
		return v
	}
	return defaultTileURL
}

// MapCenter returns the initial map center.
func MapCenter() (lat, lng float64) {
	return floatEnv("MAP_CENTER_LAT", defaultCenterLat), floatEnv("MAP_CENTER_LNG", defaultCenterLng)
}

func MapZoom() int {
	if v := os.Getenv("MAP_ZOOM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 19 {
			return n
		}
	}
	return defaultZoom
}

// SignupRollback reports whether a failed profile write deletes the
// account created just before it. Enabled unless set to 0/false.
func SignupRollback() bool {
	if v := os.Getenv("SIGNUP_ROLLBACK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return true
}

func SecureCookies() bool {
	return os.Getenv("SECURE_COOKIES") == "1" || os.Getenv("HTTPS") == "1"
}

// PageStateTTL is how long an idle map/form state is kept.
func PageStateTTL() time.Duration {
	return durationEnv("PAGE_STATE_TTL", 2*time.Hour)
}

func TemplatesDir() string {
	if v := os.Getenv("TEMPLATES_DIR"); v != "" {
		return v
	}
	return "web/templates"
}

func StaticDir() string {
	if v := os.Getenv("STATIC_DIR"); v != "" {
		return v
	}
	return "web/static"
}

func durationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func floatEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
