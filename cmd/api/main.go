package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	firebase "firebase.google.com/go"

	"github.com/harentsoaR/sewa-finder/internal/config"
	"github.com/harentsoaR/sewa-finder/internal/handlers"
	"github.com/harentsoaR/sewa-finder/internal/models"
	"github.com/harentsoaR/sewa-finder/internal/pagestate"
	"github.com/harentsoaR/sewa-finder/internal/services"
)

func main() {
	if err := config.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	log.Printf("MONGO_DATABASE: %s", config.MongoDatabase())
	log.Printf("API_PORT: %s", config.APIPort())
	log.Printf("IDENTITY_BACKEND: %s, PROFILE_BACKEND: %s", config.IdentityBackend(), config.ProfileBackend())
	if config.JWTSecret() != "" {
		log.Println("JWT_SECRET is SET.")
	} else {
		log.Println("JWT_SECRET is NOT SET.")
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.MongoURI()))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(config.MongoDatabase())
	log.Println("Successfully connected to MongoDB!")

	// --- Firebase (only when a backend needs it) ---
	// SDK clients outlive startup, so they get no deadline.
	var app *firebase.App
	if config.IdentityBackend() == "firebase" || config.ProfileBackend() == "firestore" {
		app, err = services.InitFirebase(context.Background(), config.FirebaseCredentials(), config.FirebaseProjectID())
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		if app == nil {
			log.Fatal("GOOGLE_APPLICATION_CREDENTIALS is required for the firebase/firestore backends.")
		}
	}

	// --- Identity ---
	var identity services.IdentityProvider
	switch config.IdentityBackend() {
	case "firebase":
		authClient, err := app.Auth(context.Background())
		if err != nil {
			log.Fatalf("Failed to create Firebase auth client: %v", err)
		}
		identity = services.NewFirebaseIdentity(authClient, config.FirebaseAPIKey(), 10*time.Second)
		log.Println("Using Firebase identity.")
	default:
		local := services.NewLocalIdentity(db)
		if err := local.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Failed to create account indexes: %v", err)
		}
		identity = local
		log.Println("Using local identity.")
	}

	// --- Profiles ---
	var profiles services.ProfileStore
	switch config.ProfileBackend() {
	case "firestore":
		fs, err := app.Firestore(context.Background())
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer fs.Close()
		profiles = services.NewFirestoreProfileStore(fs)
		log.Println("Using Firestore profiles.")
	default:
		profiles = services.NewMongoProfileStore(db)
		log.Println("Using MongoDB profiles.")
	}

	// --- Initialize Services ---
	geocoder := services.NewGeocoder(config.GeocoderURL(), config.GeocoderCountry(), config.GeocoderUserAgent(), config.GeocoderTimeout())
	locator := services.NewLocator(geocoder)
	onboarding := services.NewOnboarding(identity, profiles, config.SignupRollback())

	lat, lng := config.MapCenter()
	pages := pagestate.NewStore(models.GeoPoint{Lat: lat, Lng: lng}, config.MapZoom())
	go sweepPages(pages, config.PageStateTTL())

	h := handlers.NewHandler(locator, onboarding, profiles, config.TileURL(), config.SecureCookies())

	// --- Gin Router ---
	r := gin.Default()

	// ---  Middleware ---
	if origins := config.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	r.LoadHTMLGlob(config.TemplatesDir() + "/*")
	r.Static("/static", config.StaticDir())

	// --- Routes ---
	h.RegisterRoutes(r, pages)

	port := config.APIPort()
	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// sweepPages drops page states idle for longer than ttl.
func sweepPages(pages *pagestate.Store, ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if n := pages.Sweep(ttl); n > 0 {
			log.Printf("Swept %d idle page states.", n)
		}
	}
}
