package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/harentsoaR/sewa-finder/internal/models"
	"google.golang.org/api/iterator"
	"google.golang.org/genproto/googleapis/type/latlng"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// firestoreProfile is the Firestore document shape. location is a
// native GeoPoint.
type firestoreProfile struct {
	UID       string         `firestore:"uid"`
	Name      string         `firestore:"name"`
	Email     string         `firestore:"email"`
	Phone     string         `firestore:"phone"`
	Address   string         `firestore:"address"`
	Location  *latlng.LatLng `firestore:"location"`
	CreatedAt time.Time      `firestore:"createdAt"`
}

func toFirestoreProfile(p models.Profile) firestoreProfile {
	return firestoreProfile{
		UID:       p.UID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		Location:  &latlng.LatLng{Latitude: p.Location.Lat, Longitude: p.Location.Lng},
		CreatedAt: p.CreatedAt,
	}
}

func (f firestoreProfile) toModel() models.Profile {
	p := models.Profile{
		ID:        f.UID,
		UID:       f.UID,
		Name:      f.Name,
		Email:     f.Email,
		Phone:     f.Phone,
		Address:   f.Address,
		CreatedAt: f.CreatedAt,
	}
	if f.Location != nil {
		p.Location = models.GeoPoint{Lat: f.Location.Latitude, Lng: f.Location.Longitude}
	}
	return p
}

// FirestoreProfileStore keeps profiles as Firestore documents whose id is
// the identity id.
type FirestoreProfileStore struct {
	client *firestore.Client
}

func NewFirestoreProfileStore(client *firestore.Client) *FirestoreProfileStore {
	return &FirestoreProfileStore{client: client}
}

func (s *FirestoreProfileStore) CreateProfile(ctx context.Context, collection string, p models.Profile) error {
	_, err := s.client.Collection(collection).Doc(p.UID).Create(ctx, toFirestoreProfile(p))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("%w: %s/%s", ErrProfileExists, collection, p.UID)
		}
		return fmt.Errorf("services: create %s/%s: %w", collection, p.UID, err)
	}
	return nil
}

func (s *FirestoreProfileStore) HasEmail(ctx context.Context, collection, email string) (bool, error) {
	iter := s.client.Collection(collection).Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("services: query %s by email: %w", collection, err)
	}
	return true, nil
}

func (s *FirestoreProfileStore) GetProfile(ctx context.Context, collection, uid string) (*models.Profile, error) {
	snap, err := s.client.Collection(collection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("services: get %s/%s: %w", collection, uid, err)
	}
	var doc firestoreProfile
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("services: decode %s/%s: %w", collection, uid, err)
	}
	p := doc.toModel()
	return &p, nil
}

// Ping reads at most one customer document.
func (s *FirestoreProfileStore) Ping(ctx context.Context) error {
	iter := s.client.Collection(models.CustomerCollection).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}
