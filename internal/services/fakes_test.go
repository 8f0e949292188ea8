package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/harentsoaR/sewa-finder/internal/models"
)

type fakeIdentity struct {
	mu        sync.Mutex
	accounts  map[string]string // email -> password
	uids      map[string]string // email -> uid
	createErr error
	deleteErr error
	creates   int
	signIns   int
	deleted   []string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{accounts: map[string]string{}, uids: map[string]string{}}
}

func (f *fakeIdentity) CreateAccount(_ context.Context, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return "", f.createErr
	}
	if _, ok := f.accounts[email]; ok {
		return "", &AuthError{Op: "create", Message: "email in use", Err: ErrEmailInUse}
	}
	uid := fmt.Sprintf("uid-%d", len(f.accounts)+1)
	f.accounts[email] = password
	f.uids[email] = uid
	return uid, nil
}

func (f *fakeIdentity) SignIn(_ context.Context, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signIns++
	if pw, ok := f.accounts[email]; !ok || pw != password {
		return "", &AuthError{Op: "sign-in", Message: "invalid credential", Err: ErrInvalidCredentials}
	}
	return f.uids[email], nil
}

func (f *fakeIdentity) DeleteAccount(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, uid)
	for email, id := range f.uids {
		if id == uid {
			delete(f.uids, email)
			delete(f.accounts, email)
		}
	}
	return nil
}

type fakeProfiles struct {
	mu       sync.Mutex
	docs     map[string]map[string]models.Profile // collection -> uid -> profile
	writeErr error
	queryErr error
	writes   int
	queries  []string
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{docs: map[string]map[string]models.Profile{}}
}

func (f *fakeProfiles) put(collection string, p models.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.docs[collection] == nil {
		f.docs[collection] = map[string]models.Profile{}
	}
	f.docs[collection][p.UID] = p
}

func (f *fakeProfiles) CreateProfile(_ context.Context, collection string, p models.Profile) error {
	f.mu.Lock()
	f.writes++
	err := f.writeErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	f.put(collection, p)
	return nil
}

func (f *fakeProfiles) HasEmail(_ context.Context, collection, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, collection)
	if f.queryErr != nil {
		return false, f.queryErr
	}
	for _, p := range f.docs[collection] {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProfiles) GetProfile(_ context.Context, collection, uid string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.docs[collection][uid]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return &p, nil
}

func (f *fakeProfiles) Ping(context.Context) error { return nil }

type fakeResolver struct {
	mu         sync.Mutex
	names      map[models.GeoPoint]string
	reverseErr error
	places     []Place
	searchErr  error
	searches   []string
}

func (f *fakeResolver) Reverse(_ context.Context, p models.GeoPoint) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reverseErr != nil {
		return "", f.reverseErr
	}
	name, ok := f.names[p]
	if !ok {
		return "", fmt.Errorf("%w: no display_name", ErrLookup)
	}
	return name, nil
}

func (f *fakeResolver) Search(_ context.Context, query string) ([]Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, query)
	return f.places, f.searchErr
}

var errBoom = errors.New("boom")

func joined(s []string) string { return strings.Join(s, ",") }
