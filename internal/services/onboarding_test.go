package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harentsoaR/sewa-finder/internal/models"
)

func validSignup() SignupRequest {
	return SignupRequest{
		Name:            "Sita Sharma",
		Email:           "sita@example.com",
		Phone:           "9800000000",
		Address:         "Lazimpat, Kathmandu",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestSignupValidation(t *testing.T) {
	loc := &models.GeoPoint{Lat: 27.7, Lng: 85.3}
	mismatch := validSignup()
	mismatch.ConfirmPassword = "different"

	tests := []struct {
		name string
		req  SignupRequest
		loc  *models.GeoPoint
		want error
	}{
		{name: "password mismatch", req: mismatch, loc: loc, want: ErrPasswordMismatch},
		{name: "no location", req: validSignup(), loc: nil, want: ErrLocationRequired},
		{name: "mismatch wins over missing location", req: mismatch, loc: nil, want: ErrPasswordMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ids := newFakeIdentity()
			profiles := newFakeProfiles()
			_, err := NewOnboarding(ids, profiles, true).Signup(context.Background(), tc.req, tc.loc)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !IsValidation(err) {
				t.Fatalf("expected a validation error")
			}
			if ids.creates != 0 || profiles.writes != 0 {
				t.Fatalf("expected no external calls, got creates=%d writes=%d", ids.creates, profiles.writes)
			}
		})
	}
}

func TestSignupWritesProfile(t *testing.T) {
	ids := newFakeIdentity()
	profiles := newFakeProfiles()
	ob := NewOnboarding(ids, profiles, true)
	fixed := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	ob.now = func() time.Time { return fixed }
	loc := &models.GeoPoint{Lat: 27.7, Lng: 85.3}

	p, err := ob.Signup(context.Background(), validSignup(), loc)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	stored, err := profiles.GetProfile(context.Background(), models.CustomerCollection, p.UID)
	if err != nil {
		t.Fatalf("profile not stored under uid %q: %v", p.UID, err)
	}
	if stored.Name != "Sita Sharma" || stored.Email != "sita@example.com" || stored.Phone != "9800000000" ||
		stored.Address != "Lazimpat, Kathmandu" || stored.Location != *loc || !stored.CreatedAt.Equal(fixed) {
		t.Fatalf("unexpected stored profile %+v", stored)
	}
}

func TestSignupCreateFailureSkipsProfileWrite(t *testing.T) {
	ids := newFakeIdentity()
	ids.createErr = &AuthError{Op: "create", Message: "Firebase: Error (auth/email-already-in-use).", Err: ErrEmailInUse}
	profiles := newFakeProfiles()

	_, err := NewOnboarding(ids, profiles, true).Signup(context.Background(), validSignup(), &models.GeoPoint{})
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if err.Error() != "Firebase: Error (auth/email-already-in-use)." {
		t.Fatalf("expected provider message verbatim, got %q", err.Error())
	}
	if profiles.writes != 0 {
		t.Fatalf("expected no profile write, got %d", profiles.writes)
	}
}

func TestSignupProfileFailureRollsBack(t *testing.T) {
	ids := newFakeIdentity()
	profiles := newFakeProfiles()
	profiles.writeErr = errBoom

	_, err := NewOnboarding(ids, profiles, true).Signup(context.Background(), validSignup(), &models.GeoPoint{})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
	if len(ids.deleted) != 1 || ids.deleted[0] != "uid-1" {
		t.Fatalf("expected uid-1 rolled back, got %v", ids.deleted)
	}
	if _, err := ids.SignIn(context.Background(), "sita@example.com", "secret123"); err == nil {
		t.Fatalf("expected account to be gone after rollback")
	}
}

func TestSignupProfileFailureWithoutRollbackLeavesAccount(t *testing.T) {
	ids := newFakeIdentity()
	profiles := newFakeProfiles()
	profiles.writeErr = errBoom

	_, err := NewOnboarding(ids, profiles, false).Signup(context.Background(), validSignup(), &models.GeoPoint{})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
	if len(ids.deleted) != 0 {
		t.Fatalf("expected no rollback, got %v", ids.deleted)
	}
	if _, err := ids.SignIn(context.Background(), "sita@example.com", "secret123"); err != nil {
		t.Fatalf("expected orphaned account to remain: %v", err)
	}
}

func TestSignupRollbackFailureIsReported(t *testing.T) {
	ids := newFakeIdentity()
	ids.deleteErr = errors.New("delete refused")
	profiles := newFakeProfiles()
	profiles.writeErr = errBoom

	_, err := NewOnboarding(ids, profiles, true).Signup(context.Background(), validSignup(), &models.GeoPoint{})
	if !errors.Is(err, errBoom) || !errors.Is(err, ids.deleteErr) {
		t.Fatalf("expected both errors joined, got %v", err)
	}
}

func TestLoginRouting(t *testing.T) {
	tests := []struct {
		name     string
		provider bool
		customer bool
		role     models.Role
		redirect string
		queries  string
		wantErr  error
	}{
		{name: "provider only", provider: true, role: models.RoleProvider, redirect: ProviderDashboardPath, queries: "providercreds"},
		{name: "customer only", customer: true, role: models.RoleCustomer, redirect: CustomerHomePath, queries: "providercreds,usercreds"},
		{name: "both prefers provider", provider: true, customer: true, role: models.RoleProvider, redirect: ProviderDashboardPath, queries: "providercreds"},
		{name: "neither", queries: "providercreds,usercreds", wantErr: ErrNoMatchingUser},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ids := newFakeIdentity()
			uid, _ := ids.CreateAccount(context.Background(), "ram@example.com", "secret123")
			profiles := newFakeProfiles()
			if tc.provider {
				profiles.put(models.ProviderCollection, models.Profile{UID: uid, Email: "ram@example.com"})
			}
			if tc.customer {
				profiles.put(models.CustomerCollection, models.Profile{UID: uid, Email: "ram@example.com"})
			}

			res, err := NewOnboarding(ids, profiles, true).Login(context.Background(), "ram@example.com", "secret123")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if res.UID != uid {
				t.Fatalf("expected uid %q even on miss, got %q", uid, res.UID)
			}
			if res.Role != tc.role || res.Redirect != tc.redirect {
				t.Fatalf("expected %q -> %q, got %q -> %q", tc.role, tc.redirect, res.Role, res.Redirect)
			}
			if got := joined(profiles.queries); got != tc.queries {
				t.Fatalf("expected queries %q, got %q", tc.queries, got)
			}
		})
	}
}

func TestLoginBadCredentials(t *testing.T) {
	ids := newFakeIdentity()
	profiles := newFakeProfiles()

	_, err := NewOnboarding(ids, profiles, true).Login(context.Background(), "nobody@example.com", "x")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(profiles.queries) != 0 {
		t.Fatalf("expected no profile queries, got %v", profiles.queries)
	}
}

func TestLoginQueryError(t *testing.T) {
	ids := newFakeIdentity()
	ids.CreateAccount(context.Background(), "ram@example.com", "secret123")
	profiles := newFakeProfiles()
	profiles.queryErr = errBoom

	_, err := NewOnboarding(ids, profiles, true).Login(context.Background(), "ram@example.com", "secret123")
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected query error, got %v", err)
	}
}
