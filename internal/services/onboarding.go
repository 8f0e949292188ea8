package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/harentsoaR/sewa-finder/internal/models"
)

const (
	ProviderDashboardPath = "/provider_dashboard"
	CustomerHomePath      = "/customer-login/"
)

// roleLookupOrder is checked top to bottom; the first collection holding
// the email decides the role.
var roleLookupOrder = []struct {
	collection string
	role       models.Role
	redirect   string
}{
	{models.ProviderCollection, models.RoleProvider, ProviderDashboardPath},
	{models.CustomerCollection, models.RoleCustomer, CustomerHomePath},
}

type SignupRequest struct {
	Name            string
	Email           string
	Phone           string
	Address         string
	Password        string
	ConfirmPassword string
}

// LoginResult describes where a signed-in user goes. UID and Email are
// set whenever sign-in succeeded, including the ErrNoMatchingUser case.
type LoginResult struct {
	UID      string
	Email    string
	Role     models.Role
	Redirect string
}

// Onboarding runs the signup and login workflows.
type Onboarding struct {
	identity IdentityProvider
	profiles ProfileStore
	rollback bool
	now      func() time.Time
}

func NewOnboarding(identity IdentityProvider, profiles ProfileStore, rollback bool) *Onboarding {
	return &Onboarding{
		identity: identity,
		profiles: profiles,
		rollback: rollback,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Signup creates the account, then the customer profile. The two steps
// are not atomic; with rollback enabled a failed profile write deletes
// the fresh account, otherwise the account is left without a profile.
func (o *Onboarding) Signup(ctx context.Context, req SignupRequest, location *models.GeoPoint) (*models.Profile, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if location == nil {
		return nil, ErrLocationRequired
	}

	log.Println("Signup: creating identity account...")
	uid, err := o.identity.CreateAccount(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	log.Printf("Signup: account %s created.", uid)

	profile := models.Profile{
		UID:       uid,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Location:  *location,
		CreatedAt: o.now(),
	}
	if err := o.profiles.CreateProfile(ctx, models.CustomerCollection, profile); err != nil {
		log.Printf("Signup: profile write for %s failed: %v", uid, err)
		return nil, o.abandonAccount(ctx, uid, err)
	}
	log.Printf("Signup: profile %s written.", uid)

	return &profile, nil
}

func (o *Onboarding) abandonAccount(ctx context.Context, uid string, cause error) error {
	if !o.rollback {
		return fmt.Errorf("could not save profile (account %s has no profile): %w", uid, cause)
	}
	// The request may already be cancelled; the delete still has to run.
	delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := o.identity.DeleteAccount(delCtx, uid); err != nil {
		log.Printf("Signup: rollback of account %s failed: %v", uid, err)
		return fmt.Errorf("could not save profile and account %s could not be removed: %w", uid, errors.Join(cause, err))
	}
	log.Printf("Signup: account %s rolled back.", uid)
	return fmt.Errorf("could not save profile: %w", cause)
}

// Login signs in and resolves the role from profile membership,
// providers first.
func (o *Onboarding) Login(ctx context.Context, email, password string) (LoginResult, error) {
	uid, err := o.identity.SignIn(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}
	res := LoginResult{UID: uid, Email: email}

	for _, l := range roleLookupOrder {
		found, err := o.profiles.HasEmail(ctx, l.collection, email)
		if err != nil {
			return res, err
		}
		if found {
			res.Role = l.role
			res.Redirect = l.redirect
			return res, nil
		}
	}
	return res, ErrNoMatchingUser
}
