package services

import "errors"

// Validation errors. Their text is shown to the user as is.
var (
	ErrPasswordMismatch = errors.New("Passwords do not match!")
	ErrLocationRequired = errors.New("Please select your location using the map.")
	ErrEmptyQuery       = errors.New("Please enter an address to search.")
	ErrNoLocationFound  = errors.New("No location found in Nepal for that query.")
)

var (
	// ErrLookup signals a failed geocoding request or an unusable response.
	ErrLookup = errors.New("services: geocode lookup failed")
	// ErrNoMatchingUser signals a successful sign-in with no profile in
	// either collection.
	ErrNoMatchingUser = errors.New("No matching user found.")

	ErrEmailInUse         = errors.New("services: email already in use")
	ErrWeakPassword       = errors.New("services: weak password")
	ErrInvalidCredentials = errors.New("services: invalid credentials")

	ErrProfileExists   = errors.New("services: profile already exists")
	ErrProfileNotFound = errors.New("services: profile not found")
)

// AuthError is a failure reported by the identity service. Message is
// the provider's text and is what users see.
type AuthError struct {
	Op      string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a user input problem.
func IsValidation(err error) bool {
	return errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrLocationRequired) ||
		errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrNoLocationFound)
}
