package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"firebase.google.com/go/auth"
	"github.com/harentsoaR/sewa-finder/internal/utils"
)

const identityToolkitSignInURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// FirebaseUserManager is the part of the Admin SDK auth client used here.
type FirebaseUserManager interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
}

// FirebaseIdentity creates and deletes accounts with the Admin SDK and
// verifies passwords through the Identity Toolkit REST API, which the
// Admin SDK does not expose.
type FirebaseIdentity struct {
	users     FirebaseUserManager
	apiKey    string
	signInURL string
	client    *http.Client
}

func NewFirebaseIdentity(users FirebaseUserManager, apiKey string, timeout time.Duration) *FirebaseIdentity {
	return &FirebaseIdentity{
		users:     users,
		apiKey:    apiKey,
		signInURL: identityToolkitSignInURL,
		client:    &http.Client{Timeout: timeout},
	}
}

func (f *FirebaseIdentity) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if utils.IsWeakPassword(password) {
		return "", &AuthError{
			Op:      "create",
			Message: "Firebase: Password should be at least 6 characters (auth/weak-password).",
			Err:     ErrWeakPassword,
		}
	}
	params := (&auth.UserToCreate{}).Email(strings.TrimSpace(email)).Password(password)
	rec, err := f.users.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", &AuthError{Op: "create", Message: "Firebase: Error (auth/email-already-in-use).", Err: ErrEmailInUse}
		}
		return "", &AuthError{Op: "create", Message: err.Error(), Err: err}
	}
	return rec.UID, nil
}

func (f *FirebaseIdentity) DeleteAccount(ctx context.Context, uid string) error {
	if err := f.users.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("services: delete firebase user %s: %w", uid, err)
	}
	return nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID string `json:"localId"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (f *FirebaseIdentity) SignIn(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(signInRequest{Email: strings.TrimSpace(email), Password: password, ReturnSecureToken: true})
	if err != nil {
		return "", &AuthError{Op: "sign-in", Message: err.Error(), Err: err}
	}

	endpoint := f.signInURL + "?key=" + url.QueryEscape(f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &AuthError{Op: "sign-in", Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &AuthError{Op: "sign-in", Message: "Firebase: Error (auth/network-request-failed).", Err: err}
	}
	defer resp.Body.Close()

	var out signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &AuthError{Op: "sign-in", Message: "Firebase: unreadable response.", Err: err}
	}
	if resp.StatusCode != http.StatusOK || out.Error != nil {
		code := ""
		if out.Error != nil {
			code = out.Error.Message
		}
		return "", signInError(code, resp.StatusCode)
	}
	if out.LocalID == "" {
		return "", &AuthError{Op: "sign-in", Message: "Firebase: response without user id.", Err: ErrInvalidCredentials}
	}
	return out.LocalID, nil
}

// signInError maps Identity Toolkit error codes. Codes may carry a
// " : detail" suffix.
func signInError(code string, status int) *AuthError {
	base := strings.TrimSpace(strings.SplitN(code, " : ", 2)[0])
	switch base {
	case "INVALID_LOGIN_CREDENTIALS", "INVALID_PASSWORD", "EMAIL_NOT_FOUND":
		return &AuthError{Op: "sign-in", Message: "Firebase: Error (auth/invalid-credential).", Err: ErrInvalidCredentials}
	case "":
		return &AuthError{Op: "sign-in", Message: fmt.Sprintf("Firebase: sign-in failed with status %d.", status)}
	default:
		return &AuthError{Op: "sign-in", Message: "Firebase: " + code}
	}
}
