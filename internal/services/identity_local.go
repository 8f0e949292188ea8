package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/harentsoaR/sewa-finder/internal/models"
	"github.com/harentsoaR/sewa-finder/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const accountsCollection = "accounts"

// LocalIdentity keeps bcrypt hashed credentials in MongoDB.
type LocalIdentity struct {
	accounts *mongo.Collection
}

func NewLocalIdentity(db *mongo.Database) *LocalIdentity {
	return &LocalIdentity{accounts: db.Collection(accountsCollection)}
}

// EnsureIndexes creates the unique email index duplicate detection relies on.
func (l *LocalIdentity) EnsureIndexes(ctx context.Context) error {
	_, err := l.accounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("services: create accounts index: %w", err)
	}
	return nil
}

func (l *LocalIdentity) CreateAccount(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", &AuthError{Op: "create", Message: "Email is required.", Err: ErrInvalidCredentials}
	}
	if utils.IsWeakPassword(password) {
		return "", &AuthError{
			Op:      "create",
			Message: fmt.Sprintf("Password should be at least %d characters.", utils.MinPasswordLength),
			Err:     ErrWeakPassword,
		}
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return "", &AuthError{Op: "create", Message: "Failed to hash password.", Err: err}
	}

	acct := models.Account{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  hashed,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := l.accounts.InsertOne(ctx, acct); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", &AuthError{Op: "create", Message: "An account with this email already exists.", Err: ErrEmailInUse}
		}
		return "", &AuthError{Op: "create", Message: err.Error(), Err: err}
	}
	log.Printf("LocalIdentity: account %s created", acct.ID.Hex())
	return acct.ID.Hex(), nil
}

func (l *LocalIdentity) SignIn(ctx context.Context, email, password string) (string, error) {
	var acct models.Account
	err := l.accounts.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&acct)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", invalidCredentials()
		}
		return "", &AuthError{Op: "sign-in", Message: err.Error(), Err: err}
	}
	if !utils.CheckPasswordHash(password, acct.Password) {
		return "", invalidCredentials()
	}
	return acct.ID.Hex(), nil
}

func (l *LocalIdentity) DeleteAccount(ctx context.Context, uid string) error {
	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return fmt.Errorf("services: delete account %q: %w", uid, err)
	}
	if _, err := l.accounts.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("services: delete account %s: %w", uid, err)
	}
	return nil
}

func invalidCredentials() *AuthError {
	return &AuthError{Op: "sign-in", Message: "Invalid email or password.", Err: ErrInvalidCredentials}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
