package utils

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/harentsoaR/sewa-finder/internal/config"
	"github.com/harentsoaR/sewa-finder/internal/models"
)

// SessionTTL is the lifetime of a session token.
const SessionTTL = 24 * time.Hour

var errNoSecret = errors.New("JWT_SECRET is not configured")

type Claims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT creates a session token. role may be empty when the user
// signed in but has no profile yet.
func GenerateJWT(userID, email string, role models.Role) (string, error) {
	secret := config.JWTSecret()
	if secret == "" {
		log.Println("CRITICAL: JWT_SECRET is not configured. Cannot generate token.")
		return "", errNoSecret
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateJWT parses and verifies a session token.
func ValidateJWT(tokenStr string) (*Claims, error) {
	secret := config.JWTSecret()
	if secret == "" {
		log.Println("CRITICAL: JWT_SECRET is not configured. Cannot validate token.")
		return nil, errNoSecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
