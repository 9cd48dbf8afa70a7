package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any verification failure: bad signature,
// malformed payload, unexpected algorithm or expired token. Callers are not
// told which, so the error cannot be used as a signature oracle.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the assertions embedded in an access token. The email doubles
// as the registered subject claim.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens. The secret and TTL
// are set once at startup and never change for the life of the process.
type TokenService struct {
	secretKey  string
	ttlMinutes int64
}

// NewTokenService creates a new TokenService
func NewTokenService(secretKey string, ttlMinutes int64) *TokenService {
	return &TokenService{secretKey: secretKey, ttlMinutes: ttlMinutes}
}

// Issue generates a signed token carrying the user's email and role
func (ts *TokenService) Issue(email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute * time.Duration(ts.ttlMinutes))),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ts.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify parses and validates a token string. Every failure mode collapses
// into ErrInvalidToken.
func (ts *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.secretKey), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
