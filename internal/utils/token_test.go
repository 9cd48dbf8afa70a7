package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestTokenService_Issue(t *testing.T) {
	tokens := NewTokenService("secret", 60)

	tokenString, err := tokens.Issue("a@x.com", "citizen")

	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	// Verify the token to ensure it's well-formed and contains correct claims
	claims, err := tokens.Verify(tokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "a@x.com", claims.Subject)
	assert.Equal(t, "citizen", claims.Role)
	assert.WithinDuration(t, time.Now().Add(60*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenService_Verify(t *testing.T) {
	tokens := NewTokenService("secret", 60)

	tokenString, _ := tokens.Issue("a@x.com", "authority")

	claims, err := tokens.Verify(tokenString)

	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "authority", claims.Role)
}

func TestTokenService_Verify_MalformedToken(t *testing.T) {
	tokens := NewTokenService("secret", 60)

	_, err := tokens.Verify("invalid.token.string")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_ExpiredToken(t *testing.T) {
	tokens := NewTokenService("secret", -1) // Token expires in the past

	tokenString, _ := tokens.Issue("a@x.com", "citizen")

	// Wait for a moment to ensure the token is definitely expired if system clock is slightly off
	time.Sleep(1 * time.Second)

	_, err := tokens.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	tokens1 := NewTokenService("secret1", 60)
	tokens2 := NewTokenService("secret2", 60)

	tokenString, _ := tokens1.Issue("a@x.com", "citizen")

	_, err := tokens2.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_InvalidSigningMethod(t *testing.T) {
	tokens := NewTokenService("secret", 60)
	// Tokens signed with a non-HMAC algorithm must be rejected even if the
	// payload is otherwise valid
	claims := &Claims{
		Email: "a@x.com",
		Role:  "citizen",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = tokens.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
