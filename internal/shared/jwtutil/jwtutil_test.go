package jwtutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("secret", Claims{UserID: "u-1", Role: "ADMIN", TokenType: TypeAccess}, time.Hour, time.Now())
	assert.NoError(t, err)

	claims, err := Parse("secret", token, TypeAccess)
	assert.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestParseRejects(t *testing.T) {
	access, _ := Generate("secret", Claims{UserID: "u-1", TokenType: TypeAccess}, time.Hour, time.Now())
	expired, _ := Generate("secret", Claims{UserID: "u-1", TokenType: TypeAccess}, time.Minute, time.Now().Add(-time.Hour))

	_, err := Parse("other", access, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = Parse("secret", access, TypeRefresh)
	assert.ErrorIs(t, err, ErrWrongType)

	_, err = Parse("secret", expired, TypeAccess)
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, err = Parse("secret", "not-a-jwt", TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u-1", TokenType: TypeAccess})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = Parse("secret", unsigned, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateRequiresSecret(t *testing.T) {
	_, err := Generate("", Claims{UserID: "u-1"}, time.Hour, time.Now())
	assert.Error(t, err)
}
