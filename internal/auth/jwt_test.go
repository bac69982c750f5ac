package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/projectvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	profileID := "11111111-1111-4111-8111-111111111111"

	tok, err := GenerateToken(profileID, secret, time.Hour)
	require.NoError(t, err)

	got, err := GetUserIDFromToken(tok, secret, 0)
	require.NoError(t, err)
	assert.Equal(t, profileID, got)
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("u1", secret, -1*time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(tok, secret, 0)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestGetUserIDFromToken_Rejected(t *testing.T) {
	t.Parallel()

	secret := []byte("right-secret")
	signed := func(claims jwt.Claims, method jwt.SigningMethod, key any) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	wrongSecret, err := GenerateToken("u2", []byte("wrong-secret"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "wrong secret", token: wrongSecret},
		{name: "malformed", token: "not.a.jwt"},
		{name: "empty", token: ""},
		{name: "no subject", token: signed(Claims{jwt.RegisteredClaims{Issuer: Issuer, ExpiresAt: exp}}, jwt.SigningMethodHS256, secret)},
		{name: "foreign issuer", token: signed(Claims{jwt.RegisteredClaims{Issuer: "other", Subject: "u", ExpiresAt: exp}}, jwt.SigningMethodHS256, secret)},
		{name: "no expiry", token: signed(Claims{jwt.RegisteredClaims{Issuer: Issuer, Subject: "u"}}, jwt.SigningMethodHS256, secret)},
		{name: "other algorithm", token: signed(Claims{jwt.RegisteredClaims{Issuer: Issuer, Subject: "u", ExpiresAt: exp}}, jwt.SigningMethodHS512, secret)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetUserIDFromToken(tt.token, secret, 0)
			assert.ErrorIs(t, err, common.ErrInvalidToken)
		})
	}
}

func TestGetUserIDFromToken_MaxLifetime(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	now := time.Now()
	signed := func(claims jwt.RegisteredClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{claims}).SignedString(secret)
		require.NoError(t, err)
		return s
	}

	within, err := GenerateToken("u1", secret, 15*time.Minute)
	require.NoError(t, err)
	tooLong, err := GenerateToken("u1", secret, 24*time.Hour)
	require.NoError(t, err)
	noIssuedAt := signed(jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	})

	got, err := GetUserIDFromToken(within, secret, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "u1", got)

	_, err = GetUserIDFromToken(tooLong, secret, 15*time.Minute)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = GetUserIDFromToken(noIssuedAt, secret, 15*time.Minute)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	got, err = GetUserIDFromToken(tooLong, secret, 0)
	require.NoError(t, err)
	assert.Equal(t, "u1", got)
}
