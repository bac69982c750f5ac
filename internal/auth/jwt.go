// Package auth issues and verifies the HS256 access tokens that identify
// callers of the vault API. The token subject is the caller's profile id.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/projectvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Issuer is written to and required in every token.
const Issuer = "projectvault"

// Claims are the registered JWT claims; Subject carries the profile id.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs a token for profileID that expires after validity.
func GenerateToken(profileID string, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   profileID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	})

	return token.SignedString(secretKey)
}

// GetUserIDFromToken verifies tokenString and returns its subject.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// verification yields common.ErrInvalidToken. When maxLifetime is positive
// the token must carry iat and its iat to exp span may not exceed it.
func GetUserIDFromToken(tokenString string, secretKey []byte, maxLifetime time.Duration) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	if maxLifetime > 0 {
		if claims.IssuedAt == nil || claims.ExpiresAt.Sub(claims.IssuedAt.Time) > maxLifetime {
			return "", common.ErrInvalidToken
		}
	}

	return claims.Subject, nil
}
