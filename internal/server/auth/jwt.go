// Package auth provides the authentication primitives for the server:
// bearer-token minting/verification and password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/voiceviz/voiceviz-server/internal/common"
)

// GenerateToken mints a signed HS256 token asserting the given subject email
// with an expiry of now + validityDuration. The token carries no other state;
// its validity is purely a function of its signed content and the clock.
func GenerateToken(subjectEmail string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subjectEmail,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSubjectFromToken verifies the token's signature and expiry against the
// shared secret and returns the subject email.
//
// Failures are classified as common.ErrTokenExpired for tokens past their
// expiry and common.ErrInvalidToken for everything else (bad signature,
// wrong algorithm, malformed payload, missing subject). Callers are expected
// to collapse both into one generic response.
func GetSubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
