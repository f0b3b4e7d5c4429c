// Package auth implements the session token minted by the auth gate after
// a successful app-password check. The token is an HS256 JWT carried in a
// cookie; it says nothing about the vault passphrase, which never reaches
// the server.
package auth

import (
	"time"

	"github.com/dmitrijs2005/cloudvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken mints a signed session token valid for the given
// duration.
func GenerateSessionToken(secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateSessionToken verifies the signature and expiry of a session
// token. Invalid or expired tokens return common.ErrInvalidToken.
func ValidateSessionToken(tokenString string, secretKey []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return common.ErrInvalidToken
	}

	if !token.Valid {
		return common.ErrInvalidToken
	}

	return nil
}
