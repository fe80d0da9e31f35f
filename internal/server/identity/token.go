// Package identity verifies caller tokens and manages credential state. A
// caller presents an HS256 JWT carrying a UserID claim; a disabled credential
// blocks the caller even when the token itself is valid.
package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tigerroots/collective/internal/common"
)

// Claims carries the standard claims plus the user identifier.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

func GenerateToken(userID string, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrUnauthenticated
	}

	return claims.UserID, nil
}
