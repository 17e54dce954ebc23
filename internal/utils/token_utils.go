package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidClaims is returned for a well-signed token whose claims do not
// describe a caller.
var ErrInvalidClaims = errors.New("invalid token claims")

// AccessClaims are the claims carried by an access token. The subject is the
// user id.
type AccessClaims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a new JWT token with the given parameters.
func GenerateJWT(userID string, role domain.Role, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// It returns the AccessClaims if the token is valid, or an error otherwise.
func ParseAndValidateJWT(tokenString string, secretKey string) (*AccessClaims, error) {
	claims := &AccessClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// CallerFromClaims builds the request caller from verified claims.
func CallerFromClaims(claims *AccessClaims) domain.Caller {
	caller := domain.Caller{ActorID: claims.Subject, Role: claims.Role}
	if claims.IssuedAt != nil {
		caller.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		caller.ExpiresAt = claims.ExpiresAt.Time
	}
	return caller
}
