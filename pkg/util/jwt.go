package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const shareTokenIssuer = "certificate-validator"

// ShareClaims identifies the certificate a share link points at.
type ShareClaims struct {
	CertificateID string `json:"certificate_id"`
	jwt.RegisteredClaims
}

// GenerateShareToken signs a share token for certificateID that expires
// after expiry.
func GenerateShareToken(certificateID, secret string, expiry time.Duration) (string, *ShareClaims, error) {
	now := time.Now()
	claims := &ShareClaims{
		CertificateID: certificateID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    shareTokenIssuer,
			Subject:   certificateID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign share token: %w", err)
	}
	return signed, claims, nil
}

// ValidateToken parses and verifies a share token.
func ValidateToken(tokenString, secret string) (*ShareClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ShareClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(shareTokenIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*ShareClaims)
	if !ok || !token.Valid || claims.CertificateID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
