package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ipede/identity-token-service/internal/domain"
	"github.com/oklog/ulid/v2"
)

type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWT signs and validates the access/refresh pairs returned on login.
// These are session credentials; the opaque workflow tokens live in the
// token store, not here.
type JWT struct {
	privateKey      *rsa.PrivateKey
	publicKey       *rsa.PublicKey
	accessDuration  time.Duration
	refreshDuration time.Duration
}

// New creates a new JWT service with a freshly generated RSA key
func New(accessDuration, refreshDuration time.Duration) (*JWT, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	return &JWT{
		privateKey:      privateKey,
		publicKey:       &privateKey.PublicKey,
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
	}, nil
}

// GetPublicKey returns the verification key
func (j *JWT) GetPublicKey() *rsa.PublicKey {
	return j.publicKey
}

// GetPrivateKey returns the signing key
func (j *JWT) GetPrivateKey() *rsa.PrivateKey {
	return j.privateKey
}

// GenerateTokenPair generates a new pair of access and refresh tokens
func (j *JWT) GenerateTokenPair(userID domain.ULID, roles []string) (*domain.TokenPair, error) {
	now := time.Now()

	accessClaims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessDuration)),
			ID:        ulid.Make().String(),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, accessClaims).SignedString(j.privateKey)
	if err != nil {
		return nil, err
	}

	refreshClaims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshDuration)),
			ID:        ulid.Make().String(),
		},
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, refreshClaims).SignedString(j.privateKey)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateToken parses and validates a signed token, returning its claims
func (j *JWT) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.publicKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
