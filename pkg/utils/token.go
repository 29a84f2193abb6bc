package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what gets embedded in every issued bearer token. The role
// is trusted for the token's lifetime; refresh re-reads it from the claims,
// not from the database.
type TokenClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTMaker struct {
	Secret []byte
	TTL    time.Duration
}

var ErrInvalidToken = errors.New("invalid token")

func NewJWTMaker(secret string, expiryMinutes int) *JWTMaker {
	return &JWTMaker{
		Secret: []byte(secret),
		TTL:    time.Duration(expiryMinutes) * time.Minute,
	}
}

// Issue signs a new HS256 token for the given identity.
func (j *JWTMaker) Issue(userID, email, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.TTL)
	claims := TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies signature and expiry. Every failure mode (malformed,
// expired, wrong signature, wrong algorithm) collapses to ErrInvalidToken;
// callers never learn which check failed.
func (j *JWTMaker) Parse(tokenStr string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return j.Secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Refresh re-issues a token from already-validated claims, extending the
// session without re-entering credentials.
func (j *JWTMaker) Refresh(claims *TokenClaims) (string, time.Time, error) {
	return j.Issue(claims.UserID, claims.Email, claims.Role)
}
