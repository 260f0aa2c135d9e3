package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/akorchagin/taskvault/internal/model"
)

// Claims represents JWT claims with token type and user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	TokenType string    `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC. Access and
// refresh tokens are signed with separate secrets, so presenting a
// token of one kind where the other is expected fails structurally,
// not just on the typ claim.
type JWT struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// NewJWT creates a token manager with per-kind secrets and TTLs.
func NewJWT(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWT {
	return &JWT{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// GenerateAccessToken creates a short-lived access token.
func (j *JWT) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return j.generate(userID, typeAccess, j.accessSecret, j.accessTTL)
}

// GenerateRefreshToken creates a long-lived refresh token. The jti
// makes every token unique even within the same second, so rotation
// always replaces the stored digest with a different one.
func (j *JWT) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return j.generate(userID, typeRefresh, j.refreshSecret, j.refreshTTL)
}

func (j *JWT) generate(userID uuid.UUID, tokenType, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	registered := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	if tokenType == typeRefresh {
		registered.ID = uuid.NewString()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: registered,
		UserID:           userID,
		TokenType:        tokenType,
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return tokenString, nil
}

// ParseAccessToken validates an access token and extracts the user ID.
func (j *JWT) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	return j.parse(tokenString, typeAccess, j.accessSecret)
}

// ParseRefreshToken validates a refresh token and extracts the user ID.
func (j *JWT) ParseRefreshToken(tokenString string) (uuid.UUID, error) {
	return j.parse(tokenString, typeRefresh, j.refreshSecret)
}

// parse maps verification failures to the model sentinels: expiry to
// ErrTokenExpired, a readable typ claim of the other kind to
// ErrTokenKindMismatch, anything else to ErrTokenMalformed.
func (j *JWT) parse(tokenString, tokenType, secret string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, model.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid) && claims.TokenType != "" && claims.TokenType != tokenType:
			// Signed with the other kind's secret: the claims decoded
			// fine but the signature did not check out.
			return uuid.Nil, model.ErrTokenKindMismatch
		default:
			return uuid.Nil, model.ErrTokenMalformed
		}
	}
	if !token.Valid {
		return uuid.Nil, model.ErrTokenMalformed
	}
	if claims.TokenType != tokenType {
		return uuid.Nil, model.ErrTokenKindMismatch
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, model.ErrTokenMalformed
	}
	return claims.UserID, nil
}
