package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// MasterClaims claims of a master session token; Subject is the master id
type MasterClaims struct {
	Email string `json:"email,omitempty"`
	Slug  string `json:"slug,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager выпускает и проверяет токены мастеров (HS256)
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Generate returns a signed token and its expiry
func (m *TokenManager) Generate(masterID int64, email, slug string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := MasterClaims{
		Email: email,
		Slug:  slug,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(masterID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses the token and builds the session it represents
func (m *TokenManager) Validate(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &MasterClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*MasterClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	masterID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || masterID <= 0 {
		return nil, ErrInvalidToken
	}

	return &Session{
		MasterID:  masterID,
		Email:     claims.Email,
		Slug:      claims.Slug,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
