package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const tokenIssuer = "studyhub"

// TokenManager issues and verifies the HS256 tokens handed out at login.
type TokenManager struct {
	secret  []byte
	ttl     time.Duration
	log     *zap.Logger
	fetcher UserFetcher
}

type claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// NewTokenManager validates the signing secret and returns a manager.
// A ttl of zero means tokens never expire.
func NewTokenManager(secret string, ttl time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty; provide ≥32 random chars")
	}
	if len(secret) < 32 {
		logger.Warn("jwt secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, log: logger}, nil
}

// SetUserFetcher makes LoadSessionUser reload the principal on each request.
func (tm *TokenManager) SetUserFetcher(f UserFetcher) {
	tm.fetcher = f
}

// Issue signs a token for u.
func (tm *TokenManager) Issue(u SessionUser) (string, error) {
	now := time.Now()
	c := claims{
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  u.ID,
			Issuer:   tokenIssuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if tm.ttl != 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(tm.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(tm.secret)
}

// Parse verifies a token and returns the principal it names.
func (tm *TokenManager) Parse(raw string) (*SessionUser, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}
	if c.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return &SessionUser{
		ID:    c.Subject,
		Name:  c.Name,
		Email: c.Email,
		Role:  c.Role,
	}, nil
}
