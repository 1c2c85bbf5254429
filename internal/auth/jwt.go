package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenManager signs and parses the access/refresh token pair. Access
// and refresh tokens use separate secrets so a leaked access secret
// cannot mint refresh tokens.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Type   string `json:"typ"` // "access" | "refresh"
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (tm *TokenManager) GeneratePair(userID, email string) (TokenPair, error) {
	now := time.Now()

	access, err := tm.sign(userID, email, "access", now, tm.accessTTL, tm.accessSecret)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := tm.sign(userID, email, "refresh", now, tm.refreshTTL, tm.refreshSecret)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(tm.accessTTL),
	}, nil
}

func (tm *TokenManager) sign(userID, email, typ string, now time.Time, ttl time.Duration, secret []byte) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseAccess accepts only live access tokens.
func (tm *TokenManager) ParseAccess(tokenStr string) (*Claims, error) {
	claims, err := tm.parse(tokenStr, tm.accessSecret)
	if err != nil || claims.Type != "access" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseRefresh accepts only live refresh tokens.
func (tm *TokenManager) ParseRefresh(tokenStr string) (*Claims, error) {
	claims, err := tm.parse(tokenStr, tm.refreshSecret)
	if err != nil || claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (tm *TokenManager) parse(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
