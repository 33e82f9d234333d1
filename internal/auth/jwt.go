package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/drivedeal/drivedeal-backend/internal/models"
)

// Identity is the authenticated caller, resolved once per request from the
// credential carrier and reused by every downstream check.
type Identity struct {
	UserID   int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	IsAdmin  bool    `json:"is_admin"`
}

type Claims struct {
	UserID   int64   `json:"uid"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	IsAdmin  bool    `json:"adm"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// TTL is the lifetime of issued tokens, also used for the cookie max-age.
func (tm *TokenManager) TTL() time.Duration { return tm.ttl }

// Generate signs an HS256 token carrying the user's identity.
func (tm *TokenManager) Generate(u models.User) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(tm.ttl)
	claims := Claims{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		IsAdmin:  u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// Parse validates a token and returns the identity it carries.
func (tm *TokenManager) Parse(tokenStr string) (Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithIssuer(tm.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		Phone:    claims.Phone,
		IsAdmin:  claims.IsAdmin,
	}, nil
}
