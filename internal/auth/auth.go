// Package auth checks the admin credential. The static passphrase is a placeholder
// for a real identity provider behind the same Authenticator interface.
package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var ErrDenied = errors.New("access denied")

// Session is the result of a successful authentication
type Session struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (Session, error)
}

// StaticPassphrase accepts one shared secret, either as a bcrypt hash or in plain text
type StaticPassphrase struct {
	hash  []byte
	plain []byte
	ttl   time.Duration
}

func NewStaticPassphrase(plain, hash string, ttl time.Duration) (*StaticPassphrase, error) {
	if plain == "" && hash == "" {
		return nil, errors.New("admin passphrase is not configured")
	}
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, errors.Wrap(err, "admin passphrase hash")
		}
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &StaticPassphrase{hash: []byte(hash), plain: []byte(plain), ttl: ttl}, nil
}

func (a *StaticPassphrase) Authenticate(ctx context.Context, credential string) (Session, error) {
	if credential == "" {
		return Session{}, ErrDenied
	}
	var ok bool
	if len(a.hash) > 0 {
		ok = bcrypt.CompareHashAndPassword(a.hash, []byte(credential)) == nil
	} else {
		ok = subtle.ConstantTimeCompare(a.plain, []byte(credential)) == 1
	}
	if !ok {
		return Session{}, ErrDenied
	}
	now := time.Now()
	return Session{Subject: "admin", IssuedAt: now, ExpiresAt: now.Add(a.ttl)}, nil
}

// HashPassphrase returns the bcrypt hash stored in admin.passphrase_hash
func HashPassphrase(passphrase string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Claims of the admin bearer token
type Claims struct {
	jwt.RegisteredClaims
}

// IssueToken signs s with secret (HS256)
func IssueToken(s Session, secret string) (string, error) {
	claims := Claims{jwt.RegisteredClaims{
		Subject:   s.Subject,
		IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies a token produced by IssueToken
func ParseToken(token, secret string) (Session, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Session{}, errors.Wrap(ErrDenied, err.Error())
	}
	s := Session{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}
