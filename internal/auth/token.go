package auth // package auth provides password hashing and session token helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the identity a valid session token resolves to. The role is
// the one the subject had when the token was issued; later role changes do
// not reach tokens already in circulation.
type Principal struct {
	UserID uint64
	Email  string
	Role   string
}

// SessionToken bundles a signed JWT with its expiry so handlers can echo the
// expiration back to clients without re-parsing the token.
type SessionToken struct {
	Token string
	Exp   time.Time
}

// ErrInvalidToken is returned by ParseSessionToken for any token that fails
// signature, structure or expiry checks. Callers treat all of those the same
// way (401), so no finer distinction is exposed.
var ErrInvalidToken = errors.New("invalid session token")

// NewSessionToken builds and signs an HS256 JWT for a user. The claims carry
// the subject id, email and role plus the standard exp/iat pair. ttlHours
// controls the token lifetime (24 in production).
func NewSessionToken(secret string, userID uint64, email, role string, ttlHours int) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken validates raw against secret and returns the embedded
// principal. Only HMAC-signed tokens are accepted; expiry is enforced by the
// jwt library during Parse.
func ParseSessionToken(secret, raw string) (Principal, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Principal{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64) // numeric claims decode as float64
	if !ok {
		return Principal{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		return Principal{}, ErrInvalidToken
	}
	return Principal{UserID: uint64(sub), Email: email, Role: role}, nil
}
