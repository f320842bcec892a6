package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired means the signature checked out but the token is past
	// its expiry. A token presented exactly at expiry is expired: jwt/v5
	// requires exp to be strictly in the future.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers everything else: malformed tokens, bad
	// signatures, wrong signing method.
	ErrTokenInvalid = errors.New("token invalid")
)

// JWTManager mints and verifies HS256 session tokens. The secret is loaded
// once at startup and never rotated within a process lifetime.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

// Mint produces a signed token for the given subject, expiring at now + TTL.
func (m *JWTManager) Mint(subjectID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.ttl)
	claims := &Claims{
		UID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Verify checks the signature and expiry and returns the subject id.
func (m *JWTManager) Verify(tokenStr string) (string, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !tkn.Valid || claims.UID == "" {
		return "", ErrTokenInvalid
	}
	return claims.UID, nil
}
