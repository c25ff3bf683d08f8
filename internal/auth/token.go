// Package auth implements the stateless authentication core: JWT issuance
// and verification, per-request identity resolution, and the role/ownership
// policy checks applied by business services.
//
// There is no server-side revocation. Token validity is a function of
// signature and expiry alone; rotating the signing secret is the only way to
// invalidate outstanding tokens before they expire naturally.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/cms-service/internal/domain"
)

// MinSecretBytes mirrors the HS256 key floor enforced at config load; the
// codec refuses shorter secrets as well so it cannot be constructed unsafely
// outside the config path.
const MinSecretBytes = 32

// Token verification rejections. Callers treat all three as
// "unauthenticated"; they stay distinct for logs and diagnostics.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrBadSignature   = errors.New("token signature invalid")
	ErrSecretTooShort = fmt.Errorf("jwt secret shorter than %d bytes", MinSecretBytes)
	ErrRolesEmpty     = errors.New("token requires at least one role")
	ErrSubjectInvalid = errors.New("token subject is not a user id")
	ErrUnexpectedAlg  = errors.New("unexpected signing method")
)

// Claims is the JWT payload: subject id in the registered sub claim plus
// display claims and the role set.
type Claims struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256-signed tokens with an explicit clock,
// so expiry behavior is testable without sleeping.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec. The secret must satisfy the HS256 minimum
// key length and the ttl must be positive.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrSecretTooShort
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL exposes the configured token lifetime.
func (tc *TokenCodec) TTL() time.Duration {
	return tc.ttl
}

// Issue signs a token for the user with issued-at = now and
// expiry = now + ttl. Roles must be non-empty: an authenticated identity
// without roles could never pass a role gate and indicates a caller bug.
func (tc *TokenCodec) Issue(user *domain.User, roles []string, now time.Time) (string, time.Time, error) {
	if len(roles) == 0 {
		return "", time.Time{}, ErrRolesEmpty
	}

	expiresAt := now.Add(tc.ttl)
	claims := &Claims{
		Username: user.Username,
		Email:    user.Email,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses and validates the token at the given instant. The HMAC
// comparison inside the jwt library is constant time. Expiry is strict:
// a token is valid for any now < expiry and rejected at now >= expiry.
func (tc *TokenCodec) Verify(tokenStr string, now time.Time) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrUnexpectedAlg
		}
		return tc.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }), jwt.WithExpirationRequired())
	if err != nil {
		return nil, mapVerifyError(err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if len(claims.Roles) == 0 {
		return nil, ErrTokenMalformed
	}
	if _, err := strconv.ParseInt(claims.Subject, 10, 64); err != nil {
		return nil, ErrSubjectInvalid
	}
	return claims, nil
}

// UserID returns the numeric subject id. Verify has already validated it.
func (c *Claims) UserID() int64 {
	id, _ := strconv.ParseInt(c.Subject, 10, 64)
	return id
}

func mapVerifyError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, ErrUnexpectedAlg):
		return ErrBadSignature
	default:
		return ErrTokenMalformed
	}
}
