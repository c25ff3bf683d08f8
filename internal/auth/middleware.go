package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/cms-service/internal/observability"
)

const identityKey = "auth_identity"

// bearerPrefix is matched case-sensitively: "bearer x" or "BEARER x" carry
// no credential for our purposes.
const bearerPrefix = "Bearer "

// ExtractToken pulls the raw token out of an Authorization header value.
// Absent header, wrong scheme, or empty remainder yield ok=false, which is
// not an error: it simply means no credential was supplied.
func ExtractToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	raw := header[len(bearerPrefix):]
	if raw == "" {
		return "", false
	}
	return raw, true
}

// Middleware resolves the caller identity for each request and installs it
// into the request scope. It never aborts a request itself; rejection is
// recorded and the route guards fail closed where authentication is
// required.
type Middleware struct {
	codec        *TokenCodec
	logger       *zap.Logger
	metrics      *observability.Metrics
	skipPrefixes []string
}

// NewMiddleware constructs the identity middleware. skipPrefixes lists
// public path prefixes for which extraction is skipped entirely.
func NewMiddleware(codec *TokenCodec, logger *zap.Logger, metrics *observability.Metrics, skipPrefixes []string) *Middleware {
	return &Middleware{codec: codec, logger: logger, metrics: metrics, skipPrefixes: skipPrefixes}
}

// Authenticate resolves a raw header value into an AuthOutcome at the given
// instant. A panic during verification is converted to OutcomeRejected so a
// malformed credential can never crash request handling.
func (m *Middleware) Authenticate(header string, now time.Time) (outcome AuthOutcome) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("panic during token verification", zap.Any("panic", r))
			outcome = AuthOutcome{Kind: OutcomeRejected, Reason: ErrTokenMalformed}
		}
	}()

	raw, ok := ExtractToken(header)
	if !ok {
		return AuthOutcome{Kind: OutcomeAnonymous}
	}

	claims, err := m.codec.Verify(raw, now)
	if err != nil {
		m.logger.Warn("credential rejected", zap.Error(err))
		return AuthOutcome{Kind: OutcomeRejected, Reason: err}
	}

	return AuthOutcome{Kind: OutcomeAuthenticated, Identity: identityFromClaims(claims)}
}

// Handle is the Fiber handler. The identity slot is cleared before
// resolution so corrupted prior state can never leak into the new outcome,
// and an identity is installed only when verification fully succeeds.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	c.Locals(identityKey, (*Identity)(nil))

	if m.skip(c.Path()) {
		return c.Next()
	}

	outcome := m.Authenticate(c.Get(fiber.HeaderAuthorization), time.Now())
	m.metrics.RecordAuthOutcome(outcome.Kind.String())
	if outcome.Kind == OutcomeAuthenticated {
		c.Locals(identityKey, outcome.Identity)
	}
	return c.Next()
}

func (m *Middleware) skip(path string) bool {
	for _, prefix := range m.skipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// IdentityFromContext retrieves the resolved identity for this request.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
