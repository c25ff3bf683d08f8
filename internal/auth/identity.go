package auth

import "time"

// Identity is the verified caller for one request. It is rebuilt from the
// token on every request, carried only in request scope, and never mutated.
type Identity struct {
	UserID    int64
	Username  string
	Email     string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// OutcomeKind classifies the result of credential resolution.
type OutcomeKind int

const (
	// OutcomeAnonymous means no credential was supplied. This is a normal
	// value: public routes serve anonymous callers.
	OutcomeAnonymous OutcomeKind = iota
	// OutcomeAuthenticated means a credential was supplied and verified.
	OutcomeAuthenticated
	// OutcomeRejected means a credential was supplied but failed
	// verification. The request continues unauthenticated; route guards
	// decide whether that is fatal.
	OutcomeRejected
)

// String names the outcome kind for logs and metrics.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomeRejected:
		return "rejected"
	default:
		return "anonymous"
	}
}

// AuthOutcome is the sum of the three resolution results. Identity is
// non-nil only for OutcomeAuthenticated; Reason is non-nil only for
// OutcomeRejected.
type AuthOutcome struct {
	Kind     OutcomeKind
	Identity *Identity
	Reason   error
}

func identityFromClaims(claims *Claims) *Identity {
	roles := make([]string, len(claims.Roles))
	copy(roles, claims.Roles)

	id := &Identity{
		UserID:   claims.UserID(),
		Username: claims.Username,
		Email:    claims.Email,
		Roles:    roles,
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id
}
