package domain

// Role names used by route guards and ownership overrides. Roles are
// reference data seeded at startup and never mutated by request traffic.
const (
	RoleAdmin    = "ROLE_ADMIN"
	RoleReporter = "ROLE_REPORTER"
)

// Role is a named permission tier.
type Role struct {
	ID          int64
	Name        string
	Description string
}
