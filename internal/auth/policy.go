package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/cms-service/pkg/util"
)

// HasRole reports whether the identity holds the named role. A nil identity
// holds nothing.
func HasRole(identity *Identity, role string) bool {
	if identity == nil {
		return false
	}
	for _, r := range identity.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsOwnerOrHasRole is the ownership check: true iff the identity is the
// recorded owner of the resource or holds the overriding role. ownerID must
// come from storage, never from client input.
func IsOwnerOrHasRole(identity *Identity, ownerID int64, overridingRole string) bool {
	if identity == nil {
		return false
	}
	return identity.UserID == ownerID || HasRole(identity, overridingRole)
}

// RequireAuthenticated fails closed with UNAUTHORIZED when no identity was
// resolved for the request.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireRole fails closed unless the identity holds at least one of the
// allowed roles: UNAUTHORIZED when anonymous, FORBIDDEN when authenticated
// without the role. The two conditions stay distinct per the error taxonomy.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		for _, role := range allowed {
			if HasRole(identity, role) {
				return c.Next()
			}
		}
		return apperrors.NewForbidden("insufficient role")
	}
}

// ValidateRoleNames checks every role name used by guards and policies
// against the seeded registry. A typo in a role name would otherwise gate a
// route permanently shut, so boot fails instead.
func ValidateRoleNames(registry []string, used ...string) error {
	known := make(map[string]struct{}, len(registry))
	for _, name := range registry {
		known[name] = struct{}{}
	}
	for _, name := range used {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("role %q is not in the role registry", name)
		}
	}
	return nil
}
