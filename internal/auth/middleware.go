package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/zayanservices/crm-service/internal/domain"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the resolved caller identity.
type Principal struct {
	Email string
	Role  domain.UserRole
}

// IdentityMiddleware resolves bearer tokens into a Principal. Resolution is
// best-effort: requests without a valid token proceed anonymously, and
// mutations stamp the sentinel actor instead. Routes that require an
// identity (the customer portal) enforce it with RequireIdentity.
type IdentityMiddleware struct {
	tokens *TokenManager
}

// NewIdentityMiddleware constructs middleware.
func NewIdentityMiddleware(tokens *TokenManager) *IdentityMiddleware {
	return &IdentityMiddleware{tokens: tokens}
}

// Handle attaches a Principal to the request when a valid token is present.
func (m *IdentityMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Next()
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil || claims.Email == "" {
		return c.Next()
	}

	c.Locals(principalKey, &Principal{Email: claims.Email, Role: claims.Role})
	return c.Next()
}

// RequireIdentity rejects requests that resolved no principal.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("identity required")
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the resolved identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// ActorEmail returns the identity to stamp on audit records, falling back to
// the sentinel when the caller is anonymous.
func ActorEmail(c *fiber.Ctx) string {
	if principal, ok := PrincipalFromContext(c); ok && principal.Email != "" {
		return principal.Email
	}
	return domain.UnknownActor
}
