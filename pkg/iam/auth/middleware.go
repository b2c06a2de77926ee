package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nexhire/nexhire/pkg/iam"
	"github.com/nexhire/nexhire/pkg/kernel"
)

// TokenMiddleware autentica peticiones vía JWT (header Authorization o cookie)
// y deja el AuthContext resuelto en los locals de Fiber.
type TokenMiddleware struct {
	tokenService TokenService
}

func NewTokenMiddleware(tokenService TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokenService: tokenService}
}

func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return iam.ErrUnauthorized().WithDetail("reason", "missing token")
		}

		claims, err := m.tokenService.ValidateAccessToken(tokenString)
		if err != nil {
			return err
		}

		userID := claims.UserID
		authContext := &kernel.AuthContext{
			TenantID: claims.TenantID,
			UserID:   &userID,
			Scopes:   claims.Scopes,
		}

		c.Locals("auth", authContext)
		return c.Next()
	}
}

// RequireScope exige que el contexto autenticado tenga el scope dado.
func (m *TokenMiddleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authContext, ok := GetAuthContext(c)
		if !ok {
			return iam.ErrUnauthorized()
		}
		if !authContext.HasScope(scope) {
			return iam.ErrForbidden().WithDetail("required_scope", scope)
		}
		return c.Next()
	}
}

// GetAuthContext obtiene el AuthContext resuelto de la petición.
func GetAuthContext(c *fiber.Ctx) (*kernel.AuthContext, bool) {
	authContext, ok := c.Locals("auth").(*kernel.AuthContext)
	return authContext, ok
}

func extractToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	// Cookie fallback for browser clients.
	return c.Cookies("access_token")
}
