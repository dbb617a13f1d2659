package middleware

import (
	"net/http"
	"strings"

	userDomain "contract-approval/internal/domain/user"
	"contract-approval/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

const claimsKey = "auth.claims"

type TokenParser interface {
	Parse(raw string) (*user.Claims, error)
}

// RequireRoles guards dashboard routes: no or bad token is 401, a valid token
// with a role outside roles is 403.
func RequireRoles(parser TokenParser, roles ...userDomain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if header == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "access denied, no token provided"})
			}
			scheme, token, ok := strings.Cut(header, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "access denied, malformed authorization header"})
			}
			claims, err := parser.Parse(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			allowed := false
			for _, r := range roles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied, insufficient role"})
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

func Claims(c echo.Context) (*user.Claims, bool) {
	cl, ok := c.Get(claimsKey).(*user.Claims)
	return cl, ok
}
