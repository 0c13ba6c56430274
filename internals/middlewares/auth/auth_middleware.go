package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helper "linksclub_backend/internals/helpers"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool
}

// AuthJWT validates the bearer token (or the access_token cookie as a
// fallback) and stores the claims in locals.
func AuthJWT(opts AuthJWTOpts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := ""
		if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimPrefix(h, "Bearer ")
		}
		if raw == "" && opts.AllowCookieFallback {
			raw = c.Cookies("access_token")
		}
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "missing token")
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(opts.Secret), nil
		})
		if err != nil || !token.Valid {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid token claims")
		}
		if v, ok := claims["sub"].(string); ok {
			c.Locals("user_id", v)
		}
		if v, ok := claims["name"].(string); ok {
			c.Locals("user_name", v)
		}
		if v, ok := claims["role"].(string); ok {
			c.Locals("role", v)
		}
		return c.Next()
	}
}

// RequireAdmin gates routes to the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != "admin" {
			return helper.JsonError(c, fiber.StatusForbidden, "admin role required")
		}
		return c.Next()
	}
}
