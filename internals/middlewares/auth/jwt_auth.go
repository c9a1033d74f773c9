package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Locals keys hydrated by AuthJWT.
const (
	LocWorkerID = "worker_id"
	LocRole     = "role"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // read cookie access_token when no Bearer header
}

// AuthJWT verifies a bearer token issued elsewhere and hydrates the
// worker identity locals. Token issuance lives in a separate service.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}

	return func(c *fiber.Ctx) error {
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}
		c.Locals("jwt_claims", claims)

		if sub, ok := claims["sub"].(string); ok {
			if id, err := uuid.Parse(sub); err == nil {
				c.Locals(LocWorkerID, id)
			}
		}
		if role, ok := claims["role"].(string); ok {
			c.Locals(LocRole, role)
		}
		return c.Next()
	}
}

// OnlyRoles rejects callers whose token role is not in the allow list.
func OnlyRoles(message string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocRole).(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, message)
	}
}

// WorkerID pulls the authenticated worker id out of locals.
func WorkerID(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := c.Locals(LocWorkerID).(uuid.UUID); ok && id != uuid.Nil {
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Missing worker identity")
}
