package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"docmanage/internal/model"
	"docmanage/internal/repository"
	"docmanage/internal/token"
)

// CurrentUserLocalKey is the key under which Auth stores the authenticated
// user in Fiber's context locals.
const CurrentUserLocalKey = "current_user"

// Auth resolves the caller's identity from the Authorization header.
//
// It validates the bearer token, looks up the user by the token's subject,
// and stores the *model.User in context locals. Any failure — missing
// header, bad or expired token, unknown subject — produces a 401 without
// distinguishing the cause.
func Auth(tokens *token.Service, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		claims, err := tokens.Resolve(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Could not validate credentials")
		}

		user, err := users.FindByID(c.UserContext(), claims.Subject)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Could not validate credentials")
		}

		c.Locals(CurrentUserLocalKey, user)
		return c.Next()
	}
}

// AdminOnly gates a route to admin users. It is a pure predicate over the
// identity Auth already resolved; it never re-reads the token.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}
		if !user.IsAdmin() {
			return fiber.NewError(fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user stored by Auth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	if u, ok := c.Locals(CurrentUserLocalKey).(*model.User); ok {
		return u
	}
	return nil
}
