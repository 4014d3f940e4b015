package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/hvpham-yorku/group2-fitiva/internal/session"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

type SessionReader interface {
	Get(ctx context.Context, sessionID string) (int64, error)
}

type UserLoader interface {
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

// SessionRequired resolves the sessionid cookie to an account and stores it
// in c.Locals under "user", "user_id" and "session_id".
func SessionRequired(sessions SessionReader, users UserLoader, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(session.CookieName)
		if sessionID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "Authentication credentials were not provided.",
			})
		}

		userID, err := sessions.Get(c.Context(), sessionID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return sessionInvalid(c)
			}
			log.WithError(err).Error("session lookup failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"detail": "A server error occurred.",
			})
		}

		user, err := users.GetUser(c.Context(), userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return sessionInvalid(c)
			}
			log.WithError(err).WithField("user_id", userID).Error("session user lookup failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"detail": "A server error occurred.",
			})
		}

		c.Locals("user", user)
		c.Locals("user_id", user.ID)
		c.Locals("session_id", sessionID)

		return c.Next()
	}
}

func sessionInvalid(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": "Session expired or invalid.",
	})
}
