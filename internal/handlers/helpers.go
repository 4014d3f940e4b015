package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/hvpham-yorku/group2-fitiva/internal/services"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

const (
	msgNotFound         = "Not found."
	msgInvalidBody      = "Invalid request body."
	msgServerError      = "A server error occurred."
	msgNotAuthenticated = "Authentication credentials were not provided."
	msgTrainersOnly     = "Only trainers can access this endpoint."
	msgProfileExists    = "Profile already exists for this account."
)

// currentUser returns the account loaded by the session middleware.
func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("user").(*models.User)
	return user, ok && user != nil
}

// parseBody decodes a JSON body. An empty body decodes as an empty object.
func parseBody(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(dst)
}

func parsePathID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func respondDetail(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}

func respondFieldErrors(c *fiber.Ctx, errs services.FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
}

func respondUnauthenticated(c *fiber.Ctx) error {
	return respondDetail(c, fiber.StatusUnauthorized, msgNotAuthenticated)
}

// mapServiceError converts service and repository errors into responses.
// forbidden is the detail returned when the caller is not a trainer.
func mapServiceError(c *fiber.Ctx, log logrus.FieldLogger, err error, forbidden string) error {
	var fieldErrs services.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		return respondFieldErrors(c, fieldErrs)
	case errors.Is(err, services.ErrProfileExists):
		return respondFieldErrors(c, services.FieldErrors{"profile": msgProfileExists})
	case errors.Is(err, services.ErrNotTrainer), errors.Is(err, services.ErrForbidden):
		return respondDetail(c, fiber.StatusForbidden, forbidden)
	case errors.Is(err, pgx.ErrNoRows):
		return respondDetail(c, fiber.StatusNotFound, msgNotFound)
	default:
		entry := log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		})
		if user, ok := currentUser(c); ok {
			entry = entry.WithField("user_id", user.ID)
		}
		entry.Error("request failed")
		return respondDetail(c, fiber.StatusInternalServerError, msgServerError)
	}
}
