package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/hvpham-yorku/group2-fitiva/internal/services"
	"github.com/sirupsen/logrus"
)

type profileService interface {
	GetUserProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdateUserProfile(ctx context.Context, userID int64, fields services.ProfileFields) (*models.UserProfile, error)
	CreateUserProfile(ctx context.Context, userID int64, fields services.ProfileFields) (*models.UserProfile, error)
	GetTrainerProfile(ctx context.Context, user *models.User) (*models.TrainerProfile, error)
	UpdateTrainerProfile(ctx context.Context, user *models.User, fields services.TrainerFields) (*models.TrainerProfile, error)
}

type ProfileHandler struct {
	service profileService
	log     logrus.FieldLogger
}

func NewProfileHandler(service profileService, log logrus.FieldLogger) *ProfileHandler {
	return &ProfileHandler{service: service, log: log}
}

func (h *ProfileHandler) GetMyProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	profile, err := h.service.GetUserProfile(c.Context(), user.ID)
	if err != nil {
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}

	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateMyProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	var req services.ProfileFields
	if err := parseBody(c, &req); err != nil {
		return respondDetail(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	profile, err := h.service.UpdateUserProfile(c.Context(), user.ID, req)
	if err != nil {
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}

	return c.JSON(profile)
}

func (h *ProfileHandler) CreateMyProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	var req services.ProfileFields
	if err := parseBody(c, &req); err != nil {
		return respondDetail(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	profile, err := h.service.CreateUserProfile(c.Context(), user.ID, req)
	if err != nil {
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (h *ProfileHandler) GetTrainerProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	profile, err := h.service.GetTrainerProfile(c.Context(), user)
	if err != nil {
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}

	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateTrainerProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondUnauthenticated(c)
	}
	if !user.IsTrainer {
		return respondDetail(c, fiber.StatusForbidden, msgTrainersOnly)
	}

	var req services.TrainerFields
	if err := parseBody(c, &req); err != nil {
		return respondDetail(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	profile, err := h.service.UpdateTrainerProfile(c.Context(), user, req)
	if err != nil {
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}

	return c.JSON(profile)
}
