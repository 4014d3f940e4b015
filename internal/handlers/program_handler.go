package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/hvpham-yorku/group2-fitiva/internal/services"
	"github.com/sirupsen/logrus"
)

const (
	msgManagePrograms  = "Only trainers can manage programs."
	msgCreatePrograms  = "Only trainers can create programs."
	msgPublishPrograms = "Only trainers can publish programs."
)

type programApplicationService interface {
	ListPublished(ctx context.Context) ([]models.WorkoutPlan, error)
	ListMine(ctx context.Context, trainer *models.User) ([]models.WorkoutPlan, error)
	CreatePlan(ctx context.Context, trainer *models.User, fields services.PlanFields) (*models.WorkoutPlan, error)
	GetPlan(ctx context.Context, trainer *models.User, planID int64) (*models.WorkoutPlan, error)
	UpdatePlan(
		ctx context.Context,
		trainer *models.User,
		planID int64,
		fields services.PlanFields,
		partial bool,
	) (*models.WorkoutPlan, error)
	SetPublished(
		ctx context.Context,
		trainer *models.User,
		planID int64,
		published models.Optional[bool],
	) (*models.WorkoutPlan, error)
	DeletePlan(ctx context.Context, trainer *models.User, planID int64) error
}

type publishRequest struct {
	IsPublished models.Optional[bool] `json:"is_published"`
}

type ProgramHandler struct {
	service programApplicationService
	log     logrus.FieldLogger
}

func NewProgramHandler(service programApplicationService, log logrus.FieldLogger) *ProgramHandler {
	return &ProgramHandler{service: service, log: log}
}

func (h *ProgramHandler) ListPublished(c *fiber.Ctx) error {
	plans, err := h.service.ListPublished(c.Context())
	if err != nil {
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}
	return c.JSON(plans)
}

func (h *ProgramHandler) ListMine(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	plans, err := h.service.ListMine(c.Context(), user)
	if err != nil {
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}
	return c.JSON(plans)
}

func (h *ProgramHandler) CreatePlan(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondUnauthenticated(c)
	}
	if !user.IsTrainer {
		return respondDetail(c, fiber.StatusForbidden, msgCreatePrograms)
	}

	var req services.PlanFields
	if err := parseBody(c, &req); err != nil {
		return respondDetail(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	plan, err := h.service.CreatePlan(c.Context(), user, req)
	if err != nil {
		return mapServiceError(c, h.log, err, msgCreatePrograms)
	}

	return c.Status(fiber.StatusCreated).JSON(plan)
}

func (h *ProgramHandler) GetPlan(c *fiber.Ctx) error {
	user, planID, err := h.managedPlan(c)
	if user == nil {
		return err
	}

	plan, err := h.service.GetPlan(c.Context(), user, planID)
	if err != nil {
		return mapServiceError(c, h.log, err, msgManagePrograms)
	}
	return c.JSON(plan)
}

// ReplacePlan handles PUT, which requires every core field.
func (h *ProgramHandler) ReplacePlan(c *fiber.Ctx) error {
	return h.updatePlan(c, false)
}

// PatchPlan handles PATCH, which validates only the supplied fields.
func (h *ProgramHandler) PatchPlan(c *fiber.Ctx) error {
	return h.updatePlan(c, true)
}

func (h *ProgramHandler) DeletePlan(c *fiber.Ctx) error {
	user, planID, err := h.managedPlan(c)
	if user == nil {
		return err
	}

	if err := h.service.DeletePlan(c.Context(), user, planID); err != nil {
		return mapServiceError(c, h.log, err, msgManagePrograms)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProgramHandler) PublishPlan(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondUnauthenticated(c)
	}
	if !user.IsTrainer {
		return respondDetail(c, fiber.StatusForbidden, msgPublishPrograms)
	}
	planID, ok := parsePathID(c)
	if !ok {
		return respondDetail(c, fiber.StatusNotFound, msgNotFound)
	}

	var req publishRequest
	if err := parseBody(c, &req); err != nil {
		return respondDetail(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	plan, err := h.service.SetPublished(c.Context(), user, planID, req.IsPublished)
	if err != nil {
		return mapServiceError(c, h.log, err, msgPublishPrograms)
	}
	return c.JSON(plan)
}

func (h *ProgramHandler) updatePlan(c *fiber.Ctx, partial bool) error {
	user, planID, err := h.managedPlan(c)
	if user == nil {
		return err
	}

	var req services.PlanFields
	if err := parseBody(c, &req); err != nil {
		return respondDetail(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	plan, err := h.service.UpdatePlan(c.Context(), user, planID, req, partial)
	if err != nil {
		return mapServiceError(c, h.log, err, msgManagePrograms)
	}
	return c.JSON(plan)
}

// managedPlan resolves the trainer and plan id for the detail endpoints.
// A nil user means the response has already been written.
func (h *ProgramHandler) managedPlan(c *fiber.Ctx) (*models.User, int64, error) {
	user, ok := currentUser(c)
	if !ok {
		return nil, 0, respondUnauthenticated(c)
	}
	if !user.IsTrainer {
		return nil, 0, respondDetail(c, fiber.StatusForbidden, msgManagePrograms)
	}
	planID, ok := parsePathID(c)
	if !ok {
		return nil, 0, respondDetail(c, fiber.StatusNotFound, msgNotFound)
	}
	return user, planID, nil
}
