package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/hvpham-yorku/group2-fitiva/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
	// maxPage keeps (page-1)*limit well inside Postgres' OFFSET range.
	maxPage = 100000
)

type pageRequest struct {
	page  int
	limit int
}

func parsePage(c *fiber.Ctx) pageRequest {
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	page := parsePositiveInt(c.Query("page"), 1)
	if page > maxPage {
		page = maxPage
	}
	return pageRequest{page: page, limit: limit}
}

func (p pageRequest) offset() int {
	return (p.page - 1) * p.limit
}

func (p pageRequest) meta(total int) models.PaginationMeta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.limit - 1) / p.limit
	}
	return models.PaginationMeta{
		Page:       p.page,
		Limit:      p.limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

type trainerDirectoryRepository interface {
	List(ctx context.Context, filter repository.TrainerListFilter) ([]models.TrainerSummary, int, error)
	GetSummaryByUserID(ctx context.Context, userID int64) (*models.TrainerSummary, error)
}

type trainerPlanRepository interface {
	ListPublishedByTrainerID(ctx context.Context, trainerID int64) ([]models.WorkoutPlan, error)
}

type userProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
}

type planRecommender interface {
	RecommendPlans(ctx context.Context, profile *models.UserProfile, limit int) ([]models.ScoredPlan, error)
}

// DiscoveryHandler serves the public trainer directory and the per-account
// plan recommendations.
type DiscoveryHandler struct {
	trainerRepo     trainerDirectoryRepository
	planRepo        trainerPlanRepository
	userProfileRepo userProfileReader
	recommender     planRecommender
	log             logrus.FieldLogger
}

func NewDiscoveryHandler(
	trainerRepo trainerDirectoryRepository,
	planRepo trainerPlanRepository,
	userProfileRepo userProfileReader,
	recommender planRecommender,
	log logrus.FieldLogger,
) *DiscoveryHandler {
	return &DiscoveryHandler{
		trainerRepo:     trainerRepo,
		planRepo:        planRepo,
		userProfileRepo: userProfileRepo,
		recommender:     recommender,
		log:             log,
	}
}

func (h *DiscoveryHandler) ListTrainers(c *fiber.Ctx) error {
	page := parsePage(c)

	specialty := strings.ToLower(strings.TrimSpace(c.Query("specialty")))
	if specialty != "" && !repository.IsKnownSpecialty(specialty) {
		return respondDetail(c, fiber.StatusBadRequest,
			"Invalid specialty. Choose from: strength, cardio, flexibility, sports, rehabilitation")
	}

	trainers, total, err := h.trainerRepo.List(c.Context(), repository.TrainerListFilter{
		Specialty: specialty,
		Offset:    page.offset(),
		Limit:     page.limit,
	})
	if err != nil {
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}

	return c.JSON(fiber.Map{
		"trainers":   trainers,
		"pagination": page.meta(total),
	})
}

func (h *DiscoveryHandler) GetTrainer(c *fiber.Ctx) error {
	trainerID, ok := parsePathID(c)
	if !ok {
		return respondDetail(c, fiber.StatusNotFound, msgNotFound)
	}

	summary, err := h.trainerRepo.GetSummaryByUserID(c.Context(), trainerID)
	if err != nil {
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}

	plans, err := h.planRepo.ListPublishedByTrainerID(c.Context(), trainerID)
	if err != nil {
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}

	return c.JSON(models.TrainerDetail{TrainerSummary: *summary, Plans: plans})
}

func (h *DiscoveryHandler) RecommendPlans(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	limit := parsePositiveInt(c.Query("limit"), 0)

	profile, err := h.userProfileRepo.GetByUserID(c.Context(), user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondDetail(c, fiber.StatusNotFound, "Fitness profile not found.")
		}
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}

	plans, err := h.recommender.RecommendPlans(c.Context(), profile, limit)
	if err != nil {
		return mapServiceError(c, h.log, err, msgTrainersOnly)
	}

	return c.JSON(plans)
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
