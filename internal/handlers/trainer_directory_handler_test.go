package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/hvpham-yorku/group2-fitiva/internal/logger"
	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/hvpham-yorku/group2-fitiva/internal/repository"
	"github.com/jackc/pgx/v5"
)

type stubTrainerDirectory struct {
	trainers   []models.TrainerSummary
	total      int
	listFilter repository.TrainerListFilter
	listCalls  int
	detail     *models.TrainerSummary
	detailErr  error
}

func (s *stubTrainerDirectory) List(_ context.Context, filter repository.TrainerListFilter) ([]models.TrainerSummary, int, error) {
	s.listCalls++
	s.listFilter = filter
	return s.trainers, s.total, nil
}

func (s *stubTrainerDirectory) GetSummaryByUserID(_ context.Context, _ int64) (*models.TrainerSummary, error) {
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	return s.detail, nil
}

type stubTrainerPlans struct {
	plans []models.WorkoutPlan
}

func (s *stubTrainerPlans) ListPublishedByTrainerID(_ context.Context, _ int64) ([]models.WorkoutPlan, error) {
	return s.plans, nil
}

type stubProfileReader struct {
	profile *models.UserProfile
	err     error
}

func (s *stubProfileReader) GetByUserID(_ context.Context, _ int64) (*models.UserProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

type stubRecommender struct {
	plans []models.ScoredPlan
	limit int
}

func (s *stubRecommender) RecommendPlans(_ context.Context, _ *models.UserProfile, limit int) ([]models.ScoredPlan, error) {
	s.limit = limit
	return s.plans, nil
}

func TestListTrainersReturnsPaginationAndFilter(t *testing.T) {
	directory := &stubTrainerDirectory{
		trainers: []models.TrainerSummary{{ID: 91, Name: "Coach Ana", Specialties: []string{"cardio"}, PublishedPlans: 2}},
		total:    11,
	}
	handler := NewDiscoveryHandler(directory, &stubTrainerPlans{}, &stubProfileReader{}, &stubRecommender{}, logger.Discard())

	app := fiber.New()
	app.Get("/api/trainers", handler.ListTrainers)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/trainers?specialty=Cardio&page=2&limit=5", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Trainers   []models.TrainerSummary `json:"trainers"`
		Pagination models.PaginationMeta   `json:"pagination"`
	}
	decodeBody(t, resp, &body)

	if directory.listFilter.Specialty != "cardio" || directory.listFilter.Offset != 5 || directory.listFilter.Limit != 5 {
		t.Fatalf("unexpected filter: %+v", directory.listFilter)
	}
	if len(body.Trainers) != 1 || body.Trainers[0].Name != "Coach Ana" {
		t.Fatalf("unexpected trainers: %+v", body.Trainers)
	}
	if body.Pagination.Total != 11 || body.Pagination.TotalPages != 3 || body.Pagination.Page != 2 {
		t.Fatalf("unexpected pagination: %+v", body.Pagination)
	}
}

func TestListTrainersRejectsUnknownSpecialty(t *testing.T) {
	directory := &stubTrainerDirectory{}
	handler := NewDiscoveryHandler(directory, &stubTrainerPlans{}, &stubProfileReader{}, &stubRecommender{}, logger.Discard())

	app := fiber.New()
	app.Get("/api/trainers", handler.ListTrainers)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/trainers?specialty=yoga", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if directory.listCalls != 0 {
		t.Fatal("repository should not be queried")
	}
}

func TestListTrainersClampsLimit(t *testing.T) {
	directory := &stubTrainerDirectory{}
	handler := NewDiscoveryHandler(directory, &stubTrainerPlans{}, &stubProfileReader{}, &stubRecommender{}, logger.Discard())

	app := fiber.New()
	app.Get("/api/trainers", handler.ListTrainers)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/trainers?limit=500&page=-1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if directory.listFilter.Limit != maxPageLimit || directory.listFilter.Offset != 0 {
		t.Fatalf("unexpected filter: %+v", directory.listFilter)
	}
}

func TestListTrainersCapsHugePage(t *testing.T) {
	directory := &stubTrainerDirectory{total: 3}
	handler := NewDiscoveryHandler(directory, &stubTrainerPlans{}, &stubProfileReader{}, &stubRecommender{}, logger.Discard())

	app := fiber.New()
	app.Get("/api/trainers", handler.ListTrainers)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/trainers?page=9223372036854775807&limit=2", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Pagination models.PaginationMeta `json:"pagination"`
	}
	decodeBody(t, resp, &body)
	if directory.listFilter.Offset < 0 || directory.listFilter.Offset != (maxPage-1)*2 {
		t.Fatalf("unexpected offset %d", directory.listFilter.Offset)
	}
	if body.Pagination.Page != maxPage {
		t.Fatalf("expected page capped at %d, got %d", maxPage, body.Pagination.Page)
	}
}

func TestGetTrainerIncludesPublishedPlans(t *testing.T) {
	directory := &stubTrainerDirectory{detail: &models.TrainerSummary{ID: 55, Name: "Coach Detail"}}
	plans := &stubTrainerPlans{plans: []models.WorkoutPlan{{ID: 1, Name: "Mobility", IsPublished: true}}}
	handler := NewDiscoveryHandler(directory, plans, &stubProfileReader{}, &stubRecommender{}, logger.Discard())

	app := fiber.New()
	app.Get("/api/trainers/:id", handler.GetTrainer)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/trainers/55", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body models.TrainerDetail
	decodeBody(t, resp, &body)
	if body.ID != 55 || len(body.Plans) != 1 || body.Plans[0].Name != "Mobility" {
		t.Fatalf("unexpected trainer detail: %+v", body)
	}
}

func TestGetTrainerReturnsNotFound(t *testing.T) {
	directory := &stubTrainerDirectory{detailErr: pgx.ErrNoRows}
	handler := NewDiscoveryHandler(directory, &stubTrainerPlans{}, &stubProfileReader{}, &stubRecommender{}, logger.Discard())

	app := fiber.New()
	app.Get("/api/trainers/:id", handler.GetTrainer)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/trainers/404", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestRecommendPlansUsesProfileAndLimit(t *testing.T) {
	age := 30
	recommender := &stubRecommender{plans: []models.ScoredPlan{{
		WorkoutPlan: models.WorkoutPlan{ID: 4, Name: "Cardio Base"},
		MatchScore:  70,
	}}}
	profiles := &stubProfileReader{profile: &models.UserProfile{Age: &age, FitnessFocus: "cardio"}}
	handler := NewDiscoveryHandler(&stubTrainerDirectory{}, &stubTrainerPlans{}, profiles, recommender, logger.Discard())

	app := fiber.New()
	app.Use(asUser(testMember))
	app.Get("/api/recommendations", handler.RecommendPlans)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/recommendations?limit=3", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var plans []models.ScoredPlan
	decodeBody(t, resp, &plans)
	if recommender.limit != 3 {
		t.Fatalf("expected limit 3, got %d", recommender.limit)
	}
	if len(plans) != 1 || plans[0].MatchScore != 70 {
		t.Fatalf("unexpected plans: %+v", plans)
	}
}

func TestRecommendPlansWithoutProfile(t *testing.T) {
	handler := NewDiscoveryHandler(
		&stubTrainerDirectory{},
		&stubTrainerPlans{},
		&stubProfileReader{err: pgx.ErrNoRows},
		&stubRecommender{},
		logger.Discard(),
	)

	app := fiber.New()
	app.Use(asUser(testMember))
	app.Get("/api/recommendations", handler.RecommendPlans)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/recommendations", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if got := detailOf(t, resp); got != "Fitness profile not found." {
		t.Fatalf("unexpected detail %q", got)
	}
}
