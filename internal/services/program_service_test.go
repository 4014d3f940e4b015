package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hvpham-yorku/group2-fitiva/internal/logger"
	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/hvpham-yorku/group2-fitiva/internal/repository"
	"github.com/jackc/pgx/v5"
)

type stubPlanRepo struct {
	createResult  *models.WorkoutPlan
	createErr     error
	getResult     *models.WorkoutPlan
	getErr        error
	updateResult  *models.WorkoutPlan
	publishResult *models.WorkoutPlan
	deleteErr     error

	lastCreate    repository.CreateWorkoutPlanInput
	lastUpdate    repository.UpdateWorkoutPlanInput
	lastPublished *bool
	lastTrainerID int64
	updateCalls   int
}

func (r *stubPlanRepo) Create(_ context.Context, input repository.CreateWorkoutPlanInput) (*models.WorkoutPlan, error) {
	r.lastCreate = input
	return r.createResult, r.createErr
}

func (r *stubPlanRepo) ListPublished(_ context.Context) ([]models.WorkoutPlan, error) {
	return nil, nil
}

func (r *stubPlanRepo) ListByTrainerID(_ context.Context, trainerID int64) ([]models.WorkoutPlan, error) {
	r.lastTrainerID = trainerID
	return nil, nil
}

func (r *stubPlanRepo) GetOwned(_ context.Context, _ int64, trainerID int64) (*models.WorkoutPlan, error) {
	r.lastTrainerID = trainerID
	return r.getResult, r.getErr
}

func (r *stubPlanRepo) UpdateOwned(_ context.Context, _ int64, _ int64, input repository.UpdateWorkoutPlanInput) (*models.WorkoutPlan, error) {
	r.updateCalls++
	r.lastUpdate = input
	return r.updateResult, nil
}

func (r *stubPlanRepo) SetPublished(_ context.Context, _ int64, _ int64, published *bool) (*models.WorkoutPlan, error) {
	r.lastPublished = published
	return r.publishResult, nil
}

func (r *stubPlanRepo) DeleteOwned(_ context.Context, _ int64, trainerID int64) error {
	r.lastTrainerID = trainerID
	return r.deleteErr
}

var (
	testTrainer = &models.User{ID: 7, Username: "coach", IsTrainer: true}
	testMember  = &models.User{ID: 42, Username: "member"}
)

func validPlanFields() PlanFields {
	return PlanFields{
		Name:            models.Some("  Starter Strength "),
		Focus:           models.Some(models.FocusStrength),
		Difficulty:      models.Some(models.ExperienceBeginner),
		WeeklyFrequency: models.Some(3),
		SessionLength:   models.Some(45),
	}
}

func TestProgramServiceCreatePlanAppliesDefaults(t *testing.T) {
	repo := &stubPlanRepo{createResult: &models.WorkoutPlan{ID: 1, TrainerID: 7}}
	service := NewProgramService(repo, logger.Discard())

	plan, err := service.CreatePlan(context.Background(), testTrainer, validPlanFields())
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if plan.ID != 1 {
		t.Fatalf("expected plan 1, got %d", plan.ID)
	}
	if repo.lastCreate.TrainerID != 7 {
		t.Fatalf("expected trainer 7, got %d", repo.lastCreate.TrainerID)
	}
	if repo.lastCreate.Name != "Starter Strength" {
		t.Fatalf("expected trimmed name, got %q", repo.lastCreate.Name)
	}
	if repo.lastCreate.Description != "" || repo.lastCreate.IsPublished || repo.lastCreate.IsSubscription {
		t.Fatalf("expected zero defaults, got %+v", repo.lastCreate)
	}
}

func TestProgramServiceCreatePlanCollectsFieldErrors(t *testing.T) {
	service := NewProgramService(&stubPlanRepo{}, logger.Discard())

	_, err := service.CreatePlan(context.Background(), testTrainer, PlanFields{
		Name:            models.Some("   "),
		Focus:           models.Some("yoga"),
		WeeklyFrequency: models.Some(9),
		SessionLength:   models.Some(0),
	})

	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	want := map[string]string{
		"name":             "This field may not be blank.",
		"focus":            "Invalid focus.",
		"difficulty":       "This field is required.",
		"weekly_frequency": "Weekly frequency must be between 1 and 7.",
		"session_length":   "Session length must be between 1 and 300 minutes.",
	}
	for field, msg := range want {
		if fieldErrs[field] != msg {
			t.Fatalf("expected %s error %q, got %q", field, msg, fieldErrs[field])
		}
	}
}

func TestProgramServiceRejectsNonTrainers(t *testing.T) {
	service := NewProgramService(&stubPlanRepo{}, logger.Discard())

	if _, err := service.CreatePlan(context.Background(), testMember, validPlanFields()); !errors.Is(err, ErrNotTrainer) {
		t.Fatalf("expected ErrNotTrainer on create, got %v", err)
	}
	if _, err := service.ListMine(context.Background(), testMember); !errors.Is(err, ErrNotTrainer) {
		t.Fatalf("expected ErrNotTrainer on list, got %v", err)
	}
	if err := service.DeletePlan(context.Background(), nil, 1); !errors.Is(err, ErrNotTrainer) {
		t.Fatalf("expected ErrNotTrainer on delete, got %v", err)
	}
}

func TestProgramServiceUpdatePlanChecksOwnershipBeforeValidation(t *testing.T) {
	repo := &stubPlanRepo{getErr: pgx.ErrNoRows}
	service := NewProgramService(repo, logger.Discard())

	_, err := service.UpdatePlan(context.Background(), testTrainer, 5, PlanFields{Name: models.Some("")}, true)
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatal("expected no update for a foreign plan")
	}
}

func TestProgramServicePutRequiresCoreFields(t *testing.T) {
	repo := &stubPlanRepo{getResult: &models.WorkoutPlan{ID: 5, TrainerID: 7}}
	service := NewProgramService(repo, logger.Discard())

	_, err := service.UpdatePlan(context.Background(), testTrainer, 5, PlanFields{Name: models.Some("Renamed")}, false)
	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if fieldErrs["focus"] != "This field is required." {
		t.Fatalf("expected focus to be required, got %v", fieldErrs)
	}
	if fieldErrs.Has("name") {
		t.Fatalf("expected name to validate, got %v", fieldErrs)
	}
}

func TestProgramServicePatchUpdatesOnlySuppliedFields(t *testing.T) {
	repo := &stubPlanRepo{
		getResult:    &models.WorkoutPlan{ID: 5, TrainerID: 7},
		updateResult: &models.WorkoutPlan{ID: 5, TrainerID: 7, SessionLength: 90},
	}
	service := NewProgramService(repo, logger.Discard())

	plan, err := service.UpdatePlan(context.Background(), testTrainer, 5, PlanFields{SessionLength: models.Some(90)}, true)
	if err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}
	if plan.SessionLength != 90 {
		t.Fatalf("expected session length 90, got %d", plan.SessionLength)
	}
	if repo.lastUpdate.SessionLength == nil || *repo.lastUpdate.SessionLength != 90 {
		t.Fatalf("expected session length forwarded, got %+v", repo.lastUpdate.SessionLength)
	}
	if repo.lastUpdate.Name != nil || repo.lastUpdate.Focus != nil {
		t.Fatalf("expected untouched fields to stay nil, got %+v", repo.lastUpdate)
	}
}

func TestProgramServiceSetPublished(t *testing.T) {
	repo := &stubPlanRepo{publishResult: &models.WorkoutPlan{ID: 5, TrainerID: 7, IsPublished: true}}
	service := NewProgramService(repo, logger.Discard())

	if _, err := service.SetPublished(context.Background(), testTrainer, 5, models.Optional[bool]{}); err != nil {
		t.Fatalf("SetPublished toggle: %v", err)
	}
	if repo.lastPublished != nil {
		t.Fatalf("expected toggle to pass nil, got %v", *repo.lastPublished)
	}

	if _, err := service.SetPublished(context.Background(), testTrainer, 5, models.Some(false)); err != nil {
		t.Fatalf("SetPublished explicit: %v", err)
	}
	if repo.lastPublished == nil || *repo.lastPublished {
		t.Fatalf("expected explicit false, got %v", repo.lastPublished)
	}

	repo.lastPublished = nil
	if _, err := service.SetPublished(context.Background(), testTrainer, 5, models.Null[bool]()); err != nil {
		t.Fatalf("SetPublished null: %v", err)
	}
	if repo.lastPublished == nil || *repo.lastPublished {
		t.Fatalf("expected null to unpublish, got %v", repo.lastPublished)
	}

	_, err := service.SetPublished(context.Background(), testTrainer, 5, models.Optional[bool]{Set: true, Invalid: true})
	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) || fieldErrs["is_published"] != "Must be a valid boolean." {
		t.Fatalf("expected is_published field error, got %v", err)
	}
}

func TestProgramServiceDeletePlanScopesToTrainer(t *testing.T) {
	repo := &stubPlanRepo{deleteErr: pgx.ErrNoRows}
	service := NewProgramService(repo, logger.Discard())

	err := service.DeletePlan(context.Background(), testTrainer, 5)
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows, got %v", err)
	}
	if repo.lastTrainerID != 7 {
		t.Fatalf("expected lookup scoped to trainer 7, got %d", repo.lastTrainerID)
	}
}
