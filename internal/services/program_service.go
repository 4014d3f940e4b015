package services

import (
	"context"

	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/hvpham-yorku/group2-fitiva/internal/repository"
	"github.com/sirupsen/logrus"
)

type workoutPlanStore interface {
	Create(ctx context.Context, input repository.CreateWorkoutPlanInput) (*models.WorkoutPlan, error)
	ListPublished(ctx context.Context) ([]models.WorkoutPlan, error)
	ListByTrainerID(ctx context.Context, trainerID int64) ([]models.WorkoutPlan, error)
	GetOwned(ctx context.Context, planID, trainerID int64) (*models.WorkoutPlan, error)
	UpdateOwned(ctx context.Context, planID, trainerID int64, input repository.UpdateWorkoutPlanInput) (*models.WorkoutPlan, error)
	SetPublished(ctx context.Context, planID, trainerID int64, published *bool) (*models.WorkoutPlan, error)
	DeleteOwned(ctx context.Context, planID, trainerID int64) error
}

// ProgramService manages workout plans. Every management call is scoped to
// the calling trainer; plans owned by someone else surface as pgx.ErrNoRows.
type ProgramService struct {
	planRepo workoutPlanStore
	log      logrus.FieldLogger
}

func NewProgramService(planRepo workoutPlanStore, log logrus.FieldLogger) *ProgramService {
	return &ProgramService{planRepo: planRepo, log: log}
}

func (s *ProgramService) ListPublished(ctx context.Context) ([]models.WorkoutPlan, error) {
	return s.planRepo.ListPublished(ctx)
}

func (s *ProgramService) ListMine(ctx context.Context, trainer *models.User) ([]models.WorkoutPlan, error) {
	if err := requireTrainer(trainer); err != nil {
		return nil, err
	}
	return s.planRepo.ListByTrainerID(ctx, trainer.ID)
}

func (s *ProgramService) CreatePlan(ctx context.Context, trainer *models.User, fields PlanFields) (*models.WorkoutPlan, error) {
	if err := requireTrainer(trainer); err != nil {
		return nil, err
	}

	errs := FieldErrors{}
	valid := validatePlanFields(fields, true, errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.Create(ctx, repository.CreateWorkoutPlanInput{
		TrainerID:       trainer.ID,
		Name:            *valid.Name,
		Description:     stringOr(valid.Description, ""),
		Focus:           *valid.Focus,
		Difficulty:      *valid.Difficulty,
		WeeklyFrequency: *valid.WeeklyFrequency,
		SessionLength:   *valid.SessionLength,
		IsSubscription:  boolOr(valid.IsSubscription),
		IsPublished:     boolOr(valid.IsPublished),
	})
	if err != nil {
		return nil, err
	}

	s.logPlan(plan, "workout plan created")
	return plan, nil
}

func (s *ProgramService) GetPlan(ctx context.Context, trainer *models.User, planID int64) (*models.WorkoutPlan, error) {
	if err := requireTrainer(trainer); err != nil {
		return nil, err
	}
	return s.planRepo.GetOwned(ctx, planID, trainer.ID)
}

// UpdatePlan replaces (partial false) or patches (partial true) a plan.
// Ownership is resolved before the body is validated.
func (s *ProgramService) UpdatePlan(
	ctx context.Context,
	trainer *models.User,
	planID int64,
	fields PlanFields,
	partial bool,
) (*models.WorkoutPlan, error) {
	if err := requireTrainer(trainer); err != nil {
		return nil, err
	}
	if _, err := s.planRepo.GetOwned(ctx, planID, trainer.ID); err != nil {
		return nil, err
	}

	errs := FieldErrors{}
	valid := validatePlanFields(fields, !partial, errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.UpdateOwned(ctx, planID, trainer.ID, valid)
	if err != nil {
		return nil, err
	}

	s.logPlan(plan, "workout plan updated")
	return plan, nil
}

// SetPublished applies an explicit is_published value, or toggles the
// current one when the field is absent. An explicit null unpublishes.
func (s *ProgramService) SetPublished(
	ctx context.Context,
	trainer *models.User,
	planID int64,
	published models.Optional[bool],
) (*models.WorkoutPlan, error) {
	if err := requireTrainer(trainer); err != nil {
		return nil, err
	}

	if published.Null {
		published = models.Some(false)
	}

	errs := FieldErrors{}
	value := optionalBool(errs, "is_published", published)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.SetPublished(ctx, planID, trainer.ID, value)
	if err != nil {
		return nil, err
	}

	s.logPlan(plan, "workout plan publish state changed")
	return plan, nil
}

func (s *ProgramService) DeletePlan(ctx context.Context, trainer *models.User, planID int64) error {
	if err := requireTrainer(trainer); err != nil {
		return err
	}
	if err := s.planRepo.DeleteOwned(ctx, planID, trainer.ID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"plan_id": planID, "trainer_id": trainer.ID}).Info("workout plan deleted")
	return nil
}

func (s *ProgramService) logPlan(plan *models.WorkoutPlan, msg string) {
	s.log.WithFields(logrus.Fields{
		"plan_id":      plan.ID,
		"trainer_id":   plan.TrainerID,
		"is_published": plan.IsPublished,
	}).Info(msg)
}

func requireTrainer(user *models.User) error {
	if user == nil || !user.IsTrainer {
		return ErrNotTrainer
	}
	return nil
}
