package services

import (
	"context"
	"errors"

	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/hvpham-yorku/group2-fitiva/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

type UserProfileStore interface {
	Create(ctx context.Context, input repository.CreateUserProfileInput) (*models.UserProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateUserProfileInput) (*models.UserProfile, error)
}

type TrainerProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.TrainerProfile, error)
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateTrainerProfileInput) (*models.TrainerProfile, error)
}

type ProfileService struct {
	userProfileRepo    UserProfileStore
	trainerProfileRepo TrainerProfileStore
	log                logrus.FieldLogger
}

func NewProfileService(userProfileRepo UserProfileStore, trainerProfileRepo TrainerProfileStore, log logrus.FieldLogger) *ProfileService {
	return &ProfileService{
		userProfileRepo:    userProfileRepo,
		trainerProfileRepo: trainerProfileRepo,
		log:                log,
	}
}

func (s *ProfileService) GetUserProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	return s.userProfileRepo.GetByUserID(ctx, userID)
}

// UpdateUserProfile applies a partial update. Age may be omitted only once
// the stored profile already carries one.
func (s *ProfileService) UpdateUserProfile(ctx context.Context, userID int64, fields ProfileFields) (*models.UserProfile, error) {
	current, err := s.userProfileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	errs := FieldErrors{}
	if fields.Age.Null || (!fields.Age.Set && current.Age == nil) {
		errs.Add("age", msgAgeRequired)
	}
	update := validateProfileFields(fields, errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	profile, err := s.userProfileRepo.UpdatePartial(ctx, userID, update)
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", userID).Info("fitness profile updated")
	return profile, nil
}

// CreateUserProfile creates the caller's profile when none exists yet.
func (s *ProfileService) CreateUserProfile(ctx context.Context, userID int64, fields ProfileFields) (*models.UserProfile, error) {
	_, err := s.userProfileRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		return nil, ErrProfileExists
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, err
	}

	errs := FieldErrors{}
	if !fields.Age.Set || fields.Age.Null {
		errs.Add("age", msgAgeRequired)
	}
	update := validateProfileFields(fields, errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	profile, err := s.userProfileRepo.Create(ctx, repository.CreateUserProfileInput{
		UserID:           userID,
		Age:              update.Age,
		ExperienceLevel:  stringOr(update.ExperienceLevel, models.ExperienceBeginner),
		TrainingLocation: stringOr(update.TrainingLocation, models.LocationHome),
		FitnessFocus:     stringOr(update.FitnessFocus, models.FocusMixed),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode &&
			pgErr.ConstraintName == repository.ProfileUniqueConstraint {
			return nil, ErrProfileExists
		}
		return nil, err
	}

	s.log.WithField("user_id", userID).Info("fitness profile created")
	return profile, nil
}

func (s *ProfileService) GetTrainerProfile(ctx context.Context, user *models.User) (*models.TrainerProfile, error) {
	if err := requireTrainer(user); err != nil {
		return nil, err
	}
	return s.trainerProfileRepo.GetByUserID(ctx, user.ID)
}

func (s *ProfileService) UpdateTrainerProfile(ctx context.Context, user *models.User, fields TrainerFields) (*models.TrainerProfile, error) {
	if err := requireTrainer(user); err != nil {
		return nil, err
	}
	if _, err := s.trainerProfileRepo.GetByUserID(ctx, user.ID); err != nil {
		return nil, err
	}

	errs := FieldErrors{}
	update := validateTrainerFields(fields, errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	profile, err := s.trainerProfileRepo.UpdatePartial(ctx, user.ID, update)
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("trainer profile updated")
	return profile, nil
}
