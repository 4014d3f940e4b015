package repository

import (
	"context"

	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/jackc/pgx/v5"
)

const userProfileColumns = `id, user_id, age, experience_level, training_location, fitness_focus, created_at, updated_at`

type UserProfileRepository struct {
	db DBTX
}

func NewUserProfileRepository(db DBTX) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

func (r *UserProfileRepository) Create(ctx context.Context, input CreateUserProfileInput) (*models.UserProfile, error) {
	query := `
		INSERT INTO user_profiles (user_id, age, experience_level, training_location, fitness_focus)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userProfileColumns
	return scanUserProfile(r.db.QueryRow(ctx, query,
		input.UserID,
		input.Age,
		input.ExperienceLevel,
		input.TrainingLocation,
		input.FitnessFocus,
	))
}

func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `SELECT ` + userProfileColumns + ` FROM user_profiles WHERE user_id = $1`
	return scanUserProfile(r.db.QueryRow(ctx, query, userID))
}

func (r *UserProfileRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateUserProfileInput) (*models.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET age = COALESCE($1, age),
			experience_level = COALESCE($2, experience_level),
			training_location = COALESCE($3, training_location),
			fitness_focus = COALESCE($4, fitness_focus),
			updated_at = NOW()
		WHERE user_id = $5
		RETURNING ` + userProfileColumns
	return scanUserProfile(r.db.QueryRow(ctx, query,
		req.Age,
		req.ExperienceLevel,
		req.TrainingLocation,
		req.FitnessFocus,
		userID,
	))
}

func scanUserProfile(row pgx.Row) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Age,
		&profile.ExperienceLevel,
		&profile.TrainingLocation,
		&profile.FitnessFocus,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type CreateUserProfileInput struct {
	UserID           int64
	Age              *int
	ExperienceLevel  string
	TrainingLocation string
	FitnessFocus     string
}

type UpdateUserProfileInput struct {
	Age              *int
	ExperienceLevel  *string
	TrainingLocation *string
	FitnessFocus     *string
}
