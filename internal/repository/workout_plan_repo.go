package repository

import (
	"context"

	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/jackc/pgx/v5"
)

// planSelect reads workout_plans aliased as wp with the trainer display name.
const planSelect = `
	SELECT wp.id, wp.name, wp.description, wp.focus, wp.difficulty, wp.weekly_frequency,
		wp.session_length, wp.is_subscription, wp.is_published, wp.trainer_id,
		COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username),
		wp.created_at, wp.updated_at`

type CreateWorkoutPlanInput struct {
	TrainerID       int64
	Name            string
	Description     string
	Focus           string
	Difficulty      string
	WeeklyFrequency int
	SessionLength   int
	IsSubscription  bool
	IsPublished     bool
}

type UpdateWorkoutPlanInput struct {
	Name            *string
	Description     *string
	Focus           *string
	Difficulty      *string
	WeeklyFrequency *int
	SessionLength   *int
	IsSubscription  *bool
	IsPublished     *bool
}

type WorkoutPlanRepository struct {
	db DBTX
}

func NewWorkoutPlanRepository(db DBTX) *WorkoutPlanRepository {
	return &WorkoutPlanRepository{db: db}
}

func (r *WorkoutPlanRepository) Create(ctx context.Context, input CreateWorkoutPlanInput) (*models.WorkoutPlan, error) {
	query := `
		WITH wp AS (
			INSERT INTO workout_plans (trainer_id, name, description, focus, difficulty,
				weekly_frequency, session_length, is_subscription, is_published)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING *
		)` + planSelect + `
		FROM wp
		JOIN users u ON u.id = wp.trainer_id
	`
	return scanWorkoutPlan(r.db.QueryRow(ctx, query,
		input.TrainerID,
		input.Name,
		input.Description,
		input.Focus,
		input.Difficulty,
		input.WeeklyFrequency,
		input.SessionLength,
		input.IsSubscription,
		input.IsPublished,
	))
}

func (r *WorkoutPlanRepository) ListPublished(ctx context.Context) ([]models.WorkoutPlan, error) {
	query := planSelect + `
		FROM workout_plans wp
		JOIN users u ON u.id = wp.trainer_id
		WHERE wp.is_published
		ORDER BY wp.updated_at DESC, wp.id DESC
	`
	return r.list(ctx, query)
}

func (r *WorkoutPlanRepository) ListByTrainerID(ctx context.Context, trainerID int64) ([]models.WorkoutPlan, error) {
	query := planSelect + `
		FROM workout_plans wp
		JOIN users u ON u.id = wp.trainer_id
		WHERE wp.trainer_id = $1
		ORDER BY wp.updated_at DESC, wp.id DESC
	`
	return r.list(ctx, query, trainerID)
}

func (r *WorkoutPlanRepository) ListPublishedByTrainerID(ctx context.Context, trainerID int64) ([]models.WorkoutPlan, error) {
	query := planSelect + `
		FROM workout_plans wp
		JOIN users u ON u.id = wp.trainer_id
		WHERE wp.trainer_id = $1 AND wp.is_published
		ORDER BY wp.updated_at DESC, wp.id DESC
	`
	return r.list(ctx, query, trainerID)
}

// GetOwned returns pgx.ErrNoRows both when the plan is missing and when it
// belongs to another trainer.
func (r *WorkoutPlanRepository) GetOwned(ctx context.Context, planID, trainerID int64) (*models.WorkoutPlan, error) {
	query := planSelect + `
		FROM workout_plans wp
		JOIN users u ON u.id = wp.trainer_id
		WHERE wp.id = $1 AND wp.trainer_id = $2
	`
	return scanWorkoutPlan(r.db.QueryRow(ctx, query, planID, trainerID))
}

func (r *WorkoutPlanRepository) UpdateOwned(ctx context.Context, planID, trainerID int64, input UpdateWorkoutPlanInput) (*models.WorkoutPlan, error) {
	query := `
		WITH wp AS (
			UPDATE workout_plans
			SET name = COALESCE($1, name),
				description = COALESCE($2, description),
				focus = COALESCE($3, focus),
				difficulty = COALESCE($4, difficulty),
				weekly_frequency = COALESCE($5, weekly_frequency),
				session_length = COALESCE($6, session_length),
				is_subscription = COALESCE($7, is_subscription),
				is_published = COALESCE($8, is_published),
				updated_at = NOW()
			WHERE id = $9 AND trainer_id = $10
			RETURNING *
		)` + planSelect + `
		FROM wp
		JOIN users u ON u.id = wp.trainer_id
	`
	return scanWorkoutPlan(r.db.QueryRow(ctx, query,
		input.Name,
		input.Description,
		input.Focus,
		input.Difficulty,
		input.WeeklyFrequency,
		input.SessionLength,
		input.IsSubscription,
		input.IsPublished,
		planID,
		trainerID,
	))
}

// SetPublished sets is_published, or flips it when published is nil.
func (r *WorkoutPlanRepository) SetPublished(ctx context.Context, planID, trainerID int64, published *bool) (*models.WorkoutPlan, error) {
	query := `
		WITH wp AS (
			UPDATE workout_plans
			SET is_published = COALESCE($1, NOT is_published),
				updated_at = NOW()
			WHERE id = $2 AND trainer_id = $3
			RETURNING *
		)` + planSelect + `
		FROM wp
		JOIN users u ON u.id = wp.trainer_id
	`
	return scanWorkoutPlan(r.db.QueryRow(ctx, query, published, planID, trainerID))
}

func (r *WorkoutPlanRepository) DeleteOwned(ctx context.Context, planID, trainerID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM workout_plans WHERE id = $1 AND trainer_id = $2`, planID, trainerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *WorkoutPlanRepository) list(ctx context.Context, query string, args ...any) ([]models.WorkoutPlan, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]models.WorkoutPlan, 0)
	for rows.Next() {
		plan, err := scanWorkoutPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

func scanWorkoutPlan(row pgx.Row) (*models.WorkoutPlan, error) {
	var plan models.WorkoutPlan
	err := row.Scan(
		&plan.ID,
		&plan.Name,
		&plan.Description,
		&plan.Focus,
		&plan.Difficulty,
		&plan.WeeklyFrequency,
		&plan.SessionLength,
		&plan.IsSubscription,
		&plan.IsPublished,
		&plan.TrainerID,
		&plan.TrainerName,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
