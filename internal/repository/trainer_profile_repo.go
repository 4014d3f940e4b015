package repository

import (
	"context"
	"fmt"

	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/jackc/pgx/v5"
)

const trainerProfileColumns = `id, user_id, bio, years_of_experience, specialty_strength, specialty_cardio,
	specialty_flexibility, specialty_sports, specialty_rehabilitation, certifications, created_at, updated_at`

// specialtyColumns whitelists the directory filter values.
var specialtyColumns = map[string]string{
	"strength":       "tp.specialty_strength",
	"cardio":         "tp.specialty_cardio",
	"flexibility":    "tp.specialty_flexibility",
	"sports":         "tp.specialty_sports",
	"rehabilitation": "tp.specialty_rehabilitation",
}

func IsKnownSpecialty(specialty string) bool {
	_, ok := specialtyColumns[specialty]
	return ok
}

type TrainerProfileRepository struct {
	db DBTX
}

func NewTrainerProfileRepository(db DBTX) *TrainerProfileRepository {
	return &TrainerProfileRepository{db: db}
}

func (r *TrainerProfileRepository) Create(ctx context.Context, input CreateTrainerProfileInput) (*models.TrainerProfile, error) {
	query := `
		INSERT INTO trainer_profiles (user_id, bio, years_of_experience, specialty_strength, specialty_cardio,
			specialty_flexibility, specialty_sports, specialty_rehabilitation, certifications)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + trainerProfileColumns
	return scanTrainerProfile(r.db.QueryRow(ctx, query,
		input.UserID,
		input.Bio,
		input.YearsOfExperience,
		input.SpecialtyStrength,
		input.SpecialtyCardio,
		input.SpecialtyFlexibility,
		input.SpecialtySports,
		input.SpecialtyRehabilitation,
		input.Certifications,
	))
}

func (r *TrainerProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.TrainerProfile, error) {
	query := `SELECT ` + trainerProfileColumns + ` FROM trainer_profiles WHERE user_id = $1`
	return scanTrainerProfile(r.db.QueryRow(ctx, query, userID))
}

func (r *TrainerProfileRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateTrainerProfileInput) (*models.TrainerProfile, error) {
	query := `
		UPDATE trainer_profiles
		SET bio = COALESCE($1, bio),
			years_of_experience = COALESCE($2, years_of_experience),
			specialty_strength = COALESCE($3, specialty_strength),
			specialty_cardio = COALESCE($4, specialty_cardio),
			specialty_flexibility = COALESCE($5, specialty_flexibility),
			specialty_sports = COALESCE($6, specialty_sports),
			specialty_rehabilitation = COALESCE($7, specialty_rehabilitation),
			certifications = COALESCE($8, certifications),
			updated_at = NOW()
		WHERE user_id = $9
		RETURNING ` + trainerProfileColumns
	return scanTrainerProfile(r.db.QueryRow(ctx, query,
		req.Bio,
		req.YearsOfExperience,
		req.SpecialtyStrength,
		req.SpecialtyCardio,
		req.SpecialtyFlexibility,
		req.SpecialtySports,
		req.SpecialtyRehabilitation,
		req.Certifications,
		userID,
	))
}

const trainerSummarySelect = `
	SELECT u.id,
		COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username),
		tp.bio, tp.years_of_experience, tp.specialty_strength, tp.specialty_cardio,
		tp.specialty_flexibility, tp.specialty_sports, tp.specialty_rehabilitation, tp.certifications,
		(SELECT COUNT(*) FROM workout_plans wp WHERE wp.trainer_id = u.id AND wp.is_published)
	FROM trainer_profiles tp
	JOIN users u ON u.id = tp.user_id
	WHERE u.is_trainer`

// List returns one page of the trainer directory and the total match count.
func (r *TrainerProfileRepository) List(ctx context.Context, filter TrainerListFilter) ([]models.TrainerSummary, int, error) {
	where := ""
	if filter.Specialty != "" {
		column, ok := specialtyColumns[filter.Specialty]
		if !ok {
			return nil, 0, fmt.Errorf("unknown specialty %q", filter.Specialty)
		}
		where = " AND " + column
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM trainer_profiles tp JOIN users u ON u.id = tp.user_id WHERE u.is_trainer` + where
	if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := trainerSummarySelect + where + `
		ORDER BY tp.years_of_experience DESC, u.id ASC
		OFFSET $1 LIMIT $2`
	rows, err := r.db.Query(ctx, query, filter.Offset, filter.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	trainers := make([]models.TrainerSummary, 0)
	for rows.Next() {
		trainer, err := scanTrainerSummary(rows)
		if err != nil {
			return nil, 0, err
		}
		trainers = append(trainers, *trainer)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return trainers, total, nil
}

func (r *TrainerProfileRepository) GetSummaryByUserID(ctx context.Context, userID int64) (*models.TrainerSummary, error) {
	return scanTrainerSummary(r.db.QueryRow(ctx, trainerSummarySelect+` AND u.id = $1`, userID))
}

func scanTrainerProfile(row pgx.Row) (*models.TrainerProfile, error) {
	var profile models.TrainerProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Bio,
		&profile.YearsOfExperience,
		&profile.SpecialtyStrength,
		&profile.SpecialtyCardio,
		&profile.SpecialtyFlexibility,
		&profile.SpecialtySports,
		&profile.SpecialtyRehabilitation,
		&profile.Certifications,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func scanTrainerSummary(row pgx.Row) (*models.TrainerSummary, error) {
	var (
		summary models.TrainerSummary
		profile models.TrainerProfile
	)
	err := row.Scan(
		&summary.ID,
		&summary.Name,
		&summary.Bio,
		&summary.YearsOfExperience,
		&profile.SpecialtyStrength,
		&profile.SpecialtyCardio,
		&profile.SpecialtyFlexibility,
		&profile.SpecialtySports,
		&profile.SpecialtyRehabilitation,
		&summary.Certifications,
		&summary.PublishedPlans,
	)
	if err != nil {
		return nil, err
	}
	summary.Specialties = profile.Specialties()
	return &summary, nil
}

type CreateTrainerProfileInput struct {
	UserID                  int64
	Bio                     string
	YearsOfExperience       int
	SpecialtyStrength       bool
	SpecialtyCardio         bool
	SpecialtyFlexibility    bool
	SpecialtySports         bool
	SpecialtyRehabilitation bool
	Certifications          string
}

type UpdateTrainerProfileInput struct {
	Bio                     *string
	YearsOfExperience       *int
	SpecialtyStrength       *bool
	SpecialtyCardio         *bool
	SpecialtyFlexibility    *bool
	SpecialtySports         *bool
	SpecialtyRehabilitation *bool
	Certifications          *string
}

type TrainerListFilter struct {
	Specialty string
	Offset    int
	Limit     int
}
