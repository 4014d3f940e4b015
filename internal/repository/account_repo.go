package repository

import (
	"context"
	"fmt"

	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/jackc/pgx/v5"
)

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CreateAccountInput describes a user together with the profiles created
// alongside it. Trainer is nil for regular accounts.
type CreateAccountInput struct {
	User    *models.User
	Profile CreateUserProfileInput
	Trainer *CreateTrainerProfileInput
}

// AccountRepository writes a user and its profiles atomically.
type AccountRepository struct {
	db TxBeginner
}

func NewAccountRepository(db TxBeginner) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) CreateAccount(ctx context.Context, input CreateAccountInput) (*models.Account, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin signup transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := NewUserRepository(tx).CreateUser(ctx, input.User); err != nil {
		return nil, err
	}

	input.Profile.UserID = input.User.ID
	profile, err := NewUserProfileRepository(tx).Create(ctx, input.Profile)
	if err != nil {
		return nil, err
	}

	var trainerProfile *models.TrainerProfile
	if input.Trainer != nil {
		input.Trainer.UserID = input.User.ID
		trainerProfile, err = NewTrainerProfileRepository(tx).Create(ctx, *input.Trainer)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit signup transaction: %w", err)
	}

	account := models.NewAccount(input.User, profile, trainerProfile)
	return &account, nil
}
