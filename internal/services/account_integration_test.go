package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hvpham-yorku/group2-fitiva/internal/logger"
	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/hvpham-yorku/group2-fitiva/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

var (
	testDBOnce sync.Once
	testDBPool *pgxpool.Pool
	testDBErr  error
)

func TestSignupAndLoginFlow(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	auth := newIntegrationAuthService(pool)

	username := uniqueUsername("m")
	account, err := auth.Signup(ctx, SignupInput{
		Username:    models.Some(username),
		Email:       models.Some(username + "@Example.com"),
		Password:    models.Some("SecurePass123!"),
		Password2:   models.Some("SecurePass123!"),
		FirstName:   models.Some("Flow"),
		LastName:    models.Some("Tester"),
		ProfileData: models.Some(ProfileFields{Age: models.Some(29)}),
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	t.Cleanup(func() { cleanupTestUsers(t, ctx, pool, account.ID) })

	if account.Profile == nil || account.Profile.Age == nil || *account.Profile.Age != 29 {
		t.Fatalf("expected fitness profile with age 29, got %+v", account.Profile)
	}
	if account.Email != username+"@example.com" {
		t.Fatalf("expected normalised email, got %q", account.Email)
	}

	user, err := auth.Authenticate(ctx, LoginInput{Login: username + "@EXAMPLE.com", Password: "SecurePass123!"})
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != account.ID {
		t.Fatalf("expected user %d, got %d", account.ID, user.ID)
	}

	_, err = auth.Signup(ctx, SignupInput{
		Username:  models.Some(uniqueUsername("d")),
		Email:     models.Some(username + "@example.COM"),
		Password:  models.Some("SecurePass123!"),
		Password2: models.Some("SecurePass123!"),
		FirstName: models.Some("Dup"),
		LastName:  models.Some("Email"),
	})
	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) || fieldErrs["email"] != "Email already in use" {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
}

func TestProfileCannotBeCreatedTwice(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	account := createTestAccount(t, ctx, pool, false)

	profiles := NewProfileService(
		repository.NewUserProfileRepository(pool),
		repository.NewTrainerProfileRepository(pool),
		logger.Discard(),
	)
	if _, err := profiles.CreateUserProfile(ctx, account.ID, ProfileFields{Age: models.Some(40)}); !errors.Is(err, ErrProfileExists) {
		t.Fatalf("expected ErrProfileExists, got %v", err)
	}
}

func TestPlanOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	plans := NewProgramService(repository.NewWorkoutPlanRepository(pool), logger.Discard())

	owner := createTestAccount(t, ctx, pool, true)
	other := createTestAccount(t, ctx, pool, true)
	ownerUser := &models.User{ID: owner.ID, IsTrainer: true}
	otherUser := &models.User{ID: other.ID, IsTrainer: true}

	plan, err := plans.CreatePlan(ctx, ownerUser, PlanFields{
		Name:            models.Some("Five by Five"),
		Focus:           models.Some(models.FocusStrength),
		Difficulty:      models.Some(models.ExperienceIntermediate),
		WeeklyFrequency: models.Some(3),
		SessionLength:   models.Some(60),
	})
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if plan.TrainerName != "Test Trainer" {
		t.Fatalf("expected trainer display name, got %q", plan.TrainerName)
	}

	if _, err := plans.UpdatePlan(ctx, otherUser, plan.ID, PlanFields{Name: models.Some("Hijacked")}, true); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows for foreign update, got %v", err)
	}
	if err := plans.DeletePlan(ctx, otherUser, plan.ID); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows for foreign delete, got %v", err)
	}

	toggled, err := plans.SetPublished(ctx, ownerUser, plan.ID, models.Optional[bool]{})
	if err != nil {
		t.Fatalf("SetPublished: %v", err)
	}
	if !toggled.IsPublished {
		t.Fatal("expected toggle to publish the plan")
	}

	published, err := plans.ListPublished(ctx)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	found := false
	for _, candidate := range published {
		if candidate.ID == plan.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected plan %d in published list", plan.ID)
	}

	if err := plans.DeletePlan(ctx, ownerUser, plan.ID); err != nil {
		t.Fatalf("DeletePlan: %v", err)
	}
}

func integrationTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	testDBOnce.Do(func() {
		_ = godotenv.Load(".env")
		_ = godotenv.Load(filepath.Join("..", "..", ".env"))

		dbURL := os.Getenv("DB_URL")
		if dbURL == "" {
			testDBErr = fmt.Errorf("DB_URL is not set")
			return
		}

		cfg, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			testDBErr = err
			return
		}

		testDBPool, testDBErr = pgxpool.NewWithConfig(context.Background(), cfg)
		if testDBErr != nil {
			return
		}
		testDBErr = testDBPool.Ping(context.Background())
	})

	if testDBErr != nil {
		t.Skipf("skipping integration test: %v", testDBErr)
	}
	return testDBPool
}

func newIntegrationAuthService(pool *pgxpool.Pool) *AuthService {
	return NewAuthService(
		repository.NewAccountRepository(pool),
		repository.NewUserRepository(pool),
		repository.NewUserProfileRepository(pool),
		repository.NewTrainerProfileRepository(pool),
		logger.Discard(),
	)
}

// uniqueUsername stays within the 16 character username limit.
func uniqueUsername(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano()%1_000_000_000_000)
}

func createTestAccount(t *testing.T, ctx context.Context, pool *pgxpool.Pool, trainer bool) *models.Account {
	t.Helper()

	username := uniqueUsername("t")
	input := repository.CreateAccountInput{
		User: &models.User{
			Username:     username,
			Email:        username + "@example.com",
			PasswordHash: "test-hash",
			FirstName:    "Test",
			LastName:     "Trainer",
			IsTrainer:    trainer,
		},
		Profile: repository.CreateUserProfileInput{
			ExperienceLevel:  models.ExperienceBeginner,
			TrainingLocation: models.LocationHome,
			FitnessFocus:     models.FocusMixed,
		},
	}
	if trainer {
		input.Trainer = &repository.CreateTrainerProfileInput{}
	}

	account, err := repository.NewAccountRepository(pool).CreateAccount(ctx, input)
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	t.Cleanup(func() { cleanupTestUsers(t, ctx, pool, account.ID) })
	return account
}

func cleanupTestUsers(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userIDs ...int64) {
	t.Helper()

	if len(userIDs) == 0 {
		return
	}
	if _, err := pool.Exec(ctx, "DELETE FROM users WHERE id = ANY($1)", userIDs); err != nil {
		t.Fatalf("cleanup users: %v", err)
	}
}
