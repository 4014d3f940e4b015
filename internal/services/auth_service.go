package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/hvpham-yorku/group2-fitiva/internal/repository"
	"github.com/hvpham-yorku/group2-fitiva/pkg/utils"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

const uniqueViolationCode = "23505"

type accountCreator interface {
	CreateAccount(ctx context.Context, input repository.CreateAccountInput) (*models.Account, error)
}

type userStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type userProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
}

type trainerProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.TrainerProfile, error)
}

type SignupInput struct {
	Username    models.Optional[string]        `json:"username"`
	Email       models.Optional[string]        `json:"email"`
	Password    models.Optional[string]        `json:"password"`
	Password2   models.Optional[string]        `json:"password2"`
	FirstName   models.Optional[string]        `json:"first_name"`
	LastName    models.Optional[string]        `json:"last_name"`
	IsTrainer   models.Optional[bool]          `json:"is_trainer"`
	ProfileData models.Optional[ProfileFields] `json:"profile_data"`
	TrainerData models.Optional[TrainerFields] `json:"trainer_data"`
}

type LoginInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type AuthService struct {
	accounts accountCreator
	users    userStore
	profiles userProfileReader
	trainers trainerProfileReader
	log      logrus.FieldLogger
}

func NewAuthService(
	accounts accountCreator,
	users userStore,
	profiles userProfileReader,
	trainers trainerProfileReader,
	log logrus.FieldLogger,
) *AuthService {
	return &AuthService{
		accounts: accounts,
		users:    users,
		profiles: profiles,
		trainers: trainers,
		log:      log,
	}
}

// Signup validates the request, then creates the user, its fitness profile
// and, for trainers, its trainer profile in one transaction.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.Account, error) {
	errs := FieldErrors{}

	username, ok := requiredString(errs, "username", in.Username)
	if ok && utf8.RuneCountInString(username) > maxUsernameLength {
		errs.Add("username", msgUsernameLong)
		ok = false
	}
	if ok {
		taken, err := s.users.UsernameExists(ctx, username)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("username", msgUsernameTaken)
		}
	}

	email, ok := requiredString(errs, "email", in.Email)
	email = strings.ToLower(email)
	switch {
	case !ok:
	case utf8.RuneCountInString(email) > maxEmailLength:
		errs.Add("email", msgEmailTooLong)
		ok = false
	case !validateEmail(email):
		errs.Add("email", msgInvalidEmail)
		ok = false
	}
	if ok {
		taken, err := s.users.EmailExists(ctx, email)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("email", msgEmailTaken)
		}
	}

	password := requiredPassword(errs, "password", in.Password)
	if password != "" {
		if msg := validatePassword(password); msg != "" {
			errs.Add("password", msg)
		}
	}
	password2 := requiredPassword(errs, "password2", in.Password2)
	if password2 != "" && password2 != password {
		errs.Add("password2", msgPasswordMatch)
	}

	firstName := requiredName(errs, "first_name", in.FirstName)
	lastName := requiredName(errs, "last_name", in.LastName)

	isTrainer := optionalBool(errs, "is_trainer", in.IsTrainer)

	profileInput := repository.CreateUserProfileInput{
		ExperienceLevel:  models.ExperienceBeginner,
		TrainingLocation: models.LocationHome,
		FitnessFocus:     models.FocusMixed,
	}
	if fields, ok := nestedObject(errs, "profile_data", in.ProfileData); ok {
		nested := FieldErrors{}
		update := validateProfileFields(fields, nested)
		errs.Merge("profile_data", nested)
		profileInput.Age = update.Age
		profileInput.ExperienceLevel = stringOr(update.ExperienceLevel, profileInput.ExperienceLevel)
		profileInput.TrainingLocation = stringOr(update.TrainingLocation, profileInput.TrainingLocation)
		profileInput.FitnessFocus = stringOr(update.FitnessFocus, profileInput.FitnessFocus)
	}

	var trainerUpdate repository.UpdateTrainerProfileInput
	if fields, ok := nestedObject(errs, "trainer_data", in.TrainerData); ok {
		nested := FieldErrors{}
		trainerUpdate = validateTrainerFields(fields, nested)
		errs.Merge("trainer_data", nested)
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		IsTrainer:    isTrainer != nil && *isTrainer,
	}

	input := repository.CreateAccountInput{User: user, Profile: profileInput}
	if user.IsTrainer {
		input.Trainer = &repository.CreateTrainerProfileInput{
			Bio:                     stringOr(trainerUpdate.Bio, ""),
			YearsOfExperience:       intOr(trainerUpdate.YearsOfExperience, 0),
			SpecialtyStrength:       boolOr(trainerUpdate.SpecialtyStrength),
			SpecialtyCardio:         boolOr(trainerUpdate.SpecialtyCardio),
			SpecialtyFlexibility:    boolOr(trainerUpdate.SpecialtyFlexibility),
			SpecialtySports:         boolOr(trainerUpdate.SpecialtySports),
			SpecialtyRehabilitation: boolOr(trainerUpdate.SpecialtyRehabilitation),
			Certifications:          stringOr(trainerUpdate.Certifications, ""),
		}
	}

	account, err := s.accounts.CreateAccount(ctx, input)
	if err != nil {
		if fieldErr := uniqueViolationFieldErrors(err); fieldErr != nil {
			return nil, fieldErr
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":    account.ID,
		"is_trainer": account.IsTrainer,
	}).Info("account created")

	return account, nil
}

// Authenticate resolves login as an email when it contains "@" and as a
// username otherwise. Unknown accounts and wrong passwords are reported
// identically.
func (s *AuthService) Authenticate(ctx context.Context, in LoginInput) (*models.User, error) {
	login := strings.TrimSpace(in.Login)
	if login == "" || in.Password == "" {
		return nil, ErrMissingCredentials
	}

	var (
		user *models.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.users.GetByEmail(ctx, strings.ToLower(login))
	} else {
		user, err = s.users.GetByUsername(ctx, login)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.BurnPasswordCheck(in.Password)
			s.log.Debug("login attempt for unknown account")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(in.Password, user.PasswordHash) {
		s.log.WithField("user_id", user.ID).Info("login rejected: wrong password")
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// GetAccount loads the public account view. Missing profiles are left nil.
func (s *AuthService) GetAccount(ctx context.Context, user *models.User) (*models.Account, error) {
	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var trainerProfile *models.TrainerProfile
	if user.IsTrainer {
		trainerProfile, err = s.trainers.GetByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	account := models.NewAccount(user, profile, trainerProfile)
	return &account, nil
}

// uniqueViolationFieldErrors turns a signup race on a unique constraint
// into the same field error the pre-checks would have produced.
func uniqueViolationFieldErrors(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return nil
	}
	switch pgErr.ConstraintName {
	case repository.UsernameUniqueConstraint:
		return FieldErrors{"username": msgUsernameTaken}
	case repository.EmailUniqueConstraint:
		return FieldErrors{"email": msgEmailTaken}
	}
	return nil
}

func requiredPassword(errs FieldErrors, field string, v models.Optional[string]) string {
	switch {
	case !v.Set:
		errs.Add(field, msgRequired)
	case v.Null:
		errs.Add(field, msgNotNull)
	case v.Invalid:
		errs.Add(field, msgNotString)
	case v.Value == "":
		errs.Add(field, msgBlank)
	default:
		return v.Value
	}
	return ""
}

func requiredName(errs FieldErrors, field string, v models.Optional[string]) string {
	name, ok := requiredString(errs, field, v)
	if ok && utf8.RuneCountInString(name) > maxNameLength {
		errs.Add(field, msgNameTooLong)
		return ""
	}
	return name
}

// nestedObject accepts an absent or null object as "use defaults".
func nestedObject[T any](errs FieldErrors, field string, v models.Optional[T]) (T, bool) {
	if v.Invalid {
		errs.Add(field, msgNotObject)
	}
	if p := v.Ptr(); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

func stringOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

func intOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}

func boolOr(value *bool) bool {
	return value != nil && *value
}
