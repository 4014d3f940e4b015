package services

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/hvpham-yorku/group2-fitiva/internal/models"
	"github.com/hvpham-yorku/group2-fitiva/internal/repository"
)

const (
	msgRequired      = "This field is required."
	msgNotNull       = "This field may not be null."
	msgBlank         = "This field may not be blank."
	msgNotString     = "Not a valid string."
	msgNotInteger    = "A valid integer is required."
	msgNotBoolean    = "Must be a valid boolean."
	msgNotObject     = "Expected a dictionary of items."
	msgInvalidEmail  = "Enter a valid email address."
	msgEmailTooLong  = "Ensure this field has no more than 254 characters."
	msgAgeRequired   = "Age is required."
	msgAgeTooYoung   = "You must be at least 13 years old"
	msgAgeInvalid    = "Please enter a valid age"
	msgYearsNegative = "Years of experience cannot be negative"
	msgYearsInvalid  = "Please enter a valid number of years"
	msgInvalidFocus  = "Invalid focus."
	msgInvalidLevel  = "Invalid difficulty."
	msgFrequency     = "Weekly frequency must be between 1 and 7."
	msgSessionLength = "Session length must be between 1 and 300 minutes."
	msgPlanNameLong  = "Ensure this field has no more than 200 characters."
	msgNameTooLong   = "Ensure this field has no more than 150 characters."
	msgUsernameLong  = "Username must be 16 characters or less"
	msgUsernameTaken = "Username already taken"
	msgEmailTaken    = "Email already in use"
	msgPasswordShort = "Password must be at least 8 characters long"
	msgPasswordUpper = "Password must contain at least one uppercase letter"
	msgPasswordDigit = "Password must contain at least one number"
	msgPasswordSpecl = "Password must contain at least one special character"
	msgPasswordMatch = "Passwords do not match"
	msgProfileExists = "Profile already exists for this account."
)

const (
	minAge            = 13
	maxAge            = 120
	maxYears          = 50
	maxUsernameLength = 16
	maxEmailLength    = 254
	maxNameLength     = 150
	maxPlanNameLength = 200
	minPasswordLength = 8
	passwordSpecials  = `!@#$%^&*(),.?":{}|<>`
)

var validate = validator.New()

// ProfileFields is the writable part of a fitness profile.
type ProfileFields struct {
	Age              models.Optional[int]    `json:"age"`
	ExperienceLevel  models.Optional[string] `json:"experience_level"`
	TrainingLocation models.Optional[string] `json:"training_location"`
	FitnessFocus     models.Optional[string] `json:"fitness_focus"`
}

type TrainerFields struct {
	Bio                     models.Optional[string] `json:"bio"`
	YearsOfExperience       models.Optional[int]    `json:"years_of_experience"`
	SpecialtyStrength       models.Optional[bool]   `json:"specialty_strength"`
	SpecialtyCardio         models.Optional[bool]   `json:"specialty_cardio"`
	SpecialtyFlexibility    models.Optional[bool]   `json:"specialty_flexibility"`
	SpecialtySports         models.Optional[bool]   `json:"specialty_sports"`
	SpecialtyRehabilitation models.Optional[bool]   `json:"specialty_rehabilitation"`
	Certifications          models.Optional[string] `json:"certifications"`
}

type PlanFields struct {
	Name            models.Optional[string] `json:"name"`
	Description     models.Optional[string] `json:"description"`
	Focus           models.Optional[string] `json:"focus"`
	Difficulty      models.Optional[string] `json:"difficulty"`
	WeeklyFrequency models.Optional[int]    `json:"weekly_frequency"`
	SessionLength   models.Optional[int]    `json:"session_length"`
	IsSubscription  models.Optional[bool]   `json:"is_subscription"`
	IsPublished     models.Optional[bool]   `json:"is_published"`
}

// validateProfileFields checks every supplied field and returns the usable
// values. Age handling for absent or null values is left to the caller.
func validateProfileFields(f ProfileFields, errs FieldErrors) repository.UpdateUserProfileInput {
	var out repository.UpdateUserProfileInput

	if f.Age.Set && !f.Age.Null {
		switch {
		case f.Age.Invalid:
			errs.Add("age", msgAgeInvalid)
		case f.Age.Value < minAge:
			errs.Add("age", msgAgeTooYoung)
		case f.Age.Value > maxAge:
			errs.Add("age", msgAgeInvalid)
		default:
			out.Age = f.Age.Ptr()
		}
	}

	out.ExperienceLevel = validateChoice(errs, "experience_level", f.ExperienceLevel, models.ExperienceLevels,
		"Invalid experience level. Choose from: "+strings.Join(models.ExperienceLevels, ", "))
	out.TrainingLocation = validateChoice(errs, "training_location", f.TrainingLocation, models.TrainingLocations,
		"Invalid training location. Choose from: "+strings.Join(models.TrainingLocations, ", "))
	out.FitnessFocus = validateChoice(errs, "fitness_focus", f.FitnessFocus, models.FitnessFocuses,
		"Invalid fitness focus. Choose from: "+strings.Join(models.FitnessFocuses, ", "))

	return out
}

func validateTrainerFields(f TrainerFields, errs FieldErrors) repository.UpdateTrainerProfileInput {
	var out repository.UpdateTrainerProfileInput

	if f.YearsOfExperience.Set {
		switch {
		case f.YearsOfExperience.Null, f.YearsOfExperience.Invalid:
			errs.Add("years_of_experience", msgYearsInvalid)
		case f.YearsOfExperience.Value < 0:
			errs.Add("years_of_experience", msgYearsNegative)
		case f.YearsOfExperience.Value > maxYears:
			errs.Add("years_of_experience", msgYearsInvalid)
		default:
			out.YearsOfExperience = f.YearsOfExperience.Ptr()
		}
	}

	out.Bio = optionalText(errs, "bio", f.Bio)
	out.Certifications = optionalText(errs, "certifications", f.Certifications)
	out.SpecialtyStrength = optionalBool(errs, "specialty_strength", f.SpecialtyStrength)
	out.SpecialtyCardio = optionalBool(errs, "specialty_cardio", f.SpecialtyCardio)
	out.SpecialtyFlexibility = optionalBool(errs, "specialty_flexibility", f.SpecialtyFlexibility)
	out.SpecialtySports = optionalBool(errs, "specialty_sports", f.SpecialtySports)
	out.SpecialtyRehabilitation = optionalBool(errs, "specialty_rehabilitation", f.SpecialtyRehabilitation)

	return out
}

// validatePlanFields validates supplied plan fields. When full is set the
// core fields must be present.
func validatePlanFields(f PlanFields, full bool, errs FieldErrors) repository.UpdateWorkoutPlanInput {
	var out repository.UpdateWorkoutPlanInput

	if full {
		requirePresent(errs, "name", f.Name.Set)
		requirePresent(errs, "focus", f.Focus.Set)
		requirePresent(errs, "difficulty", f.Difficulty.Set)
		requirePresent(errs, "weekly_frequency", f.WeeklyFrequency.Set)
		requirePresent(errs, "session_length", f.SessionLength.Set)
	}

	if f.Name.Set {
		if name, ok := nonBlankString(errs, "name", f.Name); ok {
			if utf8.RuneCountInString(name) > maxPlanNameLength {
				errs.Add("name", msgPlanNameLong)
			} else {
				out.Name = &name
			}
		}
	}

	out.Description = optionalText(errs, "description", f.Description)
	out.Focus = validateChoice(errs, "focus", f.Focus, models.FitnessFocuses, msgInvalidFocus)
	out.Difficulty = validateChoice(errs, "difficulty", f.Difficulty, models.ExperienceLevels, msgInvalidLevel)
	out.WeeklyFrequency = boundedInt(errs, "weekly_frequency", f.WeeklyFrequency, 1, 7, msgFrequency)
	out.SessionLength = boundedInt(errs, "session_length", f.SessionLength, 1, 300, msgSessionLength)
	out.IsSubscription = optionalBool(errs, "is_subscription", f.IsSubscription)
	out.IsPublished = optionalBool(errs, "is_published", f.IsPublished)

	return out
}

// validatePassword applies the password policy, reporting the first rule
// that fails.
func validatePassword(password string) string {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return msgPasswordShort
	}

	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return msgPasswordUpper
	case !hasDigit:
		return msgPasswordDigit
	case !hasSpecial:
		return msgPasswordSpecl
	}
	return ""
}

func validateEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

func requirePresent(errs FieldErrors, field string, set bool) {
	if !set {
		errs.Add(field, msgRequired)
	}
}

// requiredString reports missing, null, mistyped and blank values. The
// returned value is trimmed.
func requiredString(errs FieldErrors, field string, v models.Optional[string]) (string, bool) {
	if !v.Set {
		errs.Add(field, msgRequired)
		return "", false
	}
	return nonBlankString(errs, field, v)
}

func nonBlankString(errs FieldErrors, field string, v models.Optional[string]) (string, bool) {
	switch {
	case v.Null:
		errs.Add(field, msgNotNull)
	case v.Invalid:
		errs.Add(field, msgNotString)
	case strings.TrimSpace(v.Value) == "":
		errs.Add(field, msgBlank)
	default:
		return strings.TrimSpace(v.Value), true
	}
	return "", false
}

func optionalText(errs FieldErrors, field string, v models.Optional[string]) *string {
	if !v.Set {
		return nil
	}
	switch {
	case v.Null:
		errs.Add(field, msgNotNull)
	case v.Invalid:
		errs.Add(field, msgNotString)
	default:
		text := strings.TrimSpace(v.Value)
		return &text
	}
	return nil
}

func optionalBool(errs FieldErrors, field string, v models.Optional[bool]) *bool {
	if !v.Set {
		return nil
	}
	switch {
	case v.Null:
		errs.Add(field, msgNotNull)
	case v.Invalid:
		errs.Add(field, msgNotBoolean)
	default:
		return v.Ptr()
	}
	return nil
}

func boundedInt(errs FieldErrors, field string, v models.Optional[int], lo, hi int, rangeMsg string) *int {
	if !v.Set {
		return nil
	}
	switch {
	case v.Null:
		errs.Add(field, msgNotNull)
	case v.Invalid:
		errs.Add(field, msgNotInteger)
	case v.Value < lo || v.Value > hi:
		errs.Add(field, rangeMsg)
	default:
		return v.Ptr()
	}
	return nil
}

func validateChoice(errs FieldErrors, field string, v models.Optional[string], choices []string, msg string) *string {
	if !v.Set {
		return nil
	}
	if v.Null {
		errs.Add(field, msgNotNull)
		return nil
	}
	if !v.Invalid {
		for _, choice := range choices {
			if v.Value == choice {
				value := v.Value
				return &value
			}
		}
	}
	errs.Add(field, msg)
	return nil
}
