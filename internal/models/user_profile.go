package models

import "time"

const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"

	LocationHome = "home"
	LocationGym  = "gym"

	FocusStrength    = "strength"
	FocusCardio      = "cardio"
	FocusFlexibility = "flexibility"
	FocusMixed       = "mixed"
)

var (
	ExperienceLevels  = []string{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}
	TrainingLocations = []string{LocationHome, LocationGym}
	FitnessFocuses    = []string{FocusStrength, FocusCardio, FocusFlexibility, FocusMixed}
)

type UserProfile struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"-"`
	Age              *int      `json:"age"`
	ExperienceLevel  string    `json:"experience_level"`
	TrainingLocation string    `json:"training_location"`
	FitnessFocus     string    `json:"fitness_focus"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
