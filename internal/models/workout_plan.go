package models

import "time"

type WorkoutPlan struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Focus           string    `json:"focus"`
	Difficulty      string    `json:"difficulty"`
	WeeklyFrequency int       `json:"weekly_frequency"`
	SessionLength   int       `json:"session_length"`
	IsSubscription  bool      `json:"is_subscription"`
	IsPublished     bool      `json:"is_published"`
	TrainerID       int64     `json:"trainer"`
	TrainerName     string    `json:"trainer_name"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ScoredPlan is a published plan ranked for a specific account.
type ScoredPlan struct {
	WorkoutPlan
	MatchScore int `json:"match_score"`
}
