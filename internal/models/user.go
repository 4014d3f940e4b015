package models

import (
	"strings"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsTrainer    bool      `json:"is_trainer"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName is "first last", or the username when both names are blank.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Account is the public representation of a user returned by the auth
// endpoints.
type Account struct {
	ID             int64           `json:"id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	IsTrainer      bool            `json:"is_trainer"`
	Profile        *UserProfile    `json:"profile"`
	TrainerProfile *TrainerProfile `json:"trainer_profile"`
}

func NewAccount(user *User, profile *UserProfile, trainerProfile *TrainerProfile) Account {
	return Account{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		IsTrainer:      user.IsTrainer,
		Profile:        profile,
		TrainerProfile: trainerProfile,
	}
}
