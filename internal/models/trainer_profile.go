package models

import "time"

type TrainerProfile struct {
	ID                      int64     `json:"id"`
	UserID                  int64     `json:"-"`
	Bio                     string    `json:"bio"`
	YearsOfExperience       int       `json:"years_of_experience"`
	SpecialtyStrength       bool      `json:"specialty_strength"`
	SpecialtyCardio         bool      `json:"specialty_cardio"`
	SpecialtyFlexibility    bool      `json:"specialty_flexibility"`
	SpecialtySports         bool      `json:"specialty_sports"`
	SpecialtyRehabilitation bool      `json:"specialty_rehabilitation"`
	Certifications          string    `json:"certifications"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// Specialties lists the enabled specialty flags by name.
func (p *TrainerProfile) Specialties() []string {
	specialties := make([]string, 0, 5)
	if p == nil {
		return specialties
	}
	if p.SpecialtyStrength {
		specialties = append(specialties, "strength")
	}
	if p.SpecialtyCardio {
		specialties = append(specialties, "cardio")
	}
	if p.SpecialtyFlexibility {
		specialties = append(specialties, "flexibility")
	}
	if p.SpecialtySports {
		specialties = append(specialties, "sports")
	}
	if p.SpecialtyRehabilitation {
		specialties = append(specialties, "rehabilitation")
	}
	return specialties
}

// TrainerSummary is a row of the public trainer directory.
type TrainerSummary struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Bio               string   `json:"bio"`
	YearsOfExperience int      `json:"years_of_experience"`
	Specialties       []string `json:"specialties"`
	Certifications    string   `json:"certifications"`
	PublishedPlans    int      `json:"published_plans"`
}

type TrainerDetail struct {
	TrainerSummary
	Plans []WorkoutPlan `json:"plans"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
