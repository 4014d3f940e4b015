package services

import (
	"context"
	"sort"

	"github.com/hvpham-yorku/group2-fitiva/internal/models"
)

const (
	DefaultRecommendationLimit = 10
	MaxRecommendationLimit     = 50

	scoreFocusMatch      = 40
	scoreDifficultyMatch = 30
	scoreAdjacentLevel   = 10
	scoreMixedFocus      = 15
	scoreShortHomePlan   = 10

	shortSessionMinutes = 45
)

type PlanLister interface {
	ListPublished(ctx context.Context) ([]models.WorkoutPlan, error)
}

type MatchmakingService struct {
	planRepo PlanLister
}

func NewMatchmakingService(planRepo PlanLister) *MatchmakingService {
	return &MatchmakingService{planRepo: planRepo}
}

// RecommendPlans ranks published plans against a fitness profile. Equal
// scores keep the most recently updated plan first.
func (s *MatchmakingService) RecommendPlans(
	ctx context.Context,
	profile *models.UserProfile,
	limit int,
) ([]models.ScoredPlan, error) {
	plans, err := s.planRepo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]models.ScoredPlan, 0, len(plans))
	for _, plan := range plans {
		scored = append(scored, models.ScoredPlan{
			WorkoutPlan: plan,
			MatchScore:  calculateMatchScore(profile, &plan),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchScore == scored[j].MatchScore {
			return scored[i].UpdatedAt.After(scored[j].UpdatedAt)
		}
		return scored[i].MatchScore > scored[j].MatchScore
	})

	limit = clampLimit(limit)
	if len(scored) > limit {
		scored = scored[:limit]
	}

	return scored, nil
}

func calculateMatchScore(profile *models.UserProfile, plan *models.WorkoutPlan) int {
	if profile == nil || plan == nil {
		return 0
	}

	score := 0
	if plan.Focus == profile.FitnessFocus {
		score += scoreFocusMatch
	} else if plan.Focus == models.FocusMixed || profile.FitnessFocus == models.FocusMixed {
		score += scoreMixedFocus
	}

	switch levelDistance(plan.Difficulty, profile.ExperienceLevel) {
	case 0:
		score += scoreDifficultyMatch
	case 1:
		score += scoreAdjacentLevel
	}

	if profile.TrainingLocation == models.LocationHome && plan.SessionLength <= shortSessionMinutes {
		score += scoreShortHomePlan
	}

	return score
}

// levelDistance is the number of steps between two experience levels, or -1
// when either is unknown.
func levelDistance(a, b string) int {
	ai, bi := levelIndex(a), levelIndex(b)
	if ai < 0 || bi < 0 {
		return -1
	}
	if ai > bi {
		return ai - bi
	}
	return bi - ai
}

func levelIndex(level string) int {
	for i, candidate := range models.ExperienceLevels {
		if candidate == level {
			return i
		}
	}
	return -1
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultRecommendationLimit
	case limit > MaxRecommendationLimit:
		return MaxRecommendationLimit
	}
	return limit
}
