package service

import (
	"context"

	"github.com/alexanderramin/daygoal/internal/domain"
	"github.com/alexanderramin/daygoal/internal/repository"
)

const dailyGoalKey = "daily_goal_minutes"

type goalService struct {
	settings repository.SettingsRepo
}

func NewGoalService(settings repository.SettingsRepo) GoalService {
	return &goalService{settings: settings}
}

// DailyGoal returns 0 until a goal has been set.
func (s *goalService) DailyGoal(ctx context.Context) (int, error) {
	return s.settings.GetInt(ctx, dailyGoalKey, 0)
}

func (s *goalService) SetDailyGoal(ctx context.Context, minutes int) error {
	if minutes < 0 {
		return domain.NewValidationError("dailyGoalMinutes", "must not be negative")
	}
	return s.settings.SetInt(ctx, dailyGoalKey, minutes)
}
