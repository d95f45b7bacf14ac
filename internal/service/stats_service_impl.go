package service

import (
	"context"
	"time"

	"github.com/alexanderramin/daygoal/internal/app"
	"github.com/alexanderramin/daygoal/internal/domain"
	"github.com/alexanderramin/daygoal/internal/repository"
)

type statsService struct {
	days  repository.DayRepo
	goals GoalService
}

func NewStatsService(days repository.DayRepo, goals GoalService) StatsService {
	return &statsService{days: days, goals: goals}
}

// Summary reports on the req.Days most recent days. The streak is counted
// over the whole history so it is not cut off by the window.
func (s *statsService) Summary(ctx context.Context, req app.StatsRequest) (*app.StatsResponse, error) {
	all, err := s.days.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	goal, err := s.goals.DailyGoal(ctx)
	if err != nil {
		return nil, err
	}

	days := all
	if req.Days > 0 && len(days) > req.Days {
		days = days[:req.Days]
	}
	resp := &app.StatsResponse{
		Days:             make([]app.DayStat, 0, len(days)),
		DailyGoalMinutes: goal,
		Streak:           goalStreak(all),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, app.DayStat{
			Date:               d.Date,
			TotalLoggedMinutes: d.TotalLoggedMinutes,
			TotalGoalMinutes:   d.TotalGoalMinutes(),
			CompletionPct:      d.CompletionPct(),
			GoalReached:        d.GoalReached,
			TaskCount:          len(d.Tasks),
		})
		resp.TotalLogged += d.TotalLoggedMinutes
		if reachedWithWork(d) {
			resp.DaysReached++
		}
	}
	if len(days) > 0 {
		resp.AverageLogged = resp.TotalLogged / len(days)
	}
	return resp, nil
}

// reachedWithWork excludes days whose goal is only vacuously reached.
func reachedWithWork(d *domain.Day) bool {
	return d.GoalReached && len(d.Tasks) > 0
}

// goalStreak counts goal-reached days, newest first, stopping at the first
// miss or calendar gap. days must be sorted newest first.
func goalStreak(days []*domain.Day) int {
	streak := 0
	var prev time.Time
	for i, d := range days {
		t, err := time.Parse(domain.DateLayout, d.Date)
		if err != nil || !reachedWithWork(d) {
			break
		}
		if i > 0 && !t.AddDate(0, 0, 1).Equal(prev) {
			break
		}
		streak++
		prev = t
	}
	return streak
}
