package app

// StatsRequest selects how much history to summarize. Days <= 0 means all.
type StatsRequest struct {
	Days int
}

type DayStat struct {
	Date               string
	TotalLoggedMinutes int
	TotalGoalMinutes   int
	CompletionPct      int
	GoalReached        bool
	TaskCount          int
}

type StatsResponse struct {
	// Days are newest first.
	Days []DayStat
	// Streak counts consecutive goal-reached calendar days ending at the
	// most recent stored day. Days without tasks do not count as reached.
	Streak           int
	DaysReached      int
	TotalLogged      int
	DailyGoalMinutes int
	AverageLogged    int
}
