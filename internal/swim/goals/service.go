package goals

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/2beens/swimstats/internal/swim"
	"github.com/2beens/swimstats/internal/telemetry/metrics"
	"github.com/2beens/swimstats/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=goals_test

type goalsRepo interface {
	Add(ctx context.Context, goal Goal) (*Goal, error)
	Get(ctx context.Context, userID, id int) (*Goal, error)
	ListByUser(ctx context.Context, userID int) ([]Goal, error)
	ListActive(ctx context.Context, userID int) ([]Goal, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, userID, id int) error
}

type activitySource interface {
	ListUserActivities(ctx context.Context, userID int) ([]swim.Activity, error)
}

type Service struct {
	repo       goalsRepo
	activities activitySource
	metrics    *metrics.Manager
	nowFunc    func() time.Time
}

func NewService(repo goalsRepo, activities activitySource, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:       repo,
		activities: activities,
		metrics:    metricsManager,
		nowFunc:    time.Now,
	}
}

func (s *Service) Create(ctx context.Context, goal Goal) (*Goal, error) {
	if goal.Status == "" {
		goal.Status = StatusActive
	}
	return s.repo.Add(ctx, goal)
}

func (s *Service) Get(ctx context.Context, userID, id int) (*Goal, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID int) ([]Goal, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, goal *Goal) error {
	return s.repo.Update(ctx, goal)
}

func (s *Service) Delete(ctx context.Context, userID, id int) error {
	return s.repo.Delete(ctx, userID, id)
}

// UpdateProgress recomputes current value and progress for every active goal
// of the user. A goal crossing 100% flips to completed and is excluded from
// later passes, its values frozen at the completing evaluation.
func (s *Service) UpdateProgress(ctx context.Context, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.updateprogress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	activeGoals, err := s.repo.ListActive(ctx, userID)
	if err != nil {
		return fmt.Errorf("list active goals: %w", err)
	}
	if len(activeGoals) == 0 {
		return nil
	}

	activities, err := s.activities.ListUserActivities(ctx, userID)
	if err != nil {
		return fmt.Errorf("list activities: %w", err)
	}

	var completed int
	for i := range activeGoals {
		goal := &activeGoals[i]

		goal.CurrentValue = CurrentValue(*goal, activities)
		goal.Progress = ProgressOf(*goal, goal.CurrentValue)

		if goal.Progress >= 100 && !goal.IsCompleted {
			goal.IsCompleted = true
			goal.Status = StatusCompleted
			now := s.nowFunc()
			goal.CompletedAt = &now
			completed++
		}

		if err := s.repo.Update(ctx, goal); err != nil {
			return fmt.Errorf("update goal %d: %w", goal.ID, err)
		}
	}

	span.SetAttributes(attribute.Int("goals.completed", completed))
	s.metrics.CounterGoalsCompleted.Add(float64(completed))
	return nil
}

func (s *Service) Stats(ctx context.Context, userID int) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	goals, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	stats := &Stats{
		TotalGoals:  len(goals),
		GoalsByType: make(map[Type]int),
	}
	for _, goal := range goals {
		stats.GoalsByType[goal.Type]++
		switch goal.Status {
		case StatusActive:
			stats.ActiveGoals++
		case StatusCompleted:
			stats.CompletedGoals++
		case StatusFailed:
			stats.FailedGoals++
		}
	}
	if stats.TotalGoals > 0 {
		rate := float64(stats.CompletedGoals) / float64(stats.TotalGoals) * 100
		// rounded to 2 decimals
		stats.CompletionRate = math.Round(rate*100) / 100
	}

	return stats, nil
}

// CurrentValue computes a goal's current value from the activities falling
// inside its [startDate, endDate] window, inclusive.
func CurrentValue(goal Goal, activities []swim.Activity) float64 {
	var relevant []swim.Activity
	for _, a := range activities {
		if a.Date.Before(goal.StartDate) || a.Date.After(goal.EndDate) {
			continue
		}
		relevant = append(relevant, a)
	}

	switch goal.Type {
	case TypeDistance:
		var sum float64
		for _, a := range relevant {
			sum += a.Distance
		}
		return sum

	case TypeTime:
		var sum float64
		for _, a := range relevant {
			sum += a.Duration
		}
		return sum

	case TypeFrequency:
		return float64(len(relevant))

	case TypeSpeed:
		var totalDistance, totalTime float64
		for _, a := range relevant {
			totalDistance += a.Distance
			totalTime += a.Duration
		}
		if totalTime == 0 {
			return 0
		}
		return totalDistance / totalTime

	case TypeStyleMastery:
		styles := make(map[swim.Style]bool)
		for _, a := range relevant {
			styles[a.Style] = true
		}
		return float64(len(styles))

	case TypeStreak:
		return float64(maxStreakIn(relevant))

	default:
		return 0
	}
}

// ProgressOf clamps currentValue/targetValue to [0, 100]; a target of 0 or
// less yields 0, not an error.
func ProgressOf(goal Goal, currentValue float64) float64 {
	if goal.TargetValue <= 0 {
		return 0
	}
	progress := currentValue / goal.TargetValue * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// maxStreakIn returns the longest run of consecutive training days within
// the given activities.
func maxStreakIn(activities []swim.Activity) int {
	if len(activities) == 0 {
		return 0
	}

	daySet := make(map[time.Time]bool)
	for _, a := range activities {
		daySet[a.Date.Truncate(24*time.Hour)] = true
	}

	maxStreak := 1
	for day := range daySet {
		// only count from the start of a run
		if daySet[day.Add(-24*time.Hour)] {
			continue
		}
		streak := 1
		for daySet[day.Add(time.Duration(streak)*24*time.Hour)] {
			streak++
		}
		if streak > maxStreak {
			maxStreak = streak
		}
	}
	return maxStreak
}
