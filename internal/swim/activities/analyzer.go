package activities

import (
	"context"
	"time"

	"github.com/2beens/swimstats/internal/swim"
	"github.com/2beens/swimstats/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type WeeklyStats struct {
	TotalDistance   float64 `json:"totalDistance"`
	TotalTime       float64 `json:"totalTime"`
	SessionCount    int     `json:"sessionCount"`
	AverageDistance float64 `json:"averageDistance"`
	AverageTime     float64 `json:"averageTime"`
}

type Improvement struct {
	DistanceImprovement float64 `json:"distanceImprovement"`
	TimeImprovement     float64 `json:"timeImprovement"`
	SpeedImprovement    float64 `json:"speedImprovement"`
	IsFirstRecord       bool    `json:"isFirstRecord"`
}

// SessionAnalysis enriches a freshly added activity with context: personal
// bests, current-week stats and deltas against the previous 5 sessions.
type SessionAnalysis struct {
	IsNewRecord   bool               `json:"isNewRecord"`
	RecordType    string             `json:"recordType"`
	PersonalBests swim.PersonalBests `json:"personalBests"`
	WeeklyStats   WeeklyStats        `json:"weeklyStats"`
	Improvement   Improvement        `json:"improvement"`
}

type StyleStat struct {
	Count           int     `json:"count"`
	TotalDistance   float64 `json:"totalDistance"`
	TotalTime       float64 `json:"totalTime"`
	AverageDistance float64 `json:"averageDistance"`
	AverageTime     float64 `json:"averageTime"`
	BestDistance    float64 `json:"bestDistance"`
	BestTime        float64 `json:"bestTime"`
}

type UserStats struct {
	swim.AggregatedStats
	AverageDistance float64     `json:"averageDistance"`
	AverageTime     float64     `json:"averageTime"`
	Weekly          WeeklyStats `json:"weeklyStats"`
}

type Analyzer struct {
	repo    activitiesRepo
	nowFunc func() time.Time
}

func NewAnalyzer(repo activitiesRepo) *Analyzer {
	return &Analyzer{
		repo:    repo,
		nowFunc: time.Now,
	}
}

// SetNowFunc replaces the clock, used in tests.
func (a *Analyzer) SetNowFunc(nowFunc func() time.Time) {
	a.nowFunc = nowFunc
}

// AnalyzeSession analyzes a just-added activity against the rest of the
// user's history. Degrades to zero values on empty history, never fails
// because of it.
func (a *Analyzer) AnalyzeSession(ctx context.Context, added swim.Activity) (_ *SessionAnalysis, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.activities.session")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", added.UserID))

	all, err := a.repo.ListAll(ctx, ListAllParams{UserID: added.UserID})
	if err != nil {
		return nil, err
	}

	// history without the activity being analyzed
	previous := make([]swim.Activity, 0, len(all))
	for _, act := range all {
		if act.ID == added.ID {
			continue
		}
		previous = append(previous, act)
	}

	analysis := &SessionAnalysis{}

	previousBests := personalBestsOf(previous)
	switch {
	case added.Distance > previousBests.Distance:
		analysis.IsNewRecord = true
		analysis.RecordType = "distance"
	case added.Duration > previousBests.Duration:
		analysis.IsNewRecord = true
		analysis.RecordType = "duration"
	case added.Speed() > previousBests.Speed:
		analysis.IsNewRecord = true
		analysis.RecordType = "speed"
	}
	analysis.PersonalBests = personalBestsOf(all)

	analysis.WeeklyStats = weeklyStatsOf(a.nowFunc(), all)
	analysis.Improvement = improvementOf(added, previous)

	return analysis, nil
}

func (a *Analyzer) UserStats(ctx context.Context, userID int) (_ *UserStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.activities.userstats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	all, err := a.repo.ListAll(ctx, ListAllParams{UserID: userID})
	if err != nil {
		return nil, err
	}

	now := a.nowFunc()
	stats := &UserStats{
		AggregatedStats: swim.AggregateAt(now, all),
		Weekly:          weeklyStatsOf(now, all),
	}
	if stats.TotalSessions > 0 {
		stats.AverageDistance = stats.TotalDistance / float64(stats.TotalSessions)
		stats.AverageTime = stats.TotalDuration / float64(stats.TotalSessions)
	}
	return stats, nil
}

// StyleStats always contains a row for each of the four competitive styles,
// zero rows included.
func (a *Analyzer) StyleStats(ctx context.Context, userID int) (_ map[swim.Style]StyleStat, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.activities.stylestats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	all, err := a.repo.ListAll(ctx, ListAllParams{UserID: userID})
	if err != nil {
		return nil, err
	}

	styleStats := make(map[swim.Style]StyleStat, len(swim.CompetitiveStyles))
	for _, style := range swim.CompetitiveStyles {
		var stat StyleStat
		for _, act := range all {
			if act.Style != style {
				continue
			}
			stat.Count++
			stat.TotalDistance += act.Distance
			stat.TotalTime += act.Duration
			if act.Distance > stat.BestDistance {
				stat.BestDistance = act.Distance
			}
			if act.Duration > stat.BestTime {
				stat.BestTime = act.Duration
			}
		}
		if stat.Count > 0 {
			stat.AverageDistance = stat.TotalDistance / float64(stat.Count)
			stat.AverageTime = stat.TotalTime / float64(stat.Count)
		}
		styleStats[style] = stat
	}
	return styleStats, nil
}

func (a *Analyzer) WeeklyStats(ctx context.Context, userID int) (_ *WeeklyStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.activities.weeklystats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	all, err := a.repo.ListAll(ctx, ListAllParams{UserID: userID})
	if err != nil {
		return nil, err
	}

	weekly := weeklyStatsOf(a.nowFunc(), all)
	return &weekly, nil
}

func personalBestsOf(activities []swim.Activity) swim.PersonalBests {
	var bests swim.PersonalBests
	for _, act := range activities {
		if act.Distance > bests.Distance {
			bests.Distance = act.Distance
		}
		if act.Duration > bests.Duration {
			bests.Duration = act.Duration
		}
		if speed := act.Speed(); speed > bests.Speed {
			bests.Speed = speed
		}
	}
	return bests
}

// weeklyStatsOf covers the current calendar week, Sunday to Saturday.
func weeklyStatsOf(now time.Time, activities []swim.Activity) WeeklyStats {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := day.AddDate(0, 0, -int(day.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)

	var stats WeeklyStats
	for _, act := range activities {
		if act.Date.Before(weekStart) || !act.Date.Before(weekEnd) {
			continue
		}
		stats.TotalDistance += act.Distance
		stats.TotalTime += act.Duration
		stats.SessionCount++
	}
	if stats.SessionCount > 0 {
		stats.AverageDistance = stats.TotalDistance / float64(stats.SessionCount)
		stats.AverageTime = stats.TotalTime / float64(stats.SessionCount)
	}
	return stats
}

// improvementOf compares an activity against the average of the 5 sessions
// preceding it.
func improvementOf(added swim.Activity, previous []swim.Activity) Improvement {
	if len(previous) == 0 {
		return Improvement{IsFirstRecord: true}
	}

	recent := previous
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}

	var sumDistance, sumTime, sumSpeed float64
	for _, act := range recent {
		sumDistance += act.Distance
		sumTime += act.Duration
		sumSpeed += act.Speed()
	}
	n := float64(len(recent))
	avgDistance := sumDistance / n
	avgTime := sumTime / n
	avgSpeed := sumSpeed / n

	var improvement Improvement
	if avgDistance > 0 {
		improvement.DistanceImprovement = (added.Distance - avgDistance) / avgDistance * 100
	}
	if avgTime > 0 {
		improvement.TimeImprovement = (added.Duration - avgTime) / avgTime * 100
	}
	if avgSpeed > 0 {
		improvement.SpeedImprovement = (added.Speed() - avgSpeed) / avgSpeed * 100
	}
	return improvement
}
