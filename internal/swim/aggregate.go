package swim

import (
	"sort"
	"time"
)

const (
	trailingWindow       = 30 * 24 * time.Hour
	weekBucket           = 7 * 24 * time.Hour
	consistencyWeeks     = 4
	consistentWeekFloor  = 3
	speedTrendRecentSize = 5
)

type PersonalBests struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Speed    float64 `json:"speed"`
}

// AggregatedStats is derived on demand and never persisted as source of truth.
type AggregatedStats struct {
	TotalDistance     float64       `json:"totalDistance"`
	TotalDuration     float64       `json:"totalDuration"`
	TotalSessions     int           `json:"totalSessions"`
	StreakDays        int           `json:"streakDays"`
	WeeklyConsistency float64       `json:"weeklyConsistency"`
	ConsistentWeeks   int           `json:"consistentWeeks"`
	SpeedTrend        float64       `json:"speedTrend"`
	PersonalBests     PersonalBests `json:"personalBests"`
	StyleCounts       map[Style]int `json:"styleCounts"`
	DistinctStyles    int           `json:"distinctStyles"`
	DistinctGoalTags  int           `json:"distinctGoalTags"`
	TrainingFrequency float64       `json:"trainingFrequency"`
	AverageSpeed      float64       `json:"averageSpeed"`
}

// Aggregate computes derived stats over the full activity history.
func Aggregate(activities []Activity) AggregatedStats {
	return AggregateAt(time.Now(), activities)
}

// AggregateAt is Aggregate with an explicit reference time for the trailing
// windows (weekly consistency, training frequency). Activities are sorted
// ascending by date, ties kept in insertion order.
func AggregateAt(now time.Time, activities []Activity) AggregatedStats {
	sorted := make([]Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	stats := AggregatedStats{
		StyleCounts: make(map[Style]int),
	}

	goalTags := make(map[string]bool)
	for _, a := range sorted {
		stats.TotalDistance += a.Distance
		stats.TotalDuration += a.Duration
		stats.TotalSessions++
		stats.StyleCounts[a.Style]++

		if a.Distance > stats.PersonalBests.Distance {
			stats.PersonalBests.Distance = a.Distance
		}
		if a.Duration > stats.PersonalBests.Duration {
			stats.PersonalBests.Duration = a.Duration
		}
		if speed := a.Speed(); speed > stats.PersonalBests.Speed {
			stats.PersonalBests.Speed = speed
		}

		if a.GoalTag != "" {
			goalTags[a.GoalTag] = true
		}
	}

	stats.DistinctGoalTags = len(goalTags)
	stats.DistinctStyles = len(stats.StyleCounts)
	if stats.TotalDuration > 0 {
		stats.AverageSpeed = stats.TotalDistance / stats.TotalDuration
	}

	stats.StreakDays = Streak(sorted)
	stats.ConsistentWeeks = consistentWeeksIn(now, sorted)
	// not clamped: values above 1 are possible with irregular epochs
	stats.WeeklyConsistency = float64(stats.ConsistentWeeks) / consistencyWeeks
	stats.SpeedTrend = SpeedTrend(sorted)

	windowStart := now.Add(-trailingWindow)
	var recentSessions int
	for _, a := range sorted {
		if !a.Date.Before(windowStart) && !a.Date.After(now) {
			recentSessions++
		}
	}
	stats.TrainingFrequency = float64(recentSessions) / consistencyWeeks

	return stats
}

// Streak counts consecutive training days walking backward from the most
// recent activity. A gap of more than one day breaks the streak, multiple
// activities on the same day count as one day.
func Streak(sorted []Activity) int {
	if len(sorted) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(sorted))
	seen := make(map[string]bool)
	for i := len(sorted) - 1; i >= 0; i-- {
		day := sorted[i].Date.Truncate(24 * time.Hour)
		key := day.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		days = append(days, day)
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		gap := days[i-1].Sub(days[i])
		if gap > 24*time.Hour {
			break
		}
		streak++
	}
	return streak
}

// consistentWeeksIn buckets the trailing 30 days into epoch-aligned weeks
// (floor(ts / 7d)) and counts weeks holding at least 3 activities. The
// bucketing is deliberately epoch-aligned, not ISO-week-aligned.
func consistentWeeksIn(now time.Time, sorted []Activity) int {
	windowStart := now.Add(-trailingWindow)
	weeks := make(map[int64]int)
	for _, a := range sorted {
		if a.Date.Before(windowStart) || a.Date.After(now) {
			continue
		}
		weekIndex := a.Date.Unix() / int64(weekBucket/time.Second)
		weeks[weekIndex]++
	}

	var consistent int
	for _, count := range weeks {
		if count >= consistentWeekFloor {
			consistent++
		}
	}
	return consistent
}

// SpeedTrend compares the average speed of the 5 most recent sessions against
// the average of everything before them, as a percent change. It is 0 with
// fewer than 2 sessions or an empty older window.
func SpeedTrend(sorted []Activity) float64 {
	if len(sorted) < 2 {
		return 0
	}

	split := len(sorted) - speedTrendRecentSize
	if split <= 0 {
		return 0
	}

	olderAvg := averageSpeedOf(sorted[:split])
	recentAvg := averageSpeedOf(sorted[split:])
	if olderAvg == 0 {
		return 0
	}

	return (recentAvg - olderAvg) / olderAvg * 100
}

func averageSpeedOf(activities []Activity) float64 {
	if len(activities) == 0 {
		return 0
	}
	var sum float64
	for _, a := range activities {
		sum += a.Speed()
	}
	return sum / float64(len(activities))
}
