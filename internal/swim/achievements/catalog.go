package achievements

import (
	"fmt"

	"github.com/2beens/swimstats/internal/swim"
)

// Definition is one immutable catalog entry. Progress is a pure function
// over aggregated stats; the unlock condition is progress >= target.
type Definition struct {
	Type        Type
	Level       Level
	Title       string
	Description string
	Icon        string
	Target      float64
	Progress    func(stats swim.AggregatedStats) float64
}

// Catalog holds the seeded achievement definitions, loaded once at startup
// and never mutated afterwards.
type Catalog struct {
	definitions []Definition
}

func LoadCatalog() (*Catalog, error) {
	definitions := seedDefinitions()

	seen := make(map[string]bool, len(definitions))
	for _, def := range definitions {
		key := fmt.Sprintf("%s|%s", def.Type, def.Level)
		if seen[key] {
			return nil, fmt.Errorf("duplicate achievement definition: %s/%s", def.Type, def.Level)
		}
		seen[key] = true
		if def.Progress == nil {
			return nil, fmt.Errorf("achievement definition %s/%s has no progress func", def.Type, def.Level)
		}
	}

	return &Catalog{definitions: definitions}, nil
}

func (c *Catalog) Definitions() []Definition {
	return c.definitions
}

func seedDefinitions() []Definition {
	totalSessions := func(stats swim.AggregatedStats) float64 {
		return float64(stats.TotalSessions)
	}
	totalDistance := func(stats swim.AggregatedStats) float64 {
		return stats.TotalDistance
	}
	totalDuration := func(stats swim.AggregatedStats) float64 {
		return stats.TotalDuration
	}
	streakDays := func(stats swim.AggregatedStats) float64 {
		return float64(stats.StreakDays)
	}

	return []Definition{
		{
			Type:        TypeFirstTraining,
			Level:       LevelBronze,
			Title:       "First Training",
			Description: "Completed the first swim training!",
			Icon:        "🏊‍♂️",
			Target:      1,
			Progress:    totalSessions,
		},
		{
			Type:        TypeDistanceMilestone,
			Level:       LevelBronze,
			Title:       "Swim Beginner",
			Description: "Swam a total of 1km!",
			Icon:        "🌊",
			Target:      1000,
			Progress:    totalDistance,
		},
		{
			Type:        TypeDistanceMilestone,
			Level:       LevelSilver,
			Title:       "Swim Enthusiast",
			Description: "Swam a total of 5km!",
			Icon:        "🏊‍♀️",
			Target:      5000,
			Progress:    totalDistance,
		},
		{
			Type:        TypeDistanceMilestone,
			Level:       LevelGold,
			Title:       "Swim Master",
			Description: "Swam a total of 10km!",
			Icon:        "🏆",
			Target:      10000,
			Progress:    totalDistance,
		},
		{
			Type:        TypeDistanceMilestone,
			Level:       LevelPlatinum,
			Title:       "Swim Legend",
			Description: "Swam a total of 50km!",
			Icon:        "👑",
			Target:      50000,
			Progress:    totalDistance,
		},
		{
			Type:        TypeTimeMilestone,
			Level:       LevelBronze,
			Title:       "Time Investor",
			Description: "Swam for a total of 1 hour!",
			Icon:        "⏰",
			Target:      60,
			Progress:    totalDuration,
		},
		{
			Type:        TypeTimeMilestone,
			Level:       LevelSilver,
			Title:       "Time Manager",
			Description: "Swam for a total of 5 hours!",
			Icon:        "⏱️",
			Target:      300,
			Progress:    totalDuration,
		},
		{
			Type:        TypeTimeMilestone,
			Level:       LevelGold,
			Title:       "Time Master",
			Description: "Swam for a total of 10 hours!",
			Icon:        "⌛",
			Target:      600,
			Progress:    totalDuration,
		},
		{
			Type:        TypeStreakWeek,
			Level:       LevelBronze,
			Title:       "Week Streak",
			Description: "Swam every day for a week!",
			Icon:        "📅",
			Target:      7,
			Progress:    streakDays,
		},
		{
			Type:        TypeStreakMonth,
			Level:       LevelSilver,
			Title:       "Month Streak",
			Description: "Swam every day for a month!",
			Icon:        "📆",
			Target:      30,
			Progress:    streakDays,
		},
		{
			Type:        TypeStyleMaster,
			Level:       LevelBronze,
			Title:       "Freestyle Master",
			Description: "Trained 10 times in freestyle!",
			Icon:        "🏊‍♂️",
			Target:      10,
			Progress: func(stats swim.AggregatedStats) float64 {
				return float64(stats.StyleCounts[swim.StyleFreestyle])
			},
		},
		{
			Type:        TypeStyleMaster,
			Level:       LevelSilver,
			Title:       "All-Round Swimmer",
			Description: "Trained in all four strokes!",
			Icon:        "🎯",
			Target:      4,
			Progress: func(stats swim.AggregatedStats) float64 {
				return float64(stats.DistinctStyles)
			},
		},
		{
			Type:        TypeSpeedImprovement,
			Level:       LevelBronze,
			Title:       "Speed Improvement",
			Description: "10% faster than previous sessions!",
			Icon:        "⚡",
			Target:      10,
			Progress: func(stats swim.AggregatedStats) float64 {
				return stats.SpeedTrend
			},
		},
		{
			Type:        TypeConsistency,
			Level:       LevelBronze,
			Title:       "Consistency",
			Description: "Swam 3+ times a week for a month!",
			Icon:        "📈",
			Target:      12,
			Progress: func(stats swim.AggregatedStats) float64 {
				return float64(stats.ConsistentWeeks)
			},
		},
		{
			Type:        TypeGoalAchiever,
			Level:       LevelBronze,
			Title:       "Goal Achiever",
			Description: "Reached the first goal!",
			Icon:        "🎯",
			Target:      1,
			Progress: func(stats swim.AggregatedStats) float64 {
				return float64(stats.DistinctGoalTags)
			},
		},
	}
}
