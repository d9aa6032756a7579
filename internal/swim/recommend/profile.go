package recommend

import (
	"time"

	"github.com/2beens/swimstats/internal/swim"
	"github.com/2beens/swimstats/internal/swim/achievements"
	"github.com/2beens/swimstats/internal/swim/wearable"
)

// WearableProfile summarizes the wearable signal attached to a profile.
type WearableProfile struct {
	AvgHeartRate  float64    `json:"avgHeartRate"`
	StrokeRate    float64    `json:"strokeRate"`
	DominantStyle swim.Style `json:"dominantStyle"`
	LastSync      time.Time  `json:"lastSync"`
}

// UserProfile is recomputed per recommendation request and never persisted.
// With no history at all it falls back to a neutral baseline instead of
// failing, so a plan can always be produced.
type UserProfile struct {
	UserID            int                   `json:"userId"`
	TotalDistance     float64               `json:"totalDistance"`
	TotalDuration     float64               `json:"totalDuration"`
	TotalSessions     int                   `json:"totalSessions"`
	TrainingFrequency float64               `json:"trainingFrequency"`
	Consistency       float64               `json:"consistency"`
	AverageSpeed      float64               `json:"averageSpeed"`
	PreferredStyles   []swim.Style          `json:"preferredStyles"`
	RecentPerformance float64               `json:"recentPerformance"`
	Goals             []string              `json:"goals"`
	Achievements      []achievements.Record `json:"achievements"`
	Wearable          *WearableProfile      `json:"wearable,omitempty"`
}

const neutralPerformance = 0.5

func defaultProfile(userID int) UserProfile {
	return UserProfile{
		UserID:            userID,
		PreferredStyles:   []swim.Style{swim.StyleFreestyle},
		RecentPerformance: neutralPerformance,
	}
}

// profileOf folds aggregated stats into a profile. Empty history yields the
// default baseline.
func profileOf(userID int, stats swim.AggregatedStats) UserProfile {
	if stats.TotalSessions == 0 {
		return defaultProfile(userID)
	}

	return UserProfile{
		UserID:            userID,
		TotalDistance:     stats.TotalDistance,
		TotalDuration:     stats.TotalDuration,
		TotalSessions:     stats.TotalSessions,
		TrainingFrequency: stats.TrainingFrequency,
		Consistency:       stats.WeeklyConsistency,
		AverageSpeed:      stats.AverageSpeed,
		PreferredStyles:   preferredStylesOf(stats.StyleCounts),
		RecentPerformance: recentPerformanceOf(stats.SpeedTrend),
	}
}

// preferredStylesOf returns the top 2 styles by session count. Style order
// within ties is fixed so results are deterministic.
func preferredStylesOf(styleCounts map[swim.Style]int) []swim.Style {
	candidates := []swim.Style{
		swim.StyleFreestyle, swim.StyleBackstroke, swim.StyleBreaststroke,
		swim.StyleButterfly, swim.StyleMixed,
	}

	var preferred []swim.Style
	for len(preferred) < 2 {
		var best swim.Style
		bestCount := 0
		for _, style := range candidates {
			if contains(preferred, style) {
				continue
			}
			if styleCounts[style] > bestCount {
				best = style
				bestCount = styleCounts[style]
			}
		}
		if bestCount == 0 {
			break
		}
		preferred = append(preferred, best)
	}

	if len(preferred) == 0 {
		return []swim.Style{swim.StyleFreestyle}
	}
	return preferred
}

// recentPerformanceOf maps a speed trend percentage onto [0, 1], with 0.5 as
// the flat-trend midpoint.
func recentPerformanceOf(speedTrend float64) float64 {
	performance := neutralPerformance + speedTrend/100
	if performance < 0 {
		return 0
	}
	if performance > 1 {
		return 1
	}
	return performance
}

func wearableProfileOf(dataRows []wearable.Data) *WearableProfile {
	if len(dataRows) == 0 {
		return nil
	}

	var sumHeartRate, sumStrokeRate float64
	var heartRateCount, strokeRateCount int
	styleCounts := make(map[swim.Style]int)
	var lastSync time.Time
	for _, d := range dataRows {
		if d.AvgHeartRate > 0 {
			sumHeartRate += d.AvgHeartRate
			heartRateCount++
		}
		if d.StrokeRate > 0 {
			sumStrokeRate += d.StrokeRate
			strokeRateCount++
		}
		if d.Style != swim.StyleUnknown {
			styleCounts[d.Style]++
		}
		if d.StartTime.After(lastSync) {
			lastSync = d.StartTime
		}
	}

	profile := &WearableProfile{
		DominantStyle: swim.StyleUnknown,
		LastSync:      lastSync,
	}
	if heartRateCount > 0 {
		profile.AvgHeartRate = sumHeartRate / float64(heartRateCount)
	}
	if strokeRateCount > 0 {
		profile.StrokeRate = sumStrokeRate / float64(strokeRateCount)
	}

	var maxCount int
	for _, style := range []swim.Style{
		swim.StyleFreestyle, swim.StyleBackstroke, swim.StyleBreaststroke,
		swim.StyleButterfly, swim.StyleMixed,
	} {
		if styleCounts[style] > maxCount {
			maxCount = styleCounts[style]
			profile.DominantStyle = style
		}
	}

	return profile
}

func contains(styles []swim.Style, style swim.Style) bool {
	for _, s := range styles {
		if s == style {
			return true
		}
	}
	return false
}
