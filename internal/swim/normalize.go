package swim

import (
	"fmt"
	"math"
	"time"
)

// Input is the raw shape accepted before normalization. Either the flat
// distance/duration/style fields are set, or Segments carry the detail.
// Wearable inputs carry DurationSeconds instead of Duration.
type Input struct {
	UserID          int       `json:"userId"`
	Date            time.Time `json:"date"`
	Distance        float64   `json:"distance"`
	Duration        float64   `json:"duration"`
	DurationSeconds float64   `json:"durationSeconds,omitempty"`
	Style           Style     `json:"style"`
	Segments        []Segment `json:"segments,omitempty"`
	AvgHeartRate    float64   `json:"avgHeartRate,omitempty"`
	StrokeRate      float64   `json:"strokeRate,omitempty"`
	Calories        float64   `json:"calories,omitempty"`
	GoalTag         string    `json:"goalTag,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Source          Source    `json:"source,omitempty"`
}

// Normalize merges the three input shapes (basic, segmented, wearable) into
// one canonical Activity. It fails with ValidationError on negative
// distance/duration or a style outside the enumeration.
func Normalize(in Input) (*Activity, error) {
	source := in.Source
	if source == "" {
		source = SourceManual
	}

	duration := in.Duration
	if source == SourceWearable && in.DurationSeconds > 0 {
		// wearable durations arrive in seconds
		duration = math.Round(in.DurationSeconds / 60)
	}

	distance := in.Distance
	style := in.Style
	if style == "" {
		style = StyleUnknown
	}

	if len(in.Segments) > 0 {
		var segDistance, segDuration float64
		dominant := in.Segments[0]
		for _, seg := range in.Segments {
			if !seg.Style.ValidForSegment() {
				return nil, newValidationError("segments", fmt.Sprintf("unknown segment style %q", seg.Style))
			}
			if seg.Distance < 0 {
				return nil, newValidationError("segments", "negative segment distance")
			}
			if seg.Duration < 0 {
				return nil, newValidationError("segments", "negative segment duration")
			}
			segDistance += seg.Distance
			segDuration += seg.Duration
			// ties broken by first occurrence
			if seg.Distance > dominant.Distance {
				dominant = seg
			}
		}
		distance = segDistance
		duration = segDuration
		style = dominant.Style
		if style == StyleKickboard || style == StylePull {
			style = StyleMixed
		}
	}

	if distance < 0 {
		return nil, newValidationError("distance", "must be non-negative")
	}
	if duration < 0 {
		return nil, newValidationError("duration", "must be non-negative")
	}
	if !style.ValidForActivity() {
		return nil, newValidationError("style", fmt.Sprintf("unknown style %q", style))
	}

	// minutes per 100 units, 0 when distance is 0
	var averagePace float64
	if distance > 0 {
		averagePace = duration / distance * 100
	}

	return &Activity{
		UserID:       in.UserID,
		Date:         in.Date,
		Distance:     distance,
		Duration:     duration,
		Style:        style,
		AveragePace:  averagePace,
		AvgHeartRate: in.AvgHeartRate,
		StrokeRate:   in.StrokeRate,
		Calories:     in.Calories,
		GoalTag:      in.GoalTag,
		Source:       source,
		Segments:     in.Segments,
		Notes:        in.Notes,
	}, nil
}
