package swim

import (
	"errors"
	"fmt"
	"time"
)

var ErrActivityNotFound = errors.New("activity not found")

type Style string

const (
	StyleFreestyle    Style = "freestyle"
	StyleBackstroke   Style = "backstroke"
	StyleBreaststroke Style = "breaststroke"
	StyleButterfly    Style = "butterfly"
	StyleMixed        Style = "mixed"
	StyleUnknown      Style = "unknown"

	// segment-only styles, collapsed to mixed at the activity level
	StyleKickboard Style = "kickboard"
	StylePull      Style = "pull"
)

// CompetitiveStyles are the four scored strokes, used for style stats.
var CompetitiveStyles = []Style{
	StyleFreestyle, StyleBackstroke, StyleBreaststroke, StyleButterfly,
}

var activityStyles = map[Style]bool{
	StyleFreestyle:    true,
	StyleBackstroke:   true,
	StyleBreaststroke: true,
	StyleButterfly:    true,
	StyleMixed:        true,
	StyleUnknown:      true,
}

var segmentStyles = map[Style]bool{
	StyleFreestyle:    true,
	StyleBackstroke:   true,
	StyleBreaststroke: true,
	StyleButterfly:    true,
	StyleMixed:        true,
	StyleUnknown:      true,
	StyleKickboard:    true,
	StylePull:         true,
}

func (s Style) ValidForActivity() bool {
	return activityStyles[s]
}

func (s Style) ValidForSegment() bool {
	return segmentStyles[s]
}

type Source string

const (
	SourceManual   Source = "manual"
	SourceWearable Source = "wearable"
)

// Activity is one normalized swim session. Immutable once normalized,
// distance in meters, duration in minutes.
type Activity struct {
	ID           int       `json:"id"`
	UserID       int       `json:"userId"`
	Date         time.Time `json:"date"`
	Distance     float64   `json:"distance"`
	Duration     float64   `json:"duration"`
	Style        Style     `json:"style"`
	AveragePace  float64   `json:"averagePace"`
	AvgHeartRate float64   `json:"avgHeartRate,omitempty"`
	StrokeRate   float64   `json:"strokeRate,omitempty"`
	Calories     float64   `json:"calories,omitempty"`
	GoalTag      string    `json:"goalTag,omitempty"`
	Source       Source    `json:"source"`
	Segments     []Segment `json:"segments,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Speed returns meters per minute, 0 for zero duration.
func (a Activity) Speed() float64 {
	if a.Duration == 0 {
		return 0
	}
	return a.Distance / a.Duration
}

// Segment is a sub-interval of a detailed session.
type Segment struct {
	Style     Style   `json:"style"`
	Distance  float64 `json:"distance"`
	Duration  float64 `json:"duration"`
	Laps      int     `json:"laps,omitempty"`
	Pace      float64 `json:"pace,omitempty"`
	HeartRate float64 `json:"heartRate,omitempty"`
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
