package wearable

import (
	"errors"
	"time"

	"github.com/2beens/swimstats/internal/swim"
)

var (
	ErrConnectionNotFound = errors.New("wearable connection not found")
	ErrNotConnected       = errors.New("wearable provider not connected")
	ErrUnknownProvider    = errors.New("unknown wearable provider")
)

type Provider string

const (
	ProviderAppleHealth   Provider = "apple_health"
	ProviderGoogleFit     Provider = "google_fit"
	ProviderGarminConnect Provider = "garmin_connect"
	ProviderFitbit        Provider = "fitbit"
	ProviderStrava        Provider = "strava"
)

var knownProviders = map[Provider]bool{
	ProviderAppleHealth:   true,
	ProviderGoogleFit:     true,
	ProviderGarminConnect: true,
	ProviderFitbit:        true,
	ProviderStrava:        true,
}

func (p Provider) Valid() bool {
	return knownProviders[p]
}

type ConnectionStatus string

const (
	StatusConnected    ConnectionStatus = "connected"
	StatusDisconnected ConnectionStatus = "disconnected"
	StatusError        ConnectionStatus = "error"
)

type Connection struct {
	ID         int              `json:"id"`
	UserID     int              `json:"userId"`
	Provider   Provider         `json:"provider"`
	Status     ConnectionStatus `json:"status"`
	LastSyncAt time.Time        `json:"lastSyncAt"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// FeedActivity is a raw activity as delivered by a provider feed. Durations
// come in seconds, swim distances in meters.
type FeedActivity struct {
	ExternalID      string    `json:"externalId"`
	Type            string    `json:"type"`
	StartTime       time.Time `json:"startTime"`
	DurationSeconds float64   `json:"durationSeconds"`
	Distance        float64   `json:"distance"`
	Style           string    `json:"style"`
	AvgHeartRate    float64   `json:"avgHeartRate"`
	StrokeRate      float64   `json:"strokeRate"`
	Calories        float64   `json:"calories"`
}

// Data is a stored wearable record, linked to the activity it produced once
// processed.
type Data struct {
	ID           int       `json:"id"`
	UserID       int       `json:"userId"`
	Provider     Provider  `json:"provider"`
	ExternalID   string    `json:"externalId"`
	StartTime    time.Time `json:"startTime"`
	Duration     float64   `json:"duration"`
	Distance     float64   `json:"distance"`
	Style        swim.Style `json:"style"`
	AvgHeartRate float64   `json:"avgHeartRate"`
	StrokeRate   float64   `json:"strokeRate"`
	Calories     float64   `json:"calories"`
	Processed    bool      `json:"processed"`
	ActivityID   int       `json:"activityId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type SyncResult struct {
	Provider          Provider  `json:"provider"`
	TotalActivities   int       `json:"totalActivities"`
	NewActivities     int       `json:"newActivities"`
	SkippedActivities int       `json:"skippedActivities"`
	Errors            []string  `json:"errors,omitempty"`
	SyncTime          time.Time `json:"syncTime"`
}

type Stats struct {
	Provider         Provider   `json:"provider"`
	TotalActivities  int        `json:"totalActivities"`
	TotalDistance    float64    `json:"totalDistance"`
	TotalDuration    float64    `json:"totalDuration"`
	AvgHeartRate     float64    `json:"avgHeartRate"`
	AvgStrokeRate    float64    `json:"avgStrokeRate"`
	MostUsedStyle    swim.Style `json:"mostUsedStyle"`
	LastActivityDate *time.Time `json:"lastActivityDate,omitempty"`
}
