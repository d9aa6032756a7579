package wearable

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/swimstats/internal/swim"
	"github.com/2beens/swimstats/internal/telemetry/metrics"
	"github.com/2beens/swimstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=wearable_test

type wearableRepo interface {
	UpsertConnection(ctx context.Context, conn Connection) (*Connection, error)
	GetConnection(ctx context.Context, userID int, provider Provider) (*Connection, error)
	ListConnections(ctx context.Context, userID int) ([]Connection, error)
	SetConnectionStatus(ctx context.Context, userID int, provider Provider, status ConnectionStatus) error
	AddData(ctx context.Context, data Data) (*Data, bool, error)
	MarkProcessed(ctx context.Context, dataID, activityID int) error
	ListData(ctx context.Context, userID int, provider Provider) ([]Data, error)
}

// Feed pulls raw activities from a provider, everything since the given time.
type Feed interface {
	FetchActivities(ctx context.Context, userID int, provider Provider, since time.Time) ([]FeedActivity, error)
}

type activitySink interface {
	Add(ctx context.Context, activity swim.Activity) (*swim.Activity, error)
}

type profileInvalidator interface {
	InvalidateProfile(userID int)
}

type Service struct {
	repo       wearableRepo
	feed       Feed
	activities activitySink
	profiles   profileInvalidator
	metrics    *metrics.Manager
	nowFunc    func() time.Time
}

func NewService(
	repo wearableRepo,
	feed Feed,
	activities activitySink,
	profileInvalidator profileInvalidator,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:       repo,
		feed:       feed,
		activities: activities,
		profiles:   profileInvalidator,
		metrics:    metricsManager,
		nowFunc:    time.Now,
	}
}

func (s *Service) Connect(ctx context.Context, userID int, provider Provider) (_ *Connection, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.wearable.connect")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("provider", string(provider)))

	if !provider.Valid() {
		return nil, ErrUnknownProvider
	}

	return s.repo.UpsertConnection(ctx, Connection{
		UserID:     userID,
		Provider:   provider,
		Status:     StatusConnected,
		LastSyncAt: s.nowFunc(),
	})
}

func (s *Service) Disconnect(ctx context.Context, userID int, provider Provider) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.wearable.disconnect")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("provider", string(provider)))

	return s.repo.SetConnectionStatus(ctx, userID, provider, StatusDisconnected)
}

func (s *Service) Connections(ctx context.Context, userID int) ([]Connection, error) {
	return s.repo.ListConnections(ctx, userID)
}

// Sync pulls the provider feed and converts swim activities into regular
// training records. Non-swim entries are skipped, broken entries are
// collected into the result and never abort the rest of the batch.
func (s *Service) Sync(ctx context.Context, userID int, provider Provider) (_ *SyncResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.wearable.sync")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))
	span.SetAttributes(attribute.String("provider", string(provider)))

	conn, err := s.repo.GetConnection(ctx, userID, provider)
	if err != nil {
		return nil, err
	}
	if conn.Status != StatusConnected {
		return nil, ErrNotConnected
	}

	feedActivities, err := s.feed.FetchActivities(ctx, userID, provider, conn.LastSyncAt)
	if err != nil {
		if statusErr := s.repo.SetConnectionStatus(ctx, userID, provider, StatusError); statusErr != nil {
			err = multierr.Append(err, statusErr)
		}
		return nil, fmt.Errorf("fetch activities: %w", err)
	}

	result := &SyncResult{
		Provider:        provider,
		TotalActivities: len(feedActivities),
		SyncTime:        s.nowFunc(),
	}

	for _, feedActivity := range feedActivities {
		if !isSwimming(feedActivity.Type) {
			result.SkippedActivities++
			continue
		}
		if err := s.processFeedActivity(ctx, userID, provider, feedActivity); err != nil {
			log.Errorf("wearable sync, process %s [%s]: %s", feedActivity.ExternalID, provider, err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", feedActivity.ExternalID, err))
			continue
		}
		result.NewActivities++
	}

	if _, err := s.repo.UpsertConnection(ctx, Connection{
		UserID:     userID,
		Provider:   provider,
		Status:     StatusConnected,
		LastSyncAt: result.SyncTime,
	}); err != nil {
		return nil, fmt.Errorf("refresh connection: %w", err)
	}

	if result.NewActivities > 0 {
		// synced records changed the history behind cached profiles
		s.profiles.InvalidateProfile(userID)
	}

	s.metrics.CounterWearableSyncs.Inc()
	span.SetAttributes(attribute.Int("sync.new", result.NewActivities))
	return result, nil
}

func (s *Service) processFeedActivity(ctx context.Context, userID int, provider Provider, feedActivity FeedActivity) error {
	activity, err := swim.Normalize(swim.Input{
		UserID:          userID,
		Date:            feedActivity.StartTime,
		Distance:        feedActivity.Distance,
		DurationSeconds: feedActivity.DurationSeconds,
		Style:           styleOf(feedActivity.Style),
		AvgHeartRate:    feedActivity.AvgHeartRate,
		StrokeRate:      feedActivity.StrokeRate,
		Calories:        feedActivity.Calories,
		Source:          swim.SourceWearable,
	})
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}

	data, isNew, err := s.repo.AddData(ctx, Data{
		UserID:       userID,
		Provider:     provider,
		ExternalID:   feedActivity.ExternalID,
		StartTime:    feedActivity.StartTime,
		Duration:     activity.Duration,
		Distance:     activity.Distance,
		Style:        activity.Style,
		AvgHeartRate: feedActivity.AvgHeartRate,
		StrokeRate:   feedActivity.StrokeRate,
		Calories:     feedActivity.Calories,
	})
	if err != nil {
		return fmt.Errorf("store wearable data: %w", err)
	}
	if !isNew {
		return fmt.Errorf("already synced")
	}

	addedActivity, err := s.activities.Add(ctx, *activity)
	if err != nil {
		return fmt.Errorf("add activity: %w", err)
	}

	if err := s.repo.MarkProcessed(ctx, data.ID, addedActivity.ID); err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	return nil
}

// Stats sums up what a single provider delivered for a user.
func (s *Service) Stats(ctx context.Context, userID int, provider Provider) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.wearable.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	dataRows, err := s.repo.ListData(ctx, userID, provider)
	if err != nil {
		return nil, fmt.Errorf("list wearable data: %w", err)
	}

	stats := &Stats{
		Provider:        provider,
		TotalActivities: len(dataRows),
	}
	if len(dataRows) == 0 {
		return stats, nil
	}

	var sumHeartRate, sumStrokeRate float64
	var heartRateCount, strokeRateCount int
	styleCounts := make(map[swim.Style]int)
	var lastActivity time.Time
	for _, d := range dataRows {
		stats.TotalDistance += d.Distance
		stats.TotalDuration += d.Duration
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
		if d.StartTime.After(lastActivity) {
			lastActivity = d.StartTime
		}
	}
	if heartRateCount > 0 {
		stats.AvgHeartRate = sumHeartRate / float64(heartRateCount)
	}
	if strokeRateCount > 0 {
		stats.AvgStrokeRate = sumStrokeRate / float64(strokeRateCount)
	}

	stats.MostUsedStyle = swim.StyleUnknown
	var maxCount int
	for _, style := range []swim.Style{
		swim.StyleFreestyle, swim.StyleBackstroke, swim.StyleBreaststroke,
		swim.StyleButterfly, swim.StyleMixed,
	} {
		if styleCounts[style] > maxCount {
			maxCount = styleCounts[style]
			stats.MostUsedStyle = style
		}
	}
	if !lastActivity.IsZero() {
		stats.LastActivityDate = &lastActivity
	}

	return stats, nil
}

func isSwimming(activityType string) bool {
	switch strings.ToLower(activityType) {
	case "swimming", "swim", "pool_swimming", "open_water_swimming":
		return true
	}
	return false
}

var feedStyles = map[string]swim.Style{
	"freestyle":    swim.StyleFreestyle,
	"backstroke":   swim.StyleBackstroke,
	"breaststroke": swim.StyleBreaststroke,
	"butterfly":    swim.StyleButterfly,
	"mixed":        swim.StyleMixed,
	"medley":       swim.StyleMixed,
}

func styleOf(feedStyle string) swim.Style {
	if style, ok := feedStyles[strings.ToLower(feedStyle)]; ok {
		return style
	}
	return swim.StyleUnknown
}
