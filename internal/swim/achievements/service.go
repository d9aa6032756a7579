package achievements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/swimstats/internal/swim"
	"github.com/2beens/swimstats/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=achievements_test

type achievementsRepo interface {
	Get(ctx context.Context, userID int, achievementType Type, level Level) (*Record, error)
	Upsert(ctx context.Context, rec Record) (*Record, error)
	ListByUser(ctx context.Context, userID int) ([]Record, error)
	ListUnlocked(ctx context.Context, userID int) ([]Record, error)
}

type activitySource interface {
	ListUserActivities(ctx context.Context, userID int) ([]swim.Activity, error)
}

type Service struct {
	catalog    *Catalog
	repo       achievementsRepo
	activities activitySource
	nowFunc    func() time.Time
}

func NewService(catalog *Catalog, repo achievementsRepo, activities activitySource) *Service {
	return &Service{
		catalog:    catalog,
		repo:       repo,
		activities: activities,
		nowFunc:    time.Now,
	}
}

// CheckAndCreate evaluates the whole catalog against the user's history and
// upserts the per-user records. It returns only the records that transitioned
// to unlocked in this call; already-unlocked achievements are skipped and
// keep their unlockedAt.
func (s *Service) CheckAndCreate(ctx context.Context, userID int) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.achievements.checkandcreate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	activities, err := s.activities.ListUserActivities(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	if len(activities) == 0 {
		return nil, nil
	}

	stats := swim.AggregateAt(s.nowFunc(), activities)

	var newlyUnlocked []Record
	for _, def := range s.catalog.Definitions() {
		existing, err := s.repo.Get(ctx, userID, def.Type, def.Level)
		if err != nil && !errors.Is(err, ErrAchievementNotFound) {
			return nil, fmt.Errorf("get achievement %s/%s: %w", def.Type, def.Level, err)
		}
		if existing != nil && existing.IsUnlocked {
			continue
		}

		progress := def.Progress(stats)
		unlocked := progress >= def.Target

		rec := Record{
			UserID:      userID,
			Type:        def.Type,
			Level:       def.Level,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			Progress:    progress,
			Target:      def.Target,
			IsUnlocked:  unlocked,
		}
		if unlocked {
			now := s.nowFunc()
			rec.UnlockedAt = &now
		}

		saved, err := s.repo.Upsert(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("upsert achievement %s/%s: %w", def.Type, def.Level, err)
		}

		if unlocked {
			newlyUnlocked = append(newlyUnlocked, *saved)
		}
	}

	return newlyUnlocked, nil
}

func (s *Service) List(ctx context.Context, userID int) ([]Record, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListUnlocked(ctx context.Context, userID int) ([]Record, error) {
	return s.repo.ListUnlocked(ctx, userID)
}

func (s *Service) Stats(ctx context.Context, userID int) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.achievements.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}

	stats := &Stats{
		TotalAchievements: len(records),
	}
	for _, rec := range records {
		if !rec.IsUnlocked {
			continue
		}
		stats.UnlockedAchievements++
		switch rec.Level {
		case LevelBronze:
			stats.LevelStats.Bronze++
		case LevelSilver:
			stats.LevelStats.Silver++
		case LevelGold:
			stats.LevelStats.Gold++
		case LevelPlatinum:
			stats.LevelStats.Platinum++
		}
	}
	if stats.TotalAchievements > 0 {
		stats.CompletionRate = float64(stats.UnlockedAchievements) / float64(stats.TotalAchievements) * 100
	}

	return stats, nil
}
