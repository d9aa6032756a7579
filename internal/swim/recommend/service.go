package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/swimstats/internal/swim"
	"github.com/2beens/swimstats/internal/swim/achievements"
	"github.com/2beens/swimstats/internal/swim/goals"
	"github.com/2beens/swimstats/internal/swim/wearable"
	"github.com/2beens/swimstats/internal/telemetry/metrics"
	"github.com/2beens/swimstats/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=recommend_test

type plansRepo interface {
	Add(ctx context.Context, plan TrainingPlan) (*TrainingPlan, error)
	ListByUser(ctx context.Context, userID int) ([]TrainingPlan, error)
}

type activitySource interface {
	ListUserActivities(ctx context.Context, userID int) ([]swim.Activity, error)
}

type achievementsSource interface {
	List(ctx context.Context, userID int) ([]achievements.Record, error)
}

type goalsSource interface {
	List(ctx context.Context, userID int) ([]goals.Goal, error)
}

type wearableSource interface {
	ListUserData(ctx context.Context, userID int) ([]wearable.Data, error)
}

const (
	profileCacheSizeBytes = 10 * 1024 * 1024
	profileCacheTTL       = 5 * 60 // seconds
)

type Service struct {
	repo         plansRepo
	activities   activitySource
	achievements achievementsSource
	goals        goalsSource
	wearable     wearableSource
	cache        *freecache.Cache
	metrics      *metrics.Manager
	nowFunc      func() time.Time
}

func NewService(
	repo plansRepo,
	activities activitySource,
	achievementsSource achievementsSource,
	goalsSource goalsSource,
	wearableSource wearableSource,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:         repo,
		activities:   activities,
		achievements: achievementsSource,
		goals:        goalsSource,
		wearable:     wearableSource,
		cache:        freecache.NewCache(profileCacheSizeBytes),
		metrics:      metricsManager,
		nowFunc:      time.Now,
	}
}

// BuildProfile recomputes the user profile from the merged activity history.
// Profiles are cached briefly since one app session tends to request several
// recommendations in a row.
func (s *Service) BuildProfile(ctx context.Context, userID int) (_ *UserProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.recommend.buildprofile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))

	cacheKey := []byte(fmt.Sprintf("profile::%d", userID))
	if profileBytes, err := s.cache.Get(cacheKey); err == nil {
		var profile UserProfile
		if err := json.Unmarshal(profileBytes, &profile); err == nil {
			log.Tracef("profile for user %d served from cache", userID)
			return &profile, nil
		}
		log.Errorf("failed to unmarshal cached profile for user %d: %s", userID, err)
	}

	activities, err := s.activities.ListUserActivities(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	profile := profileOf(userID, swim.AggregateAt(s.nowFunc(), activities))

	userAchievements, err := s.achievements.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	profile.Achievements = userAchievements

	userGoals, err := s.goals.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	for _, goal := range userGoals {
		profile.Goals = append(profile.Goals, goal.Title)
	}

	wearableData, err := s.wearable.ListUserData(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wearable data: %w", err)
	}
	profile.Wearable = wearableProfileOf(wearableData)

	if profileBytes, err := json.Marshal(profile); err == nil {
		if err := s.cache.Set(cacheKey, profileBytes, profileCacheTTL); err != nil {
			log.Errorf("failed to cache profile for user %d: %s", userID, err)
		}
	}

	return &profile, nil
}

// Recommend builds the profile, synthesizes a plan and stores it in the plan
// history. Plan synthesis itself never fails.
func (s *Service) Recommend(ctx context.Context, userID int, req PlanRequest) (_ *TrainingPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.recommend.recommend")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", userID))
	span.SetAttributes(attribute.String("goal", string(req.Goal)))

	profile, err := s.BuildProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("build profile: %w", err)
	}

	plan := Synthesize(*profile, req)

	addedPlan, err := s.repo.Add(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("store plan: %w", err)
	}

	s.metrics.CounterPlansGenerated.Inc()
	span.SetAttributes(attribute.String("plan.difficulty", string(addedPlan.Difficulty)))
	return addedPlan, nil
}

func (s *Service) History(ctx context.Context, userID int) ([]TrainingPlan, error) {
	return s.repo.ListByUser(ctx, userID)
}

// InvalidateProfile drops the cached profile. Called whenever the activity
// history behind it changes, so the next build recomputes from fresh data.
func (s *Service) InvalidateProfile(userID int) {
	s.cache.Del([]byte(fmt.Sprintf("profile::%d", userID)))
}
