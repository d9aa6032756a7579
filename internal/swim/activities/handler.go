package activities

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/swimstats/internal/swim"
	"github.com/2beens/swimstats/internal/swim/achievements"
	"github.com/2beens/swimstats/internal/telemetry/metrics"
	"github.com/2beens/swimstats/internal/telemetry/tracing"
	"github.com/2beens/swimstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=activities_mocks_test.go -package=activities_test

type activitiesRepo interface {
	Add(ctx context.Context, activity swim.Activity) (*swim.Activity, error)
	Get(ctx context.Context, id int) (*swim.Activity, error)
	List(ctx context.Context, params ListParams) (_ []swim.Activity, total int, err error)
	ListAll(ctx context.Context, params ListAllParams) ([]swim.Activity, error)
	Delete(ctx context.Context, id int) error
}

type achievementsChecker interface {
	CheckAndCreate(ctx context.Context, userID int) ([]achievements.Record, error)
}

type goalsUpdater interface {
	UpdateProgress(ctx context.Context, userID int) error
}

type profileInvalidator interface {
	InvalidateProfile(userID int)
}

type AddActivityResponse struct {
	swim.Activity
	Analysis        *SessionAnalysis      `json:"analysis,omitempty"`
	NewAchievements []achievements.Record `json:"newAchievements,omitempty"`
}

type ListResponse struct {
	Activities []swim.Activity `json:"activities"`
	Total      int             `json:"total"`
}

type DeleteActivityResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	repo         activitiesRepo
	analyzer     *Analyzer
	achievements achievementsChecker
	goals        goalsUpdater
	profiles     profileInvalidator
	metrics      *metrics.Manager
}

func NewHandler(
	repo activitiesRepo,
	achievementsChecker achievementsChecker,
	goalsUpdater goalsUpdater,
	profileInvalidator profileInvalidator,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:         repo,
		analyzer:     NewAnalyzer(repo),
		achievements: achievementsChecker,
		goals:        goalsUpdater,
		profiles:     profileInvalidator,
		metrics:      metricsManager,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID, err := pkg.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var input swim.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Tracef("new activity, unmarshal json params: %s", err)
		http.Error(w, "add activity failed", http.StatusBadRequest)
		return
	}

	input.UserID = userID
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	activity, err := swim.Normalize(input)
	if err != nil {
		var validationErr *swim.ValidationError
		if errors.As(err, &validationErr) {
			http.Error(w, validationErr.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to normalize new activity: %s", err)
		http.Error(w, "add activity failed", http.StatusBadRequest)
		return
	}

	addedActivity, err := handler.repo.Add(ctx, *activity)
	if err != nil {
		log.Errorf("failed to add new activity for user %d: %s", userID, err)
		http.Error(w, "error, failed to add new activity", http.StatusInternalServerError)
		return
	}
	handler.metrics.CounterActivitiesAdded.Inc()
	// a cached recommendation profile is stale now
	handler.profiles.InvalidateProfile(userID)

	response := AddActivityResponse{Activity: *addedActivity}

	// best-effort enrichment: failures are logged and never block the add
	analysis, err := handler.analyzer.AnalyzeSession(ctx, *addedActivity)
	if err != nil {
		log.Errorf("failed to analyze session %d: %s", addedActivity.ID, err)
	} else {
		response.Analysis = analysis
	}

	newAchievements, err := handler.achievements.CheckAndCreate(ctx, userID)
	if err != nil {
		log.Errorf("failed to check achievements for user %d: %s", userID, err)
	} else {
		response.NewAchievements = newAchievements
		handler.metrics.CounterAchievementsUnlocked.Add(float64(len(newAchievements)))
	}

	if err := handler.goals.UpdateProgress(ctx, userID); err != nil {
		log.Errorf("failed to update goal progress for user %d: %s", userID, err)
	}

	respJson, err := json.Marshal(response)
	if err != nil {
		log.Errorf("failed to marshal new activity: %s", err)
		http.Error(w, "error, failed to add new activity", http.StatusInternalServerError)
		return
	}

	log.Debugf("new activity added: %d [user %d]", addedActivity.ID, userID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.get")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	activity, err := handler.repo.Get(ctx, id)
	if err != nil {
		log.Errorf("failed to get activity %d: %s", id, err)
		http.Error(w, "activity not found", http.StatusBadRequest)
		return
	}

	activityJson, err := json.Marshal(activity)
	if err != nil {
		log.Errorf("failed to marshal activity: %s", err)
		http.Error(w, "failed to marshal activity", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, activityJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.list")
	defer span.End()

	userID, err := pkg.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		log.Tracef("handle list activities, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		log.Tracef("handle list activities, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	if page < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	activities, total, err := handler.repo.List(ctx, ListParams{
		UserID: userID,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		log.Errorf("failed to list activities for user %d: %s", userID, err)
		http.Error(w, "failed to list activities", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListResponse{
		Activities: activities,
		Total:      total,
	})
	if err != nil {
		log.Errorf("failed to marshal activities list: %s", err)
		http.Error(w, "failed to marshal activities list", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.delete")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	activity, err := handler.repo.Get(ctx, id)
	if err != nil && !errors.Is(err, swim.ErrActivityNotFound) {
		log.Errorf("failed to get activity %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, swim.ErrActivityNotFound) {
		log.Debugf("activity %d not found", id)
		http.Error(w, "activity not found", http.StatusNotFound)
		return
	}

	log.Debugf("deleting activity %d [user %d]", activity.ID, activity.UserID)

	if err := handler.repo.Delete(ctx, id); err != nil {
		log.Errorf("failed to delete activity %d: %s", id, err)
		http.Error(w, "activity not deleted", http.StatusInternalServerError)
		return
	}
	handler.profiles.InvalidateProfile(activity.UserID)

	deleteRespJson, err := json.Marshal(DeleteActivityResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.stats")
	defer span.End()

	userID, err := pkg.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	stats, err := handler.analyzer.UserStats(ctx, userID)
	if err != nil {
		log.Errorf("failed to get user stats for user %d: %s", userID, err)
		http.Error(w, "failed to get user stats", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal user stats: %s", err)
		http.Error(w, "failed to marshal user stats", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

func (handler *Handler) HandleStyleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.stylestats")
	defer span.End()

	userID, err := pkg.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	styleStats, err := handler.analyzer.StyleStats(ctx, userID)
	if err != nil {
		log.Errorf("failed to get style stats for user %d: %s", userID, err)
		http.Error(w, "failed to get style stats", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(styleStats)
	if err != nil {
		log.Errorf("failed to marshal style stats: %s", err)
		http.Error(w, "failed to marshal style stats", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

func (handler *Handler) HandleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.weeklystats")
	defer span.End()

	userID, err := pkg.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	weekly, err := handler.analyzer.WeeklyStats(ctx, userID)
	if err != nil {
		log.Errorf("failed to get weekly stats for user %d: %s", userID, err)
		http.Error(w, "failed to get weekly stats", http.StatusInternalServerError)
		return
	}

	weeklyJson, err := json.Marshal(weekly)
	if err != nil {
		log.Errorf("failed to marshal weekly stats: %s", err)
		http.Error(w, "failed to marshal weekly stats", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, weeklyJson, http.StatusOK)
}
