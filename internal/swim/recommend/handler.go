package recommend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/swimstats/internal/telemetry/tracing"
	"github.com/2beens/swimstats/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=recommend_test

type recommendService interface {
	BuildProfile(ctx context.Context, userID int) (*UserProfile, error)
	Recommend(ctx context.Context, userID int, req PlanRequest) (*TrainingPlan, error)
	History(ctx context.Context, userID int) ([]TrainingPlan, error)
}

type Handler struct {
	service recommendService
}

func NewHandler(service recommendService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recommend.recommend")
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

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("recommend, unmarshal json params: %s", err)
		http.Error(w, "recommend failed", http.StatusBadRequest)
		return
	}

	plan, err := handler.service.Recommend(ctx, userID, req)
	if err != nil {
		log.Errorf("failed to recommend for user %d: %s", userID, err)
		http.Error(w, "failed to generate plan", http.StatusInternalServerError)
		return
	}

	planJson, err := json.Marshal(plan)
	if err != nil {
		log.Errorf("failed to marshal plan: %s", err)
		http.Error(w, "failed to marshal plan", http.StatusInternalServerError)
		return
	}

	log.Debugf("new plan generated: %d [user %d, %s]", plan.ID, userID, plan.Difficulty)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, planJson, http.StatusCreated)
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recommend.history")
	defer span.End()

	userID, err := pkg.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	plans, err := handler.service.History(ctx, userID)
	if err != nil {
		log.Errorf("failed to get plan history for user %d: %s", userID, err)
		http.Error(w, "failed to get plan history", http.StatusInternalServerError)
		return
	}
	if plans == nil {
		plans = []TrainingPlan{}
	}

	plansJson, err := json.Marshal(plans)
	if err != nil {
		log.Errorf("failed to marshal plan history: %s", err)
		http.Error(w, "failed to marshal plan history", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, plansJson, http.StatusOK)
}

func (handler *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recommend.profile")
	defer span.End()

	userID, err := pkg.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	profile, err := handler.service.BuildProfile(ctx, userID)
	if err != nil {
		log.Errorf("failed to build profile for user %d: %s", userID, err)
		http.Error(w, "failed to build profile", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(profile)
	if err != nil {
		log.Errorf("failed to marshal profile: %s", err)
		http.Error(w, "failed to marshal profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, profileJson, http.StatusOK)
}
