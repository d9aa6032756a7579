package achievements

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/swimstats/internal/telemetry/metrics"
	"github.com/2beens/swimstats/internal/telemetry/tracing"
	"github.com/2beens/swimstats/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=achievements_test

type achievementsService interface {
	CheckAndCreate(ctx context.Context, userID int) ([]Record, error)
	List(ctx context.Context, userID int) ([]Record, error)
	ListUnlocked(ctx context.Context, userID int) ([]Record, error)
	Stats(ctx context.Context, userID int) (*Stats, error)
}

// CatalogEntry is the JSON-safe view of a catalog definition.
type CatalogEntry struct {
	Type        Type    `json:"type"`
	Level       Level   `json:"level"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Target      float64 `json:"target"`
}

type CheckResponse struct {
	NewAchievements []Record `json:"newAchievements"`
}

type Handler struct {
	service achievementsService
	catalog *Catalog
	metrics *metrics.Manager
}

func NewHandler(service achievementsService, catalog *Catalog, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		catalog: catalog,
		metrics: metricsManager,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.list")
	defer span.End()

	userID, err := pkg.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	records, err := handler.service.List(ctx, userID)
	if err != nil {
		log.Errorf("failed to list achievements for user %d: %s", userID, err)
		http.Error(w, "failed to list achievements", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []Record{}
	}

	recordsJson, err := json.Marshal(records)
	if err != nil {
		log.Errorf("failed to marshal achievements: %s", err)
		http.Error(w, "failed to marshal achievements", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recordsJson, http.StatusOK)
}

func (handler *Handler) HandleListUnlocked(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.listunlocked")
	defer span.End()

	userID, err := pkg.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	records, err := handler.service.ListUnlocked(ctx, userID)
	if err != nil {
		log.Errorf("failed to list unlocked achievements for user %d: %s", userID, err)
		http.Error(w, "failed to list unlocked achievements", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []Record{}
	}

	recordsJson, err := json.Marshal(records)
	if err != nil {
		log.Errorf("failed to marshal unlocked achievements: %s", err)
		http.Error(w, "failed to marshal unlocked achievements", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recordsJson, http.StatusOK)
}

func (handler *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.check")
	defer span.End()

	userID, err := pkg.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	newAchievements, err := handler.service.CheckAndCreate(ctx, userID)
	if err != nil {
		log.Errorf("failed to check achievements for user %d: %s", userID, err)
		http.Error(w, "failed to check achievements", http.StatusInternalServerError)
		return
	}
	handler.metrics.CounterAchievementsUnlocked.Add(float64(len(newAchievements)))
	if newAchievements == nil {
		newAchievements = []Record{}
	}

	respJson, err := json.Marshal(CheckResponse{
		NewAchievements: newAchievements,
	})
	if err != nil {
		log.Errorf("failed to marshal check response: %s", err)
		http.Error(w, "failed to marshal check response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.stats")
	defer span.End()

	userID, err := pkg.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	stats, err := handler.service.Stats(ctx, userID)
	if err != nil {
		log.Errorf("failed to get achievement stats for user %d: %s", userID, err)
		http.Error(w, "failed to get achievement stats", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal achievement stats: %s", err)
		http.Error(w, "failed to marshal achievement stats", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

func (handler *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.catalog")
	defer span.End()

	entries := make([]CatalogEntry, 0, len(handler.catalog.Definitions()))
	for _, def := range handler.catalog.Definitions() {
		entries = append(entries, CatalogEntry{
			Type:        def.Type,
			Level:       def.Level,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			Target:      def.Target,
		})
	}

	entriesJson, err := json.Marshal(entries)
	if err != nil {
		log.Errorf("failed to marshal achievement catalog: %s", err)
		http.Error(w, "failed to marshal achievement catalog", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entriesJson, http.StatusOK)
}
