package wearable

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/swimstats/internal/telemetry/metrics"
	"github.com/2beens/swimstats/internal/telemetry/tracing"
	"github.com/2beens/swimstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=wearable_test

type wearableService interface {
	Connect(ctx context.Context, userID int, provider Provider) (*Connection, error)
	Disconnect(ctx context.Context, userID int, provider Provider) error
	Connections(ctx context.Context, userID int) ([]Connection, error)
	Sync(ctx context.Context, userID int, provider Provider) (*SyncResult, error)
	Stats(ctx context.Context, userID int, provider Provider) (*Stats, error)
}

type ProviderRequest struct {
	Provider Provider `json:"provider"`
}

type WebhookRequest struct {
	UserID   int      `json:"userId"`
	Provider Provider `json:"provider"`
}

type Handler struct {
	service wearableService
	metrics *metrics.Manager
}

func NewHandler(service wearableService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metricsManager,
	}
}

func (handler *Handler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.wearable.connect")
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

	var req ProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("wearable connect, unmarshal json params: %s", err)
		http.Error(w, "connect failed", http.StatusBadRequest)
		return
	}

	conn, err := handler.service.Connect(ctx, userID, req.Provider)
	if err != nil {
		if errors.Is(err, ErrUnknownProvider) {
			http.Error(w, "error, unknown provider", http.StatusBadRequest)
			return
		}
		log.Errorf("failed to connect %s for user %d: %s", req.Provider, userID, err)
		http.Error(w, "error, failed to connect provider", http.StatusInternalServerError)
		return
	}

	connJson, err := json.Marshal(conn)
	if err != nil {
		log.Errorf("failed to marshal connection: %s", err)
		http.Error(w, "error, failed to connect provider", http.StatusInternalServerError)
		return
	}

	log.Debugf("wearable %s connected [user %d]", req.Provider, userID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, connJson, http.StatusCreated)
}

func (handler *Handler) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.wearable.disconnect")
	defer span.End()

	userID, err := pkg.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	provider := Provider(mux.Vars(r)["provider"])
	if !provider.Valid() {
		http.Error(w, "error, unknown provider", http.StatusBadRequest)
		return
	}

	if err := handler.service.Disconnect(ctx, userID, provider); err != nil {
		if errors.Is(err, ErrConnectionNotFound) {
			http.Error(w, "connection not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to disconnect %s for user %d: %s", provider, userID, err)
		http.Error(w, "failed to disconnect provider", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "disconnected")
}

func (handler *Handler) HandleConnections(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.wearable.connections")
	defer span.End()

	userID, err := pkg.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	connections, err := handler.service.Connections(ctx, userID)
	if err != nil {
		log.Errorf("failed to list connections for user %d: %s", userID, err)
		http.Error(w, "failed to list connections", http.StatusInternalServerError)
		return
	}
	if connections == nil {
		connections = []Connection{}
	}

	connectionsJson, err := json.Marshal(connections)
	if err != nil {
		log.Errorf("failed to marshal connections: %s", err)
		http.Error(w, "failed to marshal connections", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, connectionsJson, http.StatusOK)
}

func (handler *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.wearable.sync")
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

	var req ProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("wearable sync, unmarshal json params: %s", err)
		http.Error(w, "sync failed", http.StatusBadRequest)
		return
	}
	if !req.Provider.Valid() {
		http.Error(w, "error, unknown provider", http.StatusBadRequest)
		return
	}

	result, err := handler.service.Sync(ctx, userID, req.Provider)
	if err != nil {
		switch {
		case errors.Is(err, ErrConnectionNotFound):
			http.Error(w, "connection not found", http.StatusNotFound)
		case errors.Is(err, ErrNotConnected):
			http.Error(w, "provider not connected", http.StatusConflict)
		default:
			log.Errorf("failed to sync %s for user %d: %s", req.Provider, userID, err)
			http.Error(w, "sync failed", http.StatusInternalServerError)
		}
		return
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal sync result: %s", err)
		http.Error(w, "failed to marshal sync result", http.StatusInternalServerError)
		return
	}

	log.Debugf("wearable %s synced [user %d]: %d new", req.Provider, userID, result.NewActivities)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.wearable.stats")
	defer span.End()

	userID, err := pkg.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	provider := Provider(mux.Vars(r)["provider"])
	if !provider.Valid() {
		http.Error(w, "error, unknown provider", http.StatusBadRequest)
		return
	}

	stats, err := handler.service.Stats(ctx, userID, provider)
	if err != nil {
		log.Errorf("failed to get wearable stats for user %d: %s", userID, err)
		http.Error(w, "failed to get wearable stats", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal wearable stats: %s", err)
		http.Error(w, "failed to marshal wearable stats", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

// HandleWebhook receives provider push notifications and kicks a sync. The
// response body is always "synced", the middleware sends the same body for
// rejected callers so probes learn nothing.
func (handler *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.wearable.webhook")
	defer span.End()

	var req WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("wearable webhook, unmarshal json params: %s", err)
		pkg.WriteTextResponseOK(w, "synced")
		return
	}

	if req.UserID <= 0 || !req.Provider.Valid() {
		pkg.WriteTextResponseOK(w, "synced")
		return
	}

	if _, err := handler.service.Sync(ctx, req.UserID, req.Provider); err != nil {
		log.Errorf("webhook sync %s for user %d: %s", req.Provider, req.UserID, err)
	}

	pkg.WriteTextResponseOK(w, "synced")
}
