package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/swimstats/internal/auth"
	"github.com/2beens/swimstats/internal/config"
	"github.com/2beens/swimstats/internal/db"
	"github.com/2beens/swimstats/internal/middleware"
	"github.com/2beens/swimstats/internal/misc"
	"github.com/2beens/swimstats/internal/swim/achievements"
	"github.com/2beens/swimstats/internal/swim/activities"
	"github.com/2beens/swimstats/internal/swim/goals"
	"github.com/2beens/swimstats/internal/swim/recommend"
	"github.com/2beens/swimstats/internal/swim/wearable"
	"github.com/2beens/swimstats/internal/telemetry/metrics"
	"github.com/2beens/swimstats/internal/telemetry/tracing"
)

type Server struct {
	httpServer            *http.Server
	metricsHttpServer     *http.Server
	wearableWebhookSecret string // used by wearable vendors when pushing new activities
	versionInfo           string

	config       *config.Config
	dbPool       *pgxpool.Pool
	wearableFeed *wearable.HTTPFeed

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	WearableFeedAPIKey      string
	WearableWebhookSecret   string
	VersionInfo             string
	AdminUsername           string
	AdminPasswordHash       string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "swimstats_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("swimstats", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(&auth.Admin{
		Username:     params.AdminUsername,
		PasswordHash: params.AdminPasswordHash,
	}, auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "swimstats-backend")
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	feedBaseURLs := make(map[wearable.Provider]string)
	for _, provider := range []wearable.Provider{
		wearable.ProviderAppleHealth,
		wearable.ProviderGoogleFit,
		wearable.ProviderGarminConnect,
		wearable.ProviderFitbit,
		wearable.ProviderStrava,
	} {
		feedBaseURLs[provider] = fmt.Sprintf("%s/%s", params.Config.WearableFeedBaseURL, provider)
	}

	return &Server{
		config:                params.Config,
		dbPool:                dbPool,
		wearableWebhookSecret: params.WearableWebhookSecret,
		versionInfo:           params.VersionInfo,

		wearableFeed: wearable.NewHTTPFeed(
			feedBaseURLs,
			params.WearableFeedAPIKey,
			tracedHttpClient,
		),

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	catalog, err := achievements.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("load achievements catalog: %w", err)
	}

	activitiesRepo := activities.NewRepo(s.dbPool)

	achievementsService := achievements.NewService(
		catalog,
		achievements.NewRepo(s.dbPool),
		activitiesRepo,
	)
	achievementsHandler := achievements.NewHandler(achievementsService, catalog, s.metricsManager)
	r.HandleFunc("/achievements", achievementsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-achievements")
	r.HandleFunc("/achievements/unlocked", achievementsHandler.HandleListUnlocked).Methods("GET", "OPTIONS").Name("unlocked-achievements")
	r.HandleFunc("/achievements/check", achievementsHandler.HandleCheck).Methods("POST", "OPTIONS").Name("check-achievements")
	r.HandleFunc("/achievements/stats", achievementsHandler.HandleStats).Methods("GET", "OPTIONS").Name("achievements-stats")
	r.HandleFunc("/achievements/catalog", achievementsHandler.HandleCatalog).Methods("GET", "OPTIONS").Name("achievements-catalog")

	goalsService := goals.NewService(goals.NewRepo(s.dbPool), activitiesRepo, s.metricsManager)
	goalsHandler := goals.NewHandler(goalsService)
	r.HandleFunc("/goals", goalsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-goal")
	r.HandleFunc("/goals", goalsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-goals")
	r.HandleFunc("/goals/progress/update", goalsHandler.HandleUpdateProgress).Methods("POST", "OPTIONS").Name("update-goals-progress")
	r.HandleFunc("/goals/stats", goalsHandler.HandleStats).Methods("GET", "OPTIONS").Name("goals-stats")
	r.HandleFunc("/goals/{id}", goalsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-goal")
	r.HandleFunc("/goals/{id}", goalsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-goal")
	r.HandleFunc("/goals/{id}", goalsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-goal")

	// recommend service doubles as the cached profile invalidator for the
	// paths that mutate the activity history
	wearableRepo := wearable.NewRepo(s.dbPool)
	recommendService := recommend.NewService(
		recommend.NewRepo(s.dbPool),
		activitiesRepo,
		achievementsService,
		goalsService,
		wearableRepo,
		s.metricsManager,
	)

	activitiesHandler := activities.NewHandler(
		activitiesRepo,
		achievementsService,
		goalsService,
		recommendService,
		s.metricsManager,
	)
	r.HandleFunc("/swim", activitiesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-activity")
	r.HandleFunc("/swim/stats", activitiesHandler.HandleStats).Methods("GET", "OPTIONS").Name("activities-stats")
	r.HandleFunc("/swim/stats/styles", activitiesHandler.HandleStyleStats).Methods("GET", "OPTIONS").Name("styles-stats")
	r.HandleFunc("/swim/stats/weekly", activitiesHandler.HandleWeeklyStats).Methods("GET", "OPTIONS").Name("weekly-stats")
	r.HandleFunc("/swim/list/page/{page}/size/{size}", activitiesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-activities")
	r.HandleFunc("/swim/{id}", activitiesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-activity")
	r.HandleFunc("/swim/{id}", activitiesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-activity")

	wearableService := wearable.NewService(
		wearableRepo,
		s.wearableFeed,
		activitiesRepo,
		recommendService,
		s.metricsManager,
	)
	wearableHandler := wearable.NewHandler(wearableService, s.metricsManager)
	r.HandleFunc("/wearable/connect", wearableHandler.HandleConnect).Methods("POST", "OPTIONS").Name("connect-wearable")
	r.HandleFunc("/wearable/connections", wearableHandler.HandleConnections).Methods("GET", "OPTIONS").Name("list-wearables")
	r.HandleFunc("/wearable/sync", wearableHandler.HandleSync).Methods("POST", "OPTIONS").Name("sync-wearable")
	r.HandleFunc("/wearable/webhook", wearableHandler.HandleWebhook).Methods("POST", "OPTIONS").Name("wearable-webhook")
	r.HandleFunc("/wearable/stats/{provider}", wearableHandler.HandleStats).Methods("GET", "OPTIONS").Name("wearable-stats")
	r.HandleFunc("/wearable/{provider}", wearableHandler.HandleDisconnect).Methods("DELETE", "OPTIONS").Name("disconnect-wearable")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	recommendHandler := recommend.NewHandler(recommendService)
	recommendSubrouter := r.PathPrefix("/recommend").Subrouter()
	recommendSubrouter.HandleFunc("", recommendHandler.HandleRecommend).Methods("POST", "OPTIONS").Name("new-plan")
	recommendSubrouter.HandleFunc("", recommendHandler.HandleHistory).Methods("GET", "OPTIONS").Name("plans-history")
	recommendSubrouter.HandleFunc("/profile", recommendHandler.HandleProfile).Methods("GET", "OPTIONS").Name("user-profile")
	// plan synthesis reads the whole activity history, keep abusers away
	recommendSubrouter.Use(middleware.RateLimit(
		reqRateLimiter, "recommend", s.config.RecommendRateLimitPerMin, s.metricsManager,
	))

	miscHandler := misc.NewHandler(s.versionInfo, s.authService)
	miscHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimitAllowedPerMin)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(
		s.wearableWebhookSecret,
		s.loginChecker,
	)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
