package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/history"
	"github.com/2beens/liftlog/internal/middleware"
	"github.com/2beens/liftlog/internal/sets"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/templates"
	"github.com/2beens/liftlog/internal/users"
	"github.com/2beens/liftlog/internal/workouts"
	"github.com/2beens/liftlog/pkg"

	pgxpoolprometheus "github.com/IBM/pgxpoolprometheus"
	"github.com/coreos/go-oidc/v3/oidc"
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
	"go.uber.org/multierr"
)

const sessionsCleanupInterval = 30 * time.Minute

type Server struct {
	config            *config.Config
	httpServer        *http.Server
	metricsHttpServer *http.Server

	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	authService    *auth.Service
	sessionChecker *auth.SessionChecker

	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()

	versionInfo string
}

type NewServerParams struct {
	Config        *config.Config
	AppSecretHash string
	RedisPassword string
	// HoneycombTracingEnabled turns the otel pipeline on; requires the
	// honeycomb env vars to be set.
	HoneycombTracingEnabled bool
	VersionInfo             string
}

func NewServer(ctx context.Context, params NewServerParams) (*Server, error) {
	cfg := params.Config

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	log.Debugln("redis connected")

	otelShutdown, err := tracing.HoneycombSetup(
		params.HoneycombTracingEnabled,
		"liftlog-backend",
		redisClient,
	)
	if err != nil {
		return nil, fmt.Errorf("honeycomb setup: %w", err)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}
	log.Debugln("db pool connected")

	dbPoolCollector := pgxpoolprometheus.NewCollector(dbPool, map[string]string{"db_name": cfg.PostgresDBName})
	promRegistry := metrics.SetupPrometheus(dbPoolCollector)
	metricsManager := metrics.NewManager("backend", "liftlog", promRegistry)

	var verifier auth.IDTokenVerifier
	if cfg.OIDCIssuerURL != "" {
		providerCtx := oidc.ClientContext(ctx, &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		})
		provider, err := oidc.NewProvider(providerCtx, cfg.OIDCIssuerURL)
		if err != nil {
			return nil, fmt.Errorf("new oidc provider: %w", err)
		}
		verifier = provider.Verifier(&oidc.Config{ClientID: cfg.OIDCClientID})
		log.Debugf("oidc provider configured: %s", cfg.OIDCIssuerURL)
	} else {
		log.Warnln("oidc issuer not set, id token login disabled")
	}

	usersRepo := users.NewRepo(dbPool)
	authService := auth.NewService(verifier, usersRepo, params.AppSecretHash, auth.DefaultTTL, redisClient)
	sessionChecker := auth.NewSessionChecker(auth.DefaultTTL, redisClient)

	s := &Server{
		config:         cfg,
		dbPool:         dbPool,
		redisClient:    redisClient,
		authService:    authService,
		sessionChecker: sessionChecker,
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
		versionInfo:    params.VersionInfo,
	}

	router := s.routerSetup()
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  30 * time.Second,
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	router := mux.NewRouter()
	router.Use(otelmux.Middleware("liftlog-backend"))

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	rateLimiter := redis_rate.NewLimiter(s.redisClient)
	loginAllowedPerMin := s.config.LoginRateLimitAllowedPerMin
	if loginAllowedPerMin <= 0 {
		loginAllowedPerMin = 10
	}

	authHandler := auth.NewHandler(s.authService, s.metricsManager)
	authHandler.SetupRoutes(
		router,
		middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, s.metricsManager),
	)

	usersRepo := users.NewRepo(s.dbPool)
	users.NewHandler(usersRepo).SetupRoutes(router)

	cacheSize := s.config.TemplatesCacheSizeBytes
	if cacheSize <= 0 {
		cacheSize = 10 * 1024 * 1024
	}
	cacheTTL := s.config.TemplatesCacheTTLSeconds
	if cacheTTL <= 0 {
		cacheTTL = 300
	}
	templatesRepo := templates.NewCachedRepo(templates.NewRepo(s.dbPool), cacheSize, cacheTTL)
	historyRepo := history.NewRepo(s.dbPool)

	templates.NewHandler(templatesRepo, historyRepo).SetupRoutes(router)
	sets.NewHandler(sets.NewRepo(s.dbPool), s.metricsManager).SetupRoutes(router)
	workouts.NewHandler(workouts.NewRepo(s.dbPool), templatesRepo, s.metricsManager).SetupRoutes(router)
	history.NewHandler(historyRepo, history.NewAnalyzer(historyRepo), s.metricsManager).SetupRoutes(router)

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.sessionChecker)
	router.Use(
		middleware.PanicRecovery(s.metricsManager),
		middleware.LogRequest(),
		middleware.RequestMetrics(s.metricsManager),
		middleware.Cors(),
		authMiddleware.AuthCheck(),
		middleware.DrainAndCloseRequest(),
	)

	return router
}

func (s *Server) Serve(ctx context.Context) {
	metricsAddr := fmt.Sprintf("%s:%s", s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr: metricsAddr,
		Handler: promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{
			Registry: s.promRegistry,
		}),
	}
	go func() {
		log.Infof("prometheus metrics server listening on: %s", metricsAddr)
		if err := s.metricsHttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server: %s", err)
		}
	}()

	go s.sessionsCleanup(ctx)

	s.metricsManager.GaugeLifeSignal.Set(1)

	log.Infof(" > server [%s] listening on: [%s]", s.versionInfo, s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server listen and serve: %s", err)
	}
}

func (s *Server) sessionsCleanup(ctx context.Context) {
	ticker := time.NewTicker(sessionsCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.authService.ScanAndClean(ctx)
		}
	}
}

func (s *Server) GracefulShutdown() {
	log.Debugln("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var shutdownErr error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("http server shutdown: %w", err))
	}
	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
	}

	if err := s.redisClient.Close(); err != nil {
		shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("redis close: %w", err))
	}

	s.dbPool.Close()

	sentry.Flush(2 * time.Second)

	if shutdownErr != nil {
		log.Errorf("graceful shutdown: %s", shutdownErr)
	}
	log.Warnln("server shut down")
}
