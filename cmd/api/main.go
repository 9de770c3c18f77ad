package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/analytics"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/auth"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/catalog"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/config"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/db"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/forecast"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/health"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/notify"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/obs"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/order"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/ratelimit"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/sales"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "nexgrow")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", true)
	if tracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "nexgrow-api",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			SamplingRatio: envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0),
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if metricsEnabled {
		if err := redisotel.InstrumentMetrics(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}

	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisOpts.Addr,
		Password: redisOpts.Password,
		DB:       redisOpts.DB,
	})
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close task client")
		}
	}()

	catalogSvc := catalog.NewService(catalog.NewRepo(pool), catalog.NewCache(redisClient, cfg.CatalogCacheTTL))
	catalogHandler := &catalog.Handler{Service: catalogSvc}
	catalogAdmin := &catalog.AdminHandler{Service: catalogSvc}

	salesSvc := sales.NewService(sales.NewRepo(pool))
	salesHandler := &sales.Handler{Service: salesSvc}
	salesAdmin := &sales.AdminHandler{Service: salesSvc}

	orderSvc := order.NewService(order.ServiceConfig{
		Repo:        order.NewRepo(pool),
		Sales:       salesSvc,
		Notifier:    &notify.Enqueuer{Client: taskClient},
		MaxDiscount: cfg.MaxOrderDiscountPct,
	})
	orderHandler := &order.Handler{Service: orderSvc}
	managerOrders := &order.ManagerHandler{Service: orderSvc}
	orderAdmin := &order.AdminHandler{Service: orderSvc}

	forecastSvc := forecast.NewService(forecast.NewRepo(pool), salesSvc)
	forecastHandler := &forecast.Handler{Service: forecastSvc}

	analyticsSvc := &analytics.Service{Q: analytics.NewRepo(pool), R: redisClient, TTL: cfg.AnalyticsCacheTTL}
	analyticsHandler := analytics.NewHandler(analyticsSvc)

	var verifier *auth.Verifier
	if cfg.AuthJWTSecret != "" {
		verifier = &auth.Verifier{
			Secret:   []byte(cfg.AuthJWTSecret),
			Issuer:   cfg.AuthIssuer,
			Audience: cfg.AuthAudience,
		}
	}
	authMW := auth.Middleware{
		Verifier:          verifier,
		Resolver:          salesSvc,
		AllowLegacyParams: true,
	}

	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}

	writeLimiter, err := ratelimit.New(redisClient, cfg.WriteRateLimit)
	if err != nil {
		logger.Fatal().Err(err).Str("rate", cfg.WriteRateLimit).Msg("configure rate limiter")
	}
	throttle := ratelimit.Middleware(writeLimiter)

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, nil, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.Headers{
		Enable:     envBool("SECURE_HEADERS", true),
		EnableHSTS: envBool("SECURE_HSTS", false),
	}.Middleware)
	r.Use(security.BodyLimit{Max: int64(envInt("SECURE_MAX_BODY_BYTES", 1<<20))}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	healthHandler := health.Handler{
		Checker:      health.Probes{Pool: pool, Redis: redisClient},
		DBTimeout:    envDurationMillis("HEALTH_READY_DB_TIMEOUT_MS", 500),
		RedisTimeout: envDurationMillis("HEALTH_READY_REDIS_TIMEOUT_MS", 300),
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Use(authMW.Identify)

		v.Route("/orders", func(o chi.Router) {
			o.Get("/products", catalogHandler.Products)
			o.Get("/products/{name}/packing", catalogHandler.Packing)
			o.Get("/products/{productID}/price", catalogHandler.Price)
			o.Get("/salesmen", salesHandler.Salesmen)
			o.Get("/dealers/{salesmanID}", salesHandler.Dealers)
			o.Get("/me", salesHandler.Me)

			o.Get("/", orderHandler.List)
			o.With(throttle, idem.Middleware).Post("/make-order", orderHandler.Create)

			o.Route("/manager", func(m chi.Router) {
				m.Use(authMW.RequireIdentity)
				m.Get("/orders", managerOrders.Orders)
				m.With(throttle).Put("/orders/{orderID}", managerOrders.Update)
			})

			o.Route("/admin", func(a chi.Router) {
				a.Use(authMW.RequireAdmin)
				a.Get("/orders", orderAdmin.Orders)
				a.Get("/salesmen", salesAdmin.ListSalesmen)
				a.Get("/discount-approvals", orderAdmin.DiscountApprovals)
				a.With(throttle).Post("/approve-discount/{orderID}", orderAdmin.ApproveDiscount)
				a.With(throttle).Post("/reject-discount/{orderID}", orderAdmin.RejectDiscount)
			})
		})

		v.Route("/forecasts", func(f chi.Router) {
			f.Use(authMW.RequireIdentity)
			f.Get("/", forecastHandler.Mine)
			f.With(throttle).Post("/", forecastHandler.Save)
		})

		v.Route("/admin", func(admin chi.Router) {
			admin.Use(authMW.RequireAdmin)

			admin.Get("/forecasts", forecastHandler.All)

			admin.Get("/products", catalogAdmin.List)
			admin.Get("/products/{productID}", catalogAdmin.Get)
			admin.Group(func(g chi.Router) {
				g.Use(throttle)
				g.Post("/products", catalogAdmin.Create)
				g.Put("/products/{productID}", catalogAdmin.Update)
				g.Delete("/products/{productID}", catalogAdmin.Delete)
			})

			admin.Get("/salesmen", salesAdmin.ListSalesmen)
			admin.Get("/sales-managers", salesAdmin.ListManagers)
			admin.Get("/directors", salesAdmin.ListDirectors)
			admin.Get("/dealers", salesAdmin.ListDealers)
			admin.Group(func(g chi.Router) {
				g.Use(throttle)
				g.Post("/salesmen", salesAdmin.CreateSalesman)
				g.Put("/salesmen/{salesmanID}", salesAdmin.UpdateSalesman)
				g.Delete("/salesmen/{salesmanID}", salesAdmin.DeleteSalesman)
				g.Post("/sales-managers", salesAdmin.CreateManager)
				g.Put("/sales-managers/{managerID}", salesAdmin.UpdateManager)
				g.Delete("/sales-managers/{managerID}", salesAdmin.DeleteManager)
				g.Post("/directors", salesAdmin.CreateDirector)
				g.Put("/directors/{directorID}", salesAdmin.UpdateDirector)
				g.Delete("/directors/{directorID}", salesAdmin.DeleteDirector)
				g.Post("/dealers", salesAdmin.CreateDealer)
				g.Put("/dealers/{dealerID}", salesAdmin.UpdateDealer)
				g.Delete("/dealers/{dealerID}", salesAdmin.DeleteDealer)
			})
		})

		v.With(authMW.RequireAdmin).Get("/analytics/overview", analyticsHandler.Overview)
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-shutdownCtx.Done()
		health.SetReady(false)
		drainCtx, drainCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer drainCancel()
		if err := srv.Shutdown(drainCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown server")
		}
	}()

	logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
	logger.Info().Msg("server shutdown complete")
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}
