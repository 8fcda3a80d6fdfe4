package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voxlink-ai/voxlink/internal/api/handlers"
	mw "github.com/voxlink-ai/voxlink/internal/api/middleware"
	"github.com/voxlink-ai/voxlink/internal/config"
	"github.com/voxlink-ai/voxlink/internal/domain"
	"github.com/voxlink-ai/voxlink/internal/remote"
	"github.com/voxlink-ai/voxlink/internal/service"
	"github.com/voxlink-ai/voxlink/internal/store"
	"go.uber.org/zap"
)

// App holds the router and request metrics.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(db *pgxpool.Pool, gateway domain.GatewayFactory, logger *zap.Logger) *App {
	// Stores
	tenantStore := store.NewTenantStore(db)
	agentStore := store.NewAgentStore(db)

	// Services
	syncSvc := service.NewSyncService(agentStore, logger)
	statusSvc := service.NewStatusService(agentStore)

	// Handlers
	tenantHandler := handlers.NewTenantHandler(tenantStore)
	agentHandler := handlers.NewAgentHandler(syncSvc, gateway)
	syncHandler := handlers.NewSyncHandler(syncSvc, statusSvc, gateway)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(chimw.Recoverer)

	// Health (no auth)
	r.Get("/health", healthHandler(db))

	// Metrics (no auth)
	r.Get("/metrics", app.metricsHandler())

	// Tenant creation (no auth, bootstrap endpoint, IP-keyed rate limit)
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))
		r.Post("/v1/tenants", tenantHandler.Create)
	})

	// Authenticated routes. Auth runs before the rate limiter so requests
	// are keyed by tenant, not by proxy IP.
	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(tenantStore))
		r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

		r.Route("/agents", func(r chi.Router) {
			r.Post("/", agentHandler.Create)
			r.Get("/", agentHandler.List)
			r.Post("/import", syncHandler.Import)
			r.Get("/by-remote/{remoteId}", agentHandler.GetByRemoteID)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", agentHandler.GetByID)
				r.Patch("/", agentHandler.Update)
				r.Delete("/", agentHandler.Delete)
			})
		})

		r.Route("/sync", func(r chi.Router) {
			r.Post("/", syncHandler.SyncAll)
			r.Get("/status", syncHandler.Status)
		})
	})

	return app
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.TenantStore    = (*store.TenantStore)(nil)
	_ domain.AgentStore     = (*store.AgentStore)(nil)
	_ domain.RemoteGateway  = (*remote.Client)(nil)
	_ domain.RemoteGateway  = (*remote.MockGateway)(nil)
	_ domain.GatewayFactory = (*remote.HTTPFactory)(nil)
	_ domain.GatewayFactory = (*remote.MockFactory)(nil)
)
