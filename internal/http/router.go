// Package httpapi wires the HTTP transport (Gin) to the irrigation services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, authentication, idempotency, and rate limiting.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-irrigation-backend/docs"
	"github.com/tbourn/go-irrigation-backend/internal/actuator"
	"github.com/tbourn/go-irrigation-backend/internal/auth"
	"github.com/tbourn/go-irrigation-backend/internal/config"
	"github.com/tbourn/go-irrigation-backend/internal/domain"
	"github.com/tbourn/go-irrigation-backend/internal/http/handlers"
	"github.com/tbourn/go-irrigation-backend/internal/http/middleware"
	"github.com/tbourn/go-irrigation-backend/internal/repo"
	"github.com/tbourn/go-irrigation-backend/internal/services"
)

// pumpRateDivisor makes the pump trigger limiter stricter than the API one.
const pumpRateDivisor = 5

// idemStore adapts the idempotency repository functions to
// handlers.IdempotencyStore.
type idemStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func (s idemStore) Find(ctx context.Context, userID, scope, key string, now time.Time) (*domain.Idempotency, error) {
	return repo.GetIdempotency(ctx, s.db, userID, scope, key, now)
}

func (s idemStore) Save(ctx context.Context, userID, scope, key, resourceID string, status int) error {
	_, err := repo.CreateIdempotency(ctx, s.db, userID, scope, key, resourceID, status, s.ttl)
	return err
}

// lookup reports whether a live record exists, for IdempotencyValidator.
func (s idemStore) lookup(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
	rec, err := s.Find(ctx, userID, scope, key, now)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}

// versioner proxies the repo stats queries used for list ETags.
type versioner struct{ db *gorm.DB }

func (v versioner) PlantsVersion(ctx context.Context) (int64, *time.Time, error) {
	return repo.PlantsStats(ctx, v.db)
}

func (v versioner) SessionsVersion(ctx context.Context, userID string) (int64, *time.Time, error) {
	return repo.SessionsStats(ctx, v.db, userID)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the irrigation API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter, gzip
//  6. Metrics
//  7. CORS and security headers
//
// and on the API group:
//  8. Authenticate: resolve user and role
//  9. Idempotency validator (needs the user; before rate limiter to allow bypass on replay)
//  10. Rate limiter (per user/IP, bypass on replay), stricter on pump triggers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, gw actuator.Gateway, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{middleware.HeaderIdempotencyKey},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(1 << 20))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedExtensions([]string{".xlsx"})))
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status})
	})
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/actuator
	loc := cfg.Scheduler.Location
	idem := idemStore{db: db, ttl: cfg.IdempotencyTTL}
	h := handlers.New(handlers.Deps{
		Plants:    &services.PlantService{DB: db},
		Sessions:  &services.SessionService{DB: db, Loc: loc},
		Triggers:  &services.TriggerService{DB: db, Actuator: gw, Loc: loc, Window: cfg.ManualWindow},
		Scheduler: &services.SchedulerService{DB: db, Actuator: gw, Loc: loc},
		History:   &services.HistoryService{DB: db},
		Stats:     &services.StatsService{DB: db, Loc: loc},
		Sensors:   gw,
		Idem:      idem,
		Versions:  versioner{db: db},
		Loc:       loc,
	})

	api := groupWithPrefix(r, cfg.APIBasePath)
	api.Use(middleware.Authenticate([]byte(cfg.Auth.JWTSecret), auth.DBResolver{DB: db}))
	api.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, idem.lookup))
	api.Use(middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP()).Handler())

	pump := middleware.NewRateLimiter(cfg.RateRPS/pumpRateDivisor, 1+cfg.RateBurst/pumpRateDivisor,
		middleware.KeyScoped("pump", middleware.KeyByUserOrIP())).Handler()
	admin := middleware.RequireRole(domain.RoleAdmin)

	plants := api.Group("/plantes")
	{
		plants.GET("", h.ListPlants)
		plants.GET("/:id", h.GetPlant)
		plants.GET("/categorie/:categorie", h.SearchPlants)
		plants.POST("", admin, h.CreatePlant)
		plants.PUT("/:id", admin, h.UpdatePlant)
		plants.DELETE("/:id", admin, h.DeletePlant)
		plants.DELETE("", admin, h.DeletePlants)
	}

	sessions := api.Group("/arrosage")
	{
		sessions.POST("/manuel/plante/:planteId", pump, h.TriggerPlant)
		sessions.POST("/manuel/global", pump, h.TriggerAll)
		sessions.POST("/stop", h.EmergencyStop)
		sessions.GET("/scheduled", h.ScheduledPreview)

		sessions.POST("", h.CreateSession)
		sessions.GET("", h.ListSessions)
		sessions.GET("/:id", h.GetSession)
		sessions.PUT("/:id", h.UpdateSession)
		sessions.PATCH("/:id/toggle", h.ToggleSession)
		sessions.DELETE("/:id", h.DeleteSession)
	}

	history := api.Group("/historique")
	{
		history.GET("", h.ListHistory)
		history.GET("/export.xlsx", h.ExportHistory)
		history.GET("/plante/:planteId", h.PlantHistory)
		history.GET("/statistiques", h.MonthlyStats)
		history.GET("/statistiques/:periode", h.PeriodStats)
		history.DELETE("/:historiqueId", h.DeleteHistory)
	}

	api.GET("/capteurs/lecture", h.ReadSensors)
}

// corsMiddleware returns the CORS posture: allow all origins when none are
// configured, otherwise echo allowlisted origins.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID",
			"If-None-Match", middleware.HeaderIdempotencyKey,
		},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag", "Content-Disposition", middleware.HeaderReplayed},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 {
		base.AllowAllOrigins = true
		// Force ACAO: * even for requests without an Origin header.
		return []gin.HandlerFunc{
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	base.AllowOrigins = origins
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(base),
	}
}

// limitBody caps the request body size using http.MaxBytesReader. Requests
// exceeding the cap fail when the handler reads the body.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
