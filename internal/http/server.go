// README: API gateway; builds the gin engine and registers import, health and stats routes.
package http

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/digitalunknown/trip-planner-ai-proxy/internal/http/handlers"
	"github.com/digitalunknown/trip-planner-ai-proxy/internal/http/middleware"
	"github.com/digitalunknown/trip-planner-ai-proxy/internal/infra"
	"github.com/digitalunknown/trip-planner-ai-proxy/internal/modules/pasteimport"
	"github.com/digitalunknown/trip-planner-ai-proxy/internal/modules/stats"
	"github.com/digitalunknown/trip-planner-ai-proxy/internal/modules/usage"
)

const serviceName = "trip-planner-ai-proxy"

// ServerDeps lists what the routes need. Optional members may be nil.
type ServerDeps struct {
	Extract *pasteimport.Service
	Plan    *pasteimport.Service

	// Verifier enables bearer auth on the import routes.
	Verifier infra.TokenVerifier
	// Stats and Ledger feed GET /api/stats; the route is registered when either is set.
	Stats  *stats.Service
	Ledger *usage.Service

	DB          *pgxpool.Pool
	Redis       *redis.Client
	CORSOrigins []string
	Version     string
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Version == "" {
		deps.Version = "dev"
	}
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestID(), cors.New(corsConfig(s.deps.CORSOrigins)))

	handlers.NewHealthHandler(serviceName, s.deps.Version, s.deps.DB, s.deps.Redis).RegisterRoutes(r)

	api := r.Group("/api")
	var postPaths []string
	importChain := []gin.HandlerFunc{middleware.PostOnly()}
	if s.deps.Verifier != nil {
		importChain = append(importChain, middleware.Auth(s.deps.Verifier))
	}
	if s.deps.Extract != nil {
		api.Any("/parsePaste", append(slices.Clone(importChain), handlers.NewPasteHandler(s.deps.Extract).Import)...)
		postPaths = append(postPaths, "/api/parsePaste")
	}
	if s.deps.Plan != nil {
		api.Any("/planDay", append(slices.Clone(importChain), handlers.NewPasteHandler(s.deps.Plan).Import)...)
		postPaths = append(postPaths, "/api/planDay")
	}
	r.HandleMethodNotAllowed = true
	r.NoMethod(middleware.PostOnlyNoMethod(postPaths...))
	if s.deps.Stats != nil || s.deps.Ledger != nil {
		var ledger handlers.LedgerReader
		if s.deps.Ledger != nil {
			ledger = s.deps.Ledger
		}
		api.GET("/stats", handlers.NewStatsHandler(s.deps.Stats, ledger).Get)
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodPost, http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
