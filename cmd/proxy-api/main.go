// README: Entry point; loads config, wires the import variants, optional backends, and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/digitalunknown/trip-planner-ai-proxy/internal/ai"
	"github.com/digitalunknown/trip-planner-ai-proxy/internal/config"
	httptransport "github.com/digitalunknown/trip-planner-ai-proxy/internal/http"
	"github.com/digitalunknown/trip-planner-ai-proxy/internal/infra"
	"github.com/digitalunknown/trip-planner-ai-proxy/internal/modules/pasteimport"
	"github.com/digitalunknown/trip-planner-ai-proxy/internal/modules/stats"
	"github.com/digitalunknown/trip-planner-ai-proxy/internal/modules/usage"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AI.GeminiKey == "" {
		log.Println("GEMINI_API_KEY is not set; import requests will fail until it is")
	}

	var recorders []pasteimport.Recorder

	var (
		dbPool *pgxpool.Pool
		ledger *usage.Service
	)
	if cfg.DB.DSN != "" {
		dbPool, err = infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()

		ledger = usage.NewService(usage.NewStore(dbPool), time.Duration(cfg.Ledger.RetentionDays)*24*time.Hour, cfg.Ledger.PruneSchedule)
		recorders = append(recorders, ledger)
		go func() {
			if err := ledger.RunRetention(ctx); err != nil {
				log.Printf("ledger retention disabled: %v", err)
			}
		}()
	} else {
		log.Println("TRIP_PROXY_DB_DSN not set; call ledger disabled")
	}

	var (
		redisClient *redis.Client
		statsSvc    *stats.Service
	)
	if cfg.Redis.Addr != "" {
		redisClient, err = infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatal(err)
		}
		defer redisClient.Close()

		statsSvc = stats.NewService(stats.NewStore(redisClient), pasteimport.VariantExtract, pasteimport.VariantPlan)
		recorders = append(recorders, statsSvc)
	} else {
		log.Println("TRIP_PROXY_REDIS_ADDR not set; call stats disabled")
	}

	var verifier infra.TokenVerifier
	if cfg.Firebase.ProjectID != "" {
		verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Fatalf("firebase init: %v", err)
		}
	} else {
		log.Println("TRIP_PROXY_FIREBASE_PROJECT_ID not set; import routes are unauthenticated")
	}

	provider := ai.NewGeminiClient(cfg.AI.BaseURL, cfg.AI.Timeout)
	extract := pasteimport.NewService(provider, cfg.AI.GeminiKey,
		pasteimport.ExtractVariant(cfg.AI.Extract.Model, cfg.AI.Extract.Temperature), recorders...)
	plan := pasteimport.NewService(provider, cfg.AI.GeminiKey,
		pasteimport.PlanVariant(cfg.AI.Plan.Model, cfg.AI.Plan.Temperature, cfg.AI.Plan.RejectDuplicateLocations), recorders...)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Extract:     extract,
		Plan:        plan,
		Verifier:    verifier,
		Stats:       statsSvc,
		Ledger:      ledger,
		DB:          dbPool,
		Redis:       redisClient,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Version:     version,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	idle := make(chan struct{})
	go func() {
		defer close(idle)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.AI.Timeout+5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	<-idle
}
