package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"compliance-llm/internal/config"
	"compliance-llm/internal/db"
	apihttp "compliance-llm/internal/http"
	"compliance-llm/internal/llm"
	"compliance-llm/internal/loandata"
	"compliance-llm/internal/report"
	"compliance-llm/internal/repository"
	"compliance-llm/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Línea de tiempo: Postgres si hay DATABASE_URL, memoria si no.
	var timelineStore service.TimelineStore = service.NewMemoryTimelineStore()
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			logger.Fatal("db ping", zap.Error(err))
		}
		timelineRepo := repository.NewPgTimelineRepository(pool)
		if err := timelineRepo.EnsureSchema(ctx); err != nil {
			logger.Fatal("db schema", zap.Error(err))
		}
		timelineStore = timelineRepo
		logger.Info("timeline store: postgres")
	} else {
		logger.Info("timeline store: memory")
	}

	// Decisiones: Redis si hay REDIS_ADDR y responde al ping, memoria si no.
	decisionStore := service.NewMemoryDecisionStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using memory decision store", zap.Error(err))
		} else {
			decisionStore = service.NewRedisDecisionStore(redisClient, time.Duration(cfg.DecisionTTLHours)*time.Hour)
			logger.Info("decision store: redis")
		}
		cancel()
	}

	var llmClient llm.LLMClient
	if cfg.LLMAPIKey != "" {
		llmClient = llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)
	} else {
		logger.Warn("llm api key not configured, explainer disabled")
	}

	loader, err := loandata.NewLoader(cfg.DataPath)
	if err != nil {
		logger.Fatal("loan data load", zap.Error(err))
	}

	evaluator := service.NewDefaultTrustEvaluator()
	registry := service.NewDefaultRegistry()
	timelineSvc := service.NewTimelineService(timelineStore)
	complianceSvc := service.NewComplianceService(evaluator, registry, timelineSvc, decisionStore, logger)
	explainerSvc := service.NewExplainerService(llmClient, logger)
	reportGen := report.NewGenerator()

	complianceHandler := apihttp.NewComplianceHandler(logger, complianceSvc, explainerSvc, registry, loader, reportGen, cfg.DefaultFramework)
	timelineHandler := apihttp.NewTimelineHandler(logger, timelineSvc)
	router := apihttp.NewRouter(logger, complianceHandler, timelineHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("default_framework", cfg.DefaultFramework))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
