package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/brunotrento11/Teste-sub000/internal/executor/config"
	"github.com/brunotrento11/Teste-sub000/internal/executor/delivery/consumer"
	delivery "github.com/brunotrento11/Teste-sub000/internal/executor/delivery/http"
	"github.com/brunotrento11/Teste-sub000/internal/executor/repository"
	"github.com/brunotrento11/Teste-sub000/internal/executor/service"
	"github.com/brunotrento11/Teste-sub000/internal/executor/strategy"
	"github.com/brunotrento11/Teste-sub000/internal/risk/scoring"
	"github.com/brunotrento11/Teste-sub000/pkg/httpserver"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
	"github.com/brunotrento11/Teste-sub000/pkg/postgres"
	"github.com/brunotrento11/Teste-sub000/pkg/redis"
	"github.com/brunotrento11/Teste-sub000/pkg/telegram"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the execution service",
	Run:   runServe,
}

// newTextGenerator picks the AI backend of the fixed-income scorer. A nil generator leaves
// scoring to the heuristic.
func newTextGenerator(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) scoring.TextGenerator {
	switch cfg.AI.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", zap.Error(err))
		}
		return repository.NewGeminiTextGenerator(cfg, appLogger, genAiClient)
	case "openrouter":
		return repository.NewOpenRouterTextGenerator(cfg, appLogger)
	case "none", "":
		return nil
	default:
		appLogger.Fatal("Invalid AI provider specified in config", zap.String("provider", cfg.AI.Provider))
		return nil
	}
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Execution Service", zap.String("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	jobRepo := repository.NewJobRepository(db.DB)
	recordRepo := repository.NewExecutionRecordRepository(db.DB)
	alertRepo := repository.NewAnomalyAlertRepository(db.DB)
	lockRepo := repository.NewChunkLockRepository(redisClient.Client, cfg.Executor.ChunkLockTTL)
	marketAssetRepo := repository.NewMarketAssetRepository(db.DB)
	fixedIncomeRepo := repository.NewFixedIncomeRepository(db.DB)
	riskScoreRepo := repository.NewRiskScoreRepository(db.DB)
	priceRepo := repository.NewPriceObservationRepository(db.DB)
	indicatorRepo := repository.NewRiskIndicatorRepository(db.DB)
	searchRepo := repository.NewAssetSearchRepository(db.DB)
	brapiRepo := repository.NewBrapiRepository(cfg, appLogger)
	anbimaRepo := repository.NewAnbimaRepository(cfg, appLogger)
	cvmRepo := repository.NewCVMRepository(cfg, appLogger)

	telegramNotifier, err := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		appLogger.Fatal("Failed to initialize Telegram notifier", zap.Error(err))
	}

	// Initialize scorers and strategies
	fixedIncomeScorer := scoring.NewFixedIncomeScorer(newTextGenerator(ctx, cfg, appLogger), appLogger)
	priceHistory := strategy.NewPriceHistory(brapiRepo, priceRepo, cfg.RiskJobs.PriceCacheTTL, appLogger)

	strategies := []strategy.RiskJobStrategy{
		strategy.NewBrapiRiskStrategy(cfg, appLogger, marketAssetRepo, priceHistory),
		strategy.NewAnbimaRiskStrategy(appLogger, fixedIncomeRepo, riskScoreRepo, fixedIncomeScorer),
		strategy.NewCVMRiskStrategy(appLogger, fixedIncomeRepo, riskScoreRepo, fixedIncomeScorer, cvmRepo),
	}
	syncs := []strategy.SyncStrategy{
		strategy.NewAnbimaSyncStrategy(appLogger, anbimaRepo, fixedIncomeRepo),
	}

	// Initialize services
	riskJobSvc := service.NewRiskJobService(cfg, appLogger, recordRepo, alertRepo, lockRepo, telegramNotifier, strategies, syncs)
	executorSvc := service.NewExecutorService(cfg, redisClient.Client, jobRepo, riskJobSvc, telegramNotifier, appLogger)
	indicatorSvc := service.NewRiskIndicatorService(cfg, appLogger, priceHistory, indicatorRepo)
	searchSvc := service.NewAssetSearchService(searchRepo)

	// Initialize and start the Redis consumer
	redisConsumer := consumer.NewRedisConsumer(cfg, redisClient.Client, executorSvc, appLogger)
	if err := redisConsumer.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start Redis consumer", zap.Error(err))
	}

	// Initialize Echo server
	e := httpserver.New(appLogger, map[string]httpserver.Check{
		"postgres": db.Ping,
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	})

	apiV1 := e.Group("/api/v1")
	delivery.NewFunctionHandler(riskJobSvc, appLogger).RegisterRoutes(apiV1.Group("/functions"))
	delivery.NewRiskIndicatorHandler(indicatorSvc, appLogger).RegisterRoutes(apiV1.Group("/risk-indicators"))
	delivery.NewAssetSearchHandler(searchSvc, appLogger).RegisterRoutes(apiV1.Group("/assets"))

	appLogger.Info("Execution service started. Waiting for tasks...")
	if err := httpserver.Run(ctx, e, cfg.API.Port, appLogger); err != nil {
		appLogger.Error("HTTP server stopped", logger.ErrorField(err))
	}

	redisConsumer.Stop()
	appLogger.Info("Execution service stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "execution-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-executor.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing execution-service CLI: %s\n", err)
		os.Exit(1)
	}
}
