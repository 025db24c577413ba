package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/brunotrento11/Teste-sub000/internal/scheduler/config"
	delivery "github.com/brunotrento11/Teste-sub000/internal/scheduler/delivery/http"
	_ "github.com/brunotrento11/Teste-sub000/internal/scheduler/docs"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/repository"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/service"
	"github.com/brunotrento11/Teste-sub000/pkg/httpserver"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
	"github.com/brunotrento11/Teste-sub000/pkg/postgres"
	"github.com/brunotrento11/Teste-sub000/pkg/redis"

	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the scheduling service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
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

	appLogger.Info("Starting Scheduling Service", logger.Field("name", cfg.App.Name))

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
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
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
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	jobRepo := repository.NewJobRepository(db.DB)
	scheduleRepo := repository.NewTaskScheduleRepository(db.DB)
	recordRepo := repository.NewExecutionRecordRepository(db.DB)
	alertRepo := repository.NewAnomalyAlertRepository(db.DB)

	// Initialize services
	schedulerSvc := service.NewSchedulerService(jobRepo, scheduleRepo, redisClient.Client, appLogger, cfg)
	jobSvc := service.NewJobService(jobRepo, cfg.Scheduler.DefaultTimeout, appLogger)
	scheduleSvc := service.NewScheduleService(scheduleRepo, jobRepo, appLogger)
	executionSvc := service.NewExecutionService(recordRepo, jobRepo, appLogger)
	alertSvc := service.NewAlertService(alertRepo, appLogger)

	// Start scheduler service
	go schedulerSvc.Start(ctx)

	// Initialize Echo server
	e := httpserver.New(appLogger, map[string]httpserver.Check{
		"postgres": db.Ping,
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	})

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")
	delivery.NewJobHandler(jobSvc, executionSvc, appLogger).RegisterRoutes(apiV1.Group("/jobs"))
	delivery.NewScheduleHandler(scheduleSvc, appLogger).RegisterRoutes(apiV1.Group("/schedules"))
	delivery.NewExecutionHandler(executionSvc).RegisterRoutes(apiV1.Group("/executions"))
	delivery.NewAlertHandler(alertSvc).RegisterRoutes(apiV1.Group("/alerts"))

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	if err := httpserver.Run(ctx, e, cfg.API.Port, appLogger); err != nil {
		appLogger.Error("HTTP server stopped", logger.ErrorField(err))
	}
	appLogger.Info("Server exiting")
}

// @title Risk Job Scheduler API
// @version 1.0
// @description Risk job definitions, cron schedules, the execution log and anomaly alerts.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "scheduling-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-scheduler.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing scheduling-service CLI: %s\n", err)
		os.Exit(1)
	}
}
