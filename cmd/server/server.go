package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"softday/wellness-api/internal/config"
	"softday/wellness-api/internal/domain/alert"
	"softday/wellness-api/internal/domain/analysis"
	"softday/wellness-api/internal/domain/analytics"
	"softday/wellness-api/internal/domain/chat"
	"softday/wellness-api/internal/domain/checkin"
	"softday/wellness-api/internal/infrastructure/auth"
	"softday/wellness-api/internal/infrastructure/crontab"
	"softday/wellness-api/internal/infrastructure/database"
	"softday/wellness-api/internal/infrastructure/gemini"
	"softday/wellness-api/internal/infrastructure/logger"
	"softday/wellness-api/internal/infrastructure/observability"
	"softday/wellness-api/internal/infrastructure/push"
	"softday/wellness-api/internal/infrastructure/queue"
	checkinrepo "softday/wellness-api/internal/infrastructure/repository/checkin"
	conversationrepo "softday/wellness-api/internal/infrastructure/repository/conversation"
	profilerepo "softday/wellness-api/internal/infrastructure/repository/profile"
	userrepo "softday/wellness-api/internal/infrastructure/repository/user"
	"softday/wellness-api/internal/interfaces/httpserver"
	"softday/wellness-api/internal/interfaces/httpserver/handlers"
	"softday/wellness-api/internal/worker"
)

type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	userRepository := userrepo.NewPostgresRepository(db)
	conversationRepository := conversationrepo.NewPostgresRepository(db)
	messageRepository := conversationrepo.NewMessageRepository(db)
	profileRepository := profilerepo.NewPostgresRepository(db)
	checkInRepository := checkinrepo.NewPostgresRepository(db)
	statisticRepository := checkinrepo.NewStatisticRepository(db)

	geminiClient := gemini.NewClient(gemini.Config{
		APIURL:  cfg.GeminiAPIURL,
		APIKey:  cfg.GeminiAPIKey,
		Timeout: cfg.GeminiTimeout,
		Backoff: cfg.GeminiRetryBackoff,
	}, log)

	analysisService := analysis.NewService(
		conversationRepository,
		messageRepository,
		profileRepository,
		geminiClient,
		log,
	)

	// Background analysis infrastructure
	taskQueue := queue.NewMemoryQueue(cfg.AnalysisQueueSize)
	workerPool := worker.NewPool(
		taskQueue,
		analysisService,
		worker.Config{
			WorkerCount: cfg.AnalysisWorkerCount,
			TaskTimeout: cfg.AnalysisTaskTimeout,
		},
		log,
	)

	workerPool.Start(ctx)
	defer func() {
		log.Info().Msg("stopping worker pool")
		workerPool.Stop()
	}()

	chatService := chat.NewService(
		conversationRepository,
		messageRepository,
		profileRepository,
		geminiClient,
		workerPool,
		log,
	)
	checkInService := checkin.NewService(checkInRepository, statisticRepository, log)
	analyticsService := analytics.NewService(checkInRepository, statisticRepository, log)

	pushSender := push.NewHTTPSender(push.Config{
		GatewayURL: cfg.PushGatewayURL,
		Timeout:    cfg.PushTimeout,
	}, log)
	alertService := alert.NewService(
		userRepository,
		analyticsService,
		pushSender,
		cfg.AlertUserConcurrent,
		cfg.AlertUserTimeout,
		log,
	)

	// Daily alert scheduler
	cron := crontab.NewCrontab(alertService, cfg.AlertCronHour, log)
	go func() {
		if err := cron.Run(ctx); err != nil {
			log.Error().Err(err).Msg("crontab stopped with error")
		}
	}()

	handlerProvider := handlers.NewProvider(
		chatService,
		checkInService,
		analyticsService,
		alertService,
		userRepository,
		log,
	)

	httpServer := httpserver.New(cfg, log, handlerProvider, authValidator)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
