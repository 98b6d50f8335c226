//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"softday/wellness-api/internal/config"
	"softday/wellness-api/internal/domain/alert"
	"softday/wellness-api/internal/domain/analysis"
	"softday/wellness-api/internal/domain/analytics"
	"softday/wellness-api/internal/domain/chat"
	"softday/wellness-api/internal/domain/checkin"
	"softday/wellness-api/internal/domain/llm"
	"softday/wellness-api/internal/domain/profile"
	"softday/wellness-api/internal/domain/user"
	"softday/wellness-api/internal/infrastructure/auth"
	"softday/wellness-api/internal/infrastructure/database"
	"softday/wellness-api/internal/infrastructure/gemini"
	"softday/wellness-api/internal/infrastructure/logger"
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

var domainSet = wire.NewSet(
	userrepo.NewPostgresRepository,
	wire.Bind(new(user.Repository), new(*userrepo.PostgresRepository)),
	conversationrepo.NewPostgresRepository,
	wire.Bind(new(chat.ConversationRepository), new(*conversationrepo.PostgresRepository)),
	conversationrepo.NewMessageRepository,
	wire.Bind(new(chat.MessageRepository), new(*conversationrepo.MessageRepository)),
	profilerepo.NewPostgresRepository,
	wire.Bind(new(profile.Repository), new(*profilerepo.PostgresRepository)),
	checkinrepo.NewPostgresRepository,
	wire.Bind(new(checkin.Repository), new(*checkinrepo.PostgresRepository)),
	checkinrepo.NewStatisticRepository,
	wire.Bind(new(checkin.StatisticRepository), new(*checkinrepo.StatisticRepository)),
	newGeminiClient,
	wire.Bind(new(llm.Provider), new(*gemini.Client)),
	analysis.NewService,
	newTaskQueue,
	newWorkerPool,
	wire.Bind(new(chat.AnalysisScheduler), new(*worker.Pool)),
	chat.NewService,
	checkin.NewService,
	analytics.NewService,
	newPushSender,
	wire.Bind(new(alert.Sender), new(*push.HTTPSender)),
	newAlertService,
	handlers.NewProvider,
)

// BuildApplication demonstrates how to assemble the service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		newAuthValidator,
		domainSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}

func newGeminiClient(cfg *config.Config, log zerolog.Logger) *gemini.Client {
	return gemini.NewClient(gemini.Config{
		APIURL:  cfg.GeminiAPIURL,
		APIKey:  cfg.GeminiAPIKey,
		Timeout: cfg.GeminiTimeout,
		Backoff: cfg.GeminiRetryBackoff,
	}, log)
}

func newTaskQueue(cfg *config.Config) *queue.MemoryQueue {
	return queue.NewMemoryQueue(cfg.AnalysisQueueSize)
}

func newWorkerPool(taskQueue *queue.MemoryQueue, analysisService *analysis.Service, cfg *config.Config, log zerolog.Logger) *worker.Pool {
	return worker.NewPool(taskQueue, analysisService, worker.Config{
		WorkerCount: cfg.AnalysisWorkerCount,
		TaskTimeout: cfg.AnalysisTaskTimeout,
	}, log)
}

func newPushSender(cfg *config.Config, log zerolog.Logger) *push.HTTPSender {
	return push.NewHTTPSender(push.Config{
		GatewayURL: cfg.PushGatewayURL,
		Timeout:    cfg.PushTimeout,
	}, log)
}

func newAlertService(
	users user.Repository,
	dashboards *analytics.Service,
	sender alert.Sender,
	cfg *config.Config,
	log zerolog.Logger,
) *alert.Service {
	return alert.NewService(users, dashboards, sender, cfg.AlertUserConcurrent, cfg.AlertUserTimeout, log)
}
