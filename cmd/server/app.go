package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/parla-app/parla-api/internal/config"
	"github.com/parla-app/parla-api/internal/domain/mastery"
	"github.com/parla-app/parla-api/internal/events"
	"github.com/parla-app/parla-api/internal/generation"
	"github.com/parla-app/parla-api/internal/platform/gemini"
	"github.com/parla-app/parla-api/internal/platform/postgres"
	"github.com/parla-app/parla-api/internal/service/auth"
	"github.com/parla-app/parla-api/internal/service/practice"
	"github.com/parla-app/parla-api/internal/service/vocabulary"
	"github.com/parla-app/parla-api/internal/store"
	"github.com/parla-app/parla-api/internal/task"
)

// application holds the assembled dependency graph of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore        store.UserStore
	vocabularyStore  store.VocabularyStore
	achievementStore store.AchievementStore

	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	practiceService   practice.PracticeService
	vocabularyService vocabulary.VocabularyService
	exampleGenerator  generation.ExampleGenerator

	taskQueue  *task.TaskQueue
	workerPool *task.WorkerPool
}

// newApplication wires together stores, services, and the background
// task machinery. The example generator is optional: when the Gemini
// client cannot be created the server still starts, with the example
// endpoint disabled.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	userStore := postgres.NewPostgresUserStore(db, logger, cfg.Auth.BCryptCost)
	vocabularyStore := postgres.NewPostgresVocabularyStore(db, logger)
	achievementStore := postgres.NewPostgresAchievementStore(db, logger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	// Background achievement checks: services publish check requests on
	// the emitter, the handler turns them into tasks, and the worker
	// pool drains the queue.
	taskQueue := task.NewTaskQueue(cfg.Task.QueueSize, logger)
	workerPool := task.NewWorkerPool(taskQueue, task.WorkerPoolConfig{
		WorkerCount: cfg.Task.WorkerCount,
	}, logger)

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(task.NewAchievementEventHandler(
		db,
		vocabularyStore,
		achievementStore,
		taskQueue,
		logger,
	))

	masteryService := mastery.NewServiceWithParams(mastery.NewParams(mastery.ParamsConfig{
		MasteredMinRate:    cfg.Practice.MasteredMinRate,
		MasteredMinReviews: cfg.Practice.MasteredMinReviews,
		FamiliarMinRate:    cfg.Practice.FamiliarMinRate,
		FamiliarMinReviews: cfg.Practice.FamiliarMinReviews,
		LearningInterval:   time.Duration(cfg.Practice.LearningIntervalHours) * time.Hour,
		FamiliarInterval:   time.Duration(cfg.Practice.FamiliarIntervalHours) * time.Hour,
		MasteredInterval:   time.Duration(cfg.Practice.MasteredIntervalHours) * time.Hour,
	}))

	practiceService := practice.NewPracticeService(
		vocabularyStore,
		masteryService,
		emitter,
		practice.Config{BatchSize: cfg.Practice.DefaultBatchSize},
		logger,
	)
	vocabularyService := vocabulary.NewVocabularyService(vocabularyStore, emitter, logger)

	var exampleGenerator generation.ExampleGenerator
	generator, err := gemini.NewExampleGenerator(ctx, logger, cfg.LLM)
	if err != nil {
		logger.Warn("example generation disabled", "error", err)
	} else {
		exampleGenerator = generator
	}

	workerPool.Start()

	return &application{
		config:            cfg,
		logger:            logger,
		db:                db,
		userStore:         userStore,
		vocabularyStore:   vocabularyStore,
		achievementStore:  achievementStore,
		jwtService:        jwtService,
		passwordVerifier:  auth.NewBcryptVerifier(),
		practiceService:   practiceService,
		vocabularyService: vocabularyService,
		exampleGenerator:  exampleGenerator,
		taskQueue:         taskQueue,
		workerPool:        workerPool,
	}, nil
}

// cleanup releases resources in reverse dependency order.
func (app *application) cleanup() {
	app.taskQueue.Close()
	app.workerPool.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", err)
	}
}
