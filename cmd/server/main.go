// Package main - точка входа HTTP-сервера LinguaClip.
//
// LinguaClip - бэкенд для изучения языков через короткие видео: лента
// подбирается по профилю ученика, квиз после видео приносит XP через
// идемпотентный леджер, ежедневная активность поддерживает серию.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: чистая бизнес-логика без внешних зависимостей
// - Application: оркестрация use cases (Commands/Queries)
// - Infrastructure: PostgreSQL, Redis, event bus
// - Interface: HTTP endpoints
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/linguaclip/linguaclip-backend/config"

	// Application layer
	"github.com/linguaclip/linguaclip-backend/internal/application/command"
	"github.com/linguaclip/linguaclip-backend/internal/application/eventhandler"
	"github.com/linguaclip/linguaclip-backend/internal/application/query"

	// Infrastructure layer
	"github.com/linguaclip/linguaclip-backend/internal/infrastructure/messaging"
	"github.com/linguaclip/linguaclip-backend/internal/infrastructure/persistence/postgres"
	"github.com/linguaclip/linguaclip-backend/internal/infrastructure/persistence/redis"

	// Interface layer
	httpserver "github.com/linguaclip/linguaclip-backend/internal/interface/http"

	// Packages
	"github.com/linguaclip/linguaclip-backend/internal/domain/learner"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
	"github.com/linguaclip/linguaclip-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting LinguaClip backend",
		"env", string(cfg.App.Environment),
		"version", cfg.App.Version,
		"debug", cfg.App.Debug,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ПОДКЛЮЧЕНИЕ К БАЗЕ ДАННЫХ
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database...")
	dbConn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection...")
		dbConn.Close()
	}()

	if err := dbConn.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	log.Info("database connection established")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. ЗАПУСК МИГРАЦИЙ
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Database.AutoMigrate {
		log.Info("running database migrations...")
		migrator := postgres.NewMigrator(dbConn)
		if err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("migrations completed")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ИНИЦИАЛИЗАЦИЯ REDIS (опционально)
	// ─────────────────────────────────────────────────────────────────────────
	var redisCache *redis.Cache
	var progressCache *redis.ProgressCache

	if !cfg.Redis.Disabled {
		log.Info("connecting to Redis...")
		redisCfg := redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   3,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			PoolTimeout:  cfg.Redis.DialTimeout,
		}
		redisCache, err = redis.NewCache(redisCfg)
		if err != nil {
			// Кеш не критичен: читаем из базы, снимки не кешируются.
			log.Warn("failed to connect to Redis, caching disabled", "error", err)
			redisCache = nil
		} else {
			defer redisCache.Close()
			progressCache = redis.NewProgressCache(redisCache)
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. ИНИЦИАЛИЗАЦИЯ РЕПОЗИТОРИЕВ
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing repositories...")
	contentRepo := postgres.NewContentRepository(dbConn)
	quizRepo := postgres.NewQuizRepository(dbConn)
	progressRepo := postgres.NewProgressRepository(dbConn)

	var learnerRepo learner.Repository = postgres.NewLearnerRepository(dbConn)
	if redisCache != nil {
		learnerRepo = redis.NewCachedLearnerRepository(learnerRepo, redisCache)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. ИНИЦИАЛИЗАЦИЯ EVENT BUS И ДИСПЕТЧЕРА
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing event bus...")
	localBusConfig := messaging.DefaultInMemoryEventBusConfig()
	localBusConfig.Logger = log

	// При доступном Redis события уходят и в Pub/Sub: другие инстансы
	// сбрасывают свои кеши. Без Redis шина остаётся внутрипроцессной.
	var eventBus interface {
		shared.EventBus
		Close() error
	}
	if redisCache != nil && cfg.Redis.EventBus {
		redisBus, busErr := messaging.NewRedisEventBus(messaging.RedisEventBusConfig{
			Client:         redisCache.Client(),
			LocalBusConfig: localBusConfig,
			Logger:         log,
		})
		if busErr != nil {
			return fmt.Errorf("failed to initialize redis event bus: %w", busErr)
		}
		eventBus = redisBus
		log.Info("event bus: redis pub/sub", "channel", messaging.DefaultEventChannel)
	} else {
		eventBus = messaging.NewInMemoryEventBus(localBusConfig)
		log.Info("event bus: in-memory")
	}
	defer func() {
		log.Info("closing event bus...")
		_ = eventBus.Close()
	}()

	dispatcherConfig := messaging.DefaultDispatcherConfig(eventBus)
	dispatcherConfig.Logger = log
	dispatcher := messaging.NewDispatcher(dispatcherConfig)
	dispatcher.Use(messaging.RecoveryMiddleware(log))
	dispatcher.Use(messaging.LoggingMiddleware(log))

	// ─────────────────────────────────────────────────────────────────────────
	// 8. РЕГИСТРАЦИЯ EVENT HANDLERS
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("registering event handlers...")

	// progressCache может быть nil: обработчики это учитывают.
	var invalidator eventhandler.ProgressCacheInvalidator
	if progressCache != nil {
		invalidator = progressCache
	}

	attemptHandler := eventhandler.NewOnAttemptRecordedHandler(invalidator, log)
	xpHandler := eventhandler.NewOnXPAwardedHandler(invalidator, log, eventhandler.XPAwardedConfig{
		XPMilestones: cfg.Gamification.XPMilestones,
	})
	streakHandler := eventhandler.NewOnStreakUpdatedHandler(invalidator, log, eventhandler.StreakUpdatedConfig{
		StreakMilestones: cfg.Gamification.StreakMilestones,
	})

	if err := dispatcher.Register(attemptHandler.EventType(), "on_attempt_recorded", attemptHandler.Handle); err != nil {
		return fmt.Errorf("failed to register attempt handler: %w", err)
	}
	if err := dispatcher.Register(xpHandler.EventType(), "on_xp_awarded", xpHandler.Handle); err != nil {
		return fmt.Errorf("failed to register xp handler: %w", err)
	}
	if err := dispatcher.Register(streakHandler.EventType(), "on_streak_updated", streakHandler.Handle); err != nil {
		return fmt.Errorf("failed to register streak handler: %w", err)
	}

	if err := dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start dispatcher: %w", err)
	}
	defer func() {
		log.Info("stopping dispatcher...")
		_ = dispatcher.Stop()
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 9. ИНИЦИАЛИЗАЦИЯ APPLICATION LAYER (Commands, Queries)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing application layer...")

	updateProfileCmd := command.NewUpdateProfileHandler(learnerRepo, eventBus, nil)
	createContentCmd := command.NewCreateContentHandler(contentRepo, eventBus, nil)
	authorQuizCmd := command.NewAuthorQuizHandler(contentRepo, quizRepo, eventBus, nil)
	publishContentCmd := command.NewPublishContentHandler(contentRepo, quizRepo, eventBus, nil)
	submitAttemptCmd := command.NewSubmitAttemptHandler(contentRepo, quizRepo, progressRepo, dbConn, eventBus, nil)

	var progressCacheDep query.ProgressCache
	if progressCache != nil {
		progressCacheDep = progressCache
	}

	getProfileQuery := query.NewGetProfileHandler(learnerRepo)
	getFeedQuery := query.NewGetFeedPageHandler(learnerRepo, contentRepo)
	getQuizQuery := query.NewGetQuizHandler(contentRepo, quizRepo)
	getProgressQuery := query.NewGetProgressHandler(progressRepo, progressCacheDep)
	listCreatorQuery := query.NewListCreatorContentHandler(contentRepo)

	// ─────────────────────────────────────────────────────────────────────────
	// 10. СОЗДАНИЕ HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing HTTP server...")

	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	httpConfig.EnableCORS = cfg.HTTP.EnableCORS
	httpConfig.AllowedOrigins = cfg.HTTP.AllowedOrigins
	httpConfig.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute

	httpDeps := httpserver.Dependencies{
		UpdateProfileHandler:      updateProfileCmd,
		CreateContentHandler:      createContentCmd,
		AuthorQuizHandler:         authorQuizCmd,
		PublishContentHandler:     publishContentCmd,
		SubmitAttemptHandler:      submitAttemptCmd,
		GetProfileHandler:         getProfileQuery,
		GetFeedPageHandler:        getFeedQuery,
		GetQuizHandler:            getQuizQuery,
		GetProgressHandler:        getProgressQuery,
		ListCreatorContentHandler: listCreatorQuery,
		Logger:                    logger.Default(),
		HealthChecker:             &healthChecker{db: dbConn, cache: redisCache},
	}

	httpServer := httpserver.NewServer(httpConfig, httpDeps)

	// ─────────────────────────────────────────────────────────────────────────
	// 11. ЗАПУСК И GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "address", httpServer.Address())
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	log.Info("LinguaClip backend is running", "http_address", httpServer.Address())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		log.Error("service error", "error", err)
		return err
	}

	log.Info("starting graceful shutdown...", "timeout", cfg.App.ShutdownTimeout.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", "error", err)
		return err
	}

	log.Info("shutdown completed successfully")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// healthChecker проверяет доступность PostgreSQL и Redis.
type healthChecker struct {
	db    *postgres.Connection
	cache *redis.Cache
}

func (h *healthChecker) Check(ctx context.Context) httpserver.HealthStatus {
	status := httpserver.HealthStatus{
		Healthy: true,
		Ready:   true,
		Checks:  map[string]string{},
	}

	if err := h.db.Ping(ctx); err != nil {
		status.Healthy = false
		status.Ready = false
		status.Message = "database unavailable"
		status.Checks["postgres"] = err.Error()
	} else {
		status.Checks["postgres"] = "ok"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			// Redis деградирует, но сервис остаётся работоспособным.
			status.Checks["redis"] = err.Error()
		} else {
			status.Checks["redis"] = "ok"
		}
	}

	return status
}

// setupLogger настраивает структурированное логирование.
func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	if cfg.IsProduction() {
		// JSON формат для production (лучше для агрегаторов логов)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		// Текстовый формат для development (лучше читается)
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}
