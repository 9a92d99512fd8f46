package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/rental_booking/internal/api"
	"github.com/Freeeeeet/rental_booking/internal/app"
	"github.com/Freeeeeet/rental_booking/internal/cache"
	"github.com/Freeeeeet/rental_booking/internal/config"
	"github.com/Freeeeeet/rental_booking/internal/controller"
	"github.com/Freeeeeet/rental_booking/internal/controller/access"
	"github.com/Freeeeeet/rental_booking/internal/controller/dialogue"
	"github.com/Freeeeeet/rental_booking/internal/controller/state"
	"github.com/Freeeeeet/rental_booking/internal/notifier"
	"github.com/Freeeeeet/rental_booking/internal/repository"
	"github.com/Freeeeeet/rental_booking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout      = 10 * time.Second
	availabilityCacheTTL = 5 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogFile)
	defer logger.Sync()

	logger.Info("Starting Karcher booking service",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.String("timezone", cfg.Location.String()),
		zap.Bool("bot_enabled", cfg.BotEnabled()),
	)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Service stopped with error", zap.Error(err))
	}
	logger.Info("Service stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer func() {
		pool.Close()
		logger.Info("✅ PostgreSQL connection pool closed")
	}()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	logger.Info("Connected to PostgreSQL")

	if err := migrate(ctx, pool, logger); err != nil {
		return err
	}

	clientRepo := repository.NewClientRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool, cfg.Location)
	commentRepo := repository.NewCommentRepository(pool)

	var botInstance *bot.Bot
	if cfg.BotEnabled() {
		botInstance, err = bot.New(cfg.TelegramToken)
		if err != nil {
			return fmt.Errorf("create telegram bot: %w", err)
		}
	} else {
		logger.Warn("⚠️ Telegram bot token or admin chat ID not configured")
	}

	sinks, closeSinks := buildSinks(cfg, botInstance, logger)
	defer closeSinks()

	dispatcher := notifier.NewDispatcher(notifier.DefaultQueueSize, logger, sinks...)
	dispatcher.Start()

	bookingOpts := []service.BookingServiceOption{service.WithAnnouncer(dispatcher)}
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("Redis unavailable, availability cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			bookingOpts = append(bookingOpts, service.WithAvailabilityCache(cache.NewRedisCache(redisClient, availabilityCacheTTL)))
			logger.Info("Availability cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	clientService := service.NewClientService(clientRepo, bookingRepo, logger)
	bookingService := service.NewBookingService(bookingRepo, clientRepo, cfg.Location, logger, bookingOpts...)
	commentService := service.NewCommentService(commentRepo, logger)

	handler := api.NewHandler(clientService, bookingService, commentService, cfg.AllowedOrigins, logger)
	router := api.NewRouter(handler, api.RouterConfig{
		AllowedOrigins:     cfg.AllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Production:         cfg.IsProduction(),
	}, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr), zap.Strings("origins", cfg.AllowedOrigins))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if botInstance != nil {
		sessions := state.NewManager()
		engine := dialogue.NewEngine(
			sessions,
			access.NewGuard(cfg.AdminChatID),
			bookingService,
			clientService,
			cfg.Location,
			logger,
		)

		botController := controller.NewBotController(botInstance, engine, logger)
		if err := botController.RegisterHandlers(ctx); err != nil {
			logger.Warn("Bot commands menu not set", zap.Error(err))
		}

		scheduler := app.NewScheduler(sessions, cfg.SessionIdleTimeout, logger)
		scheduler.Start(gctx)
		defer scheduler.Stop()

		g.Go(func() error {
			// Start блокируется до отмены контекста
			return botController.Start(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", zap.Error(err))
		}
		if err := dispatcher.Stop(shutdownCtx); err != nil {
			logger.Error("Notification dispatcher did not drain in time", zap.Error(err))
		}
		return nil
	})

	return g.Wait()
}

func migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// buildSinks собирает получателей уведомлений о новых бронированиях
func buildSinks(cfg *config.Config, botInstance *bot.Bot, logger *zap.Logger) ([]notifier.Sink, func()) {
	var sinks []notifier.Sink
	closeFn := func() {}

	if botInstance != nil {
		sinks = append(sinks, notifier.NewTelegram(botInstance, cfg.AdminChatID, cfg.Location))
	}

	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink := notifier.NewKafka(notifier.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaBookingTopic))
		sinks = append(sinks, kafkaSink)
		closeFn = func() {
			if err := kafkaSink.Close(); err != nil {
				logger.Error("Failed to close kafka writer", zap.Error(err))
			}
		}
		logger.Info("Kafka booking events enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaBookingTopic),
		)
	}

	return sinks, closeFn
}
