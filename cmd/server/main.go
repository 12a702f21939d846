package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/librisys/library-system/internal/api"
	"github.com/librisys/library-system/internal/core/ports"
	"github.com/librisys/library-system/internal/core/service"
	"github.com/librisys/library-system/internal/infrastructure/config"
	memorydb "github.com/librisys/library-system/internal/infrastructure/db/memory"
	mongodb "github.com/librisys/library-system/internal/infrastructure/db/mongo"
	redisdb "github.com/librisys/library-system/internal/infrastructure/db/redis"
	"github.com/librisys/library-system/internal/infrastructure/queue"
	"github.com/librisys/library-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	var (
		bookRepo ports.BookRepository
		userRepo ports.UserRepository
		loanRepo ports.LoanRepository
		db       *mongo.Database
	)

	switch cfg.StorageDriver {
	case "mongo":
		client, database, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongodb connection failed")
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("mongodb disconnect")
			}
		}()

		db = database
		loans := mongodb.NewLoanRepository(db)
		if err := loans.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongodb index creation failed")
		}
		bookRepo = mongodb.NewBookRepository(db)
		userRepo = mongodb.NewUserRepository(db)
		loanRepo = loans
	case "memory":
		bookRepo = memorydb.NewBookRepository()
		userRepo = memorydb.NewUserRepository()
		loanRepo = memorydb.NewLoanRepository()
	default:
		log.Fatal().Str("driver", cfg.StorageDriver).Msg("unknown storage driver")
	}

	// --- Report cache (optional) ---
	var (
		rdb   *redis.Client
		cache service.ReportCache
	)
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("redis close")
			}
		}()
		rdb = client
		cache = redisdb.NewReportCache(client)
	}

	// --- Services ---
	bookService := service.NewBookService(bookRepo, log)
	userService := service.NewUserService(userRepo, log)
	loanService := service.NewLoanService(loanRepo, bookRepo, userRepo, cache, cfg.Loan.PeriodDays, log)
	noticeService := service.NewNoticeService(log)

	// --- Overdue sweep ---
	dispatcher := queue.NewDispatcher(cfg.Loan.NoticeWorkers, noticeService, log)
	dispatcher.Start(ctx)

	sweeper := queue.NewSweeper(loanService, dispatcher, cfg.Loan.SweepInterval, log)
	sweeper.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(bookService, userService, loanService, db, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Str("storage", cfg.StorageDriver).
		Msg("library service started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("library service stopped")
}
