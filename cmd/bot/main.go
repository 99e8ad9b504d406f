package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kyc-bot.backend/internal/config"
	domainrepos "kyc-bot.backend/internal/domain/repositories"
	"kyc-bot.backend/internal/infrastructure/jobs"
	"kyc-bot.backend/internal/infrastructure/repositories"
	"kyc-bot.backend/internal/interfaces/http/handlers"
	"kyc-bot.backend/internal/interfaces/telegram"
	"kyc-bot.backend/internal/metrics"
	"kyc-bot.backend/internal/usecases"
	"kyc-bot.backend/pkg/logger"
	"kyc-bot.backend/pkg/redis"
)

const shutdownTimeout = 5 * time.Second

// chatBot is the part of *tgbotapi.BotAPI the process uses.
type chatBot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(driver, dsn string) (*gorm.DB, error) {
		if driver == config.DriverSQLite {
			return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		}
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	getStdDB      = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	newRegistry   = func() (prometheus.Registerer, prometheus.Gatherer) { return prometheus.DefaultRegisterer, prometheus.DefaultGatherer }
	newBot        = newTelegramBot
	runServer     = func(srv *http.Server) error { return srv.ListenAndServe() }
	notifySignals = func(ctx context.Context) (context.Context, context.CancelFunc) {
		return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func newTelegramBot(token string, debug bool) (chatBot, error) {
	if err := tgbotapi.SetLogger(telegram.NewBotLogger(logger.GetLogger())); err != nil {
		return nil, err
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = debug
	logger.Info(context.Background(), "Authorized on Telegram", zap.String("bot", bot.Self.UserName))
	return bot, nil
}

func runMainProcess() error {
	ctx, stop := notifySignals(context.Background())
	defer stop()
	return run(ctx)
}

func run(parent context.Context) error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	initLog(cfg.Server.Env)
	defer logger.Sync()
	logger.Info(parent, "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Record store
	db, err := openDB(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	records := repositories.NewKYCRecordRepository(db)
	if err := records.Ping(parent); err != nil {
		return fmt.Errorf("record store unreachable: %w", err)
	}
	if err := records.AutoMigrate(); err != nil {
		return fmt.Errorf("failed to migrate record store: %w", err)
	}
	logger.Info(parent, "Record store ready", zap.String("driver", cfg.Database.Driver))

	// Email index
	var claims domainrepos.EmailClaimRepository
	switch cfg.Redis.Backend {
	case config.EmailIndexRedis:
		if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer redis.Close()
		claims = repositories.NewRedisEmailClaimRepository(cfg.Redis.Prefix)
	default:
		claims = repositories.NewMemoryEmailClaimRepository()
	}
	logger.Info(parent, "Email index ready", zap.String("backend", cfg.Redis.Backend))

	registerer, gatherer := newRegistry()
	m := metrics.New(registerer)

	bot, err := newBot(cfg.Telegram.Token, cfg.Telegram.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize telegram bot: %w", err)
	}

	// Usecases
	sessions := usecases.NewSessionTable()
	client := telegram.NewClient(bot)
	workflow := usecases.NewKYCWorkflowUsecase(sessions, records, claims, client, m, cfg.Review.AdminID, cfg.Review.BrandName)
	reviewer := usecases.NewReviewerUsecase(sessions, records, claims, client, m, cfg.Review.AdminID)
	dispatcher := telegram.NewDispatcher(workflow, reviewer)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Operational HTTP surface
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           newRouter(handlers.NewHealthHandler(records), gatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "HTTP server starting", zap.String("port", cfg.Server.Port))
		if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			cancel()
		}
	}()

	backlogJob := jobs.NewReviewBacklogJob(sessions, m, cfg.Review.BacklogInterval)
	go backlogJob.Start(ctx)

	if err := client.RegisterMenu(ctx); err != nil {
		logger.Warn(ctx, "Command menu registration failed", zap.Error(err))
	}

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = cfg.Telegram.PollTimeout
	updates := bot.GetUpdatesChan(updateCfg)

	logger.Info(ctx, "KYC bot started", zap.Int64("admin_id", cfg.Review.AdminID))
	dispatcher.Run(ctx, updates)

	logger.Info(parent, "Shutting down")
	bot.StopReceivingUpdates()
	backlogJob.Stop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn(parent, "HTTP server shutdown failed", zap.Error(err))
	}

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	default:
		return nil
	}
}
