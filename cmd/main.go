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
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/Dosada05/chessmate-central/config"
	"github.com/Dosada05/chessmate-central/db"
	"github.com/Dosada05/chessmate-central/handlers"
	"github.com/Dosada05/chessmate-central/metrics"
	"github.com/Dosada05/chessmate-central/middleware"
	"github.com/Dosada05/chessmate-central/repositories"
	api "github.com/Dosada05/chessmate-central/routes"
	"github.com/Dosada05/chessmate-central/services"
	"github.com/Dosada05/chessmate-central/standings"
	"github.com/Dosada05/chessmate-central/storage"
	"github.com/Dosada05/chessmate-central/textgen"
	"github.com/Dosada05/chessmate-central/utils"
)

// @title Chessmate Central API
// @version 1.0
// @description Chess tournaments, registrations, score tables and standings.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// chessmate-central hash-password <пароль> печатает значение для ORGANIZER_PASSWORD_HASH
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := utils.HashPassword(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	if err := db.Migrate(ctx, dbConn); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database connection established")

	// Хранилище файлов: R2, если настроен, иначе локальный диск
	uploader, uploadDir, err := newUploader(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize file storage", slog.Any("error", err))
		os.Exit(1)
	}

	appMetrics := metrics.New()

	// Инициализация WebSocket Hub
	wsHub := standings.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	resultRepo := repositories.NewPostgresResultRepository(dbConn)
	blogRepo := repositories.NewPostgresBlogRepository(dbConn)

	// Инициализация сервисов
	resultService := services.NewResultService(resultRepo, tournamentRepo, registrationRepo, wsHub, appMetrics, logger,
		services.ResultServiceConfig{MaxRetries: cfg.ResultMaxRetries, TieBreak: cfg.StandingsTieBreak})
	tournamentService := services.NewTournamentService(dbConn, tournamentRepo, registrationRepo, resultRepo, resultService, appMetrics, logger)

	var notifier services.RegistrationNotifier
	if cfg.SMTPEnabled() {
		emailService, err := services.NewEmailService(cfg)
		if err != nil {
			logger.Error("failed to initialize email service", slog.Any("error", err))
			os.Exit(1)
		}
		notifier = emailService
	} else {
		logger.Warn("SMTP is not configured, registration emails are disabled")
	}
	registrationService := services.NewRegistrationService(registrationRepo, tournamentRepo, notifier, resultService, logger)

	var generator services.DescriptionGenerator
	if cfg.TextGenURL != "" {
		generator = textgen.NewHTTPGenerator(cfg.TextGenURL, cfg.TextGenAPIKey, nil)
	}
	descriptionService := services.NewDescriptionService(generator)

	blogService := services.NewBlogService(blogRepo, logger)
	uploadService := services.NewUploadService(uploader, logger)
	authService := services.NewAuthService(cfg.OrganizerPasswordHash)
	if !authService.Enabled() {
		logger.Warn("ORGANIZER_PASSWORD_HASH is not set, organizer routes are open")
	}
	logger.Info("Services initialized")

	// Запуск планировщика автоматического обновления статусов турниров
	scheduler, err := services.NewStatusScheduler(tournamentService, cfg.StatusSchedulerInterval, logger)
	if err != nil {
		logger.Error("failed to create status scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	if scheduler != nil {
		scheduler.Start()
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				logger.Error("scheduler shutdown failed", slog.Any("error", err))
			}
		}()
	}

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:         handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Tournament:   handlers.NewTournamentHandler(tournamentService, descriptionService),
		Registration: handlers.NewRegistrationHandler(registrationService),
		Blog:         handlers.NewBlogHandler(blogService),
		Result:       handlers.NewResultHandler(resultService),
		Upload:       handlers.NewUploadHandler(uploadService),
		WebSocket:    handlers.NewWebSocketHandler(ctx, wsHub, tournamentService, cfg.CORSAllowedOrigins),
	}, api.Options{
		AuthEnabled:        authService.Enabled(),
		JWTSecret:          []byte(cfg.JWTSecretKey),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		PublicLimiter:      middleware.NewIPRateLimiter(rate.Limit(cfg.RegistrationRateLimit), cfg.RegistrationRateBurst),
		Metrics:            appMetrics,
		UploadDir:          uploadDir,
	})
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}

// newUploader returns the directory to serve under /uploads/ only for local storage.
func newUploader(ctx context.Context, cfg *config.Config) (storage.FileUploader, string, error) {
	r2 := storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	if r2.Configured() {
		u, err := storage.NewCloudflareR2Uploader(ctx, r2)
		if err != nil {
			return nil, "", err
		}
		slog.Info("Cloudflare R2 uploader initialized", slog.String("bucket", r2.BucketName))
		return u, "", nil
	}

	u, err := storage.NewLocalDiskUploader(cfg.UploadDir, "/uploads")
	if err != nil {
		return nil, "", err
	}
	slog.Info("Storing uploads on local disk", slog.String("dir", cfg.UploadDir))
	return u, cfg.UploadDir, nil
}
