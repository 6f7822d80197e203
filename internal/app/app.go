package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/logoforge/logoforge/internal/config"
	"github.com/logoforge/logoforge/internal/db"
	"github.com/logoforge/logoforge/internal/markdown"
	"github.com/logoforge/logoforge/internal/realtime"
	"github.com/logoforge/logoforge/internal/repository"
	"github.com/logoforge/logoforge/internal/service"
	"github.com/logoforge/logoforge/internal/storage"
)

type App struct {
	Cfg *config.Config
	DB  *sqlx.DB
	Hub *realtime.Hub

	UserRepo    repository.UserRepository
	ProfileRepo repository.ProfileRepository

	AuthService       *service.AuthService
	EmailService      *service.EmailService
	CatalogService    *service.CatalogService
	ModerationService *service.ModerationService
	ChatService       *service.ChatService
	DownloadService   *service.DownloadService
	SettingsService   *service.SettingsService
	UploadService     *service.UploadService
	ProfileService    *service.ProfileService

	Markdown *markdown.Renderer

	cancelCleanup context.CancelFunc
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	assetRepository := repository.NewAssetRepository(database)
	settingRepository := repository.NewSettingRepository(database)
	messageRepository := repository.NewMessageRepository(database)
	abuseRepository := repository.NewAbuseLogRepository(database)
	commentRepository := repository.NewCommentRepository(database)
	followRepository := repository.NewFollowRepository(database)
	likeRepository := repository.NewLikeRepository(database)
	downloadRepository := repository.NewDownloadRepository(database)
	grantRepository := repository.NewGrantRepository(database)

	// Storage
	fileStorage, err := storage.NewS3Storage(storage.S3Config{
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Endpoint:      cfg.S3Endpoint,
		PresignExpiry: cfg.S3PresignExpiry,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Realtime
	hub := realtime.NewHub()

	// Services
	emailService := service.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppURL, cfg.AppName, cfg.IsDevelopment())
	authService := service.NewAuthService(
		userRepository,
		profileRepository,
		emailService,
		cfg.JWTSecret,
		cfg.CookieSecure,
		cfg.JWTExpiry,
		cfg.EmailTokenExpiry,
	)
	settingsService := service.NewSettingsService(settingRepository)
	catalogService := service.NewCatalogService(assetRepository)
	moderationService := service.NewModerationService(assetRepository, profileRepository, abuseRepository, fileStorage)
	chatService := service.NewChatService(messageRepository, profileRepository, abuseRepository, hub)
	downloadService := service.NewDownloadService(
		assetRepository,
		downloadRepository,
		grantRepository,
		settingsService,
		fileStorage,
		cfg.GrantTTL,
		cfg.ShareDelay,
	)
	uploadService := service.NewUploadService(assetRepository, fileStorage)
	profileService := service.NewProfileService(
		profileRepository,
		assetRepository,
		followRepository,
		likeRepository,
		commentRepository,
	)

	// Background sweep for stale attempts and expired grants
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	go downloadService.StartCleanup(cleanupCtx, 10*time.Minute)

	return &App{
		Cfg: cfg,
		DB:  database,
		Hub: hub,

		UserRepo:    userRepository,
		ProfileRepo: profileRepository,

		AuthService:       authService,
		EmailService:      emailService,
		CatalogService:    catalogService,
		ModerationService: moderationService,
		ChatService:       chatService,
		DownloadService:   downloadService,
		SettingsService:   settingsService,
		UploadService:     uploadService,
		ProfileService:    profileService,

		Markdown: markdown.NewRenderer(),

		cancelCleanup: cancelCleanup,
	}, nil
}

func (a *App) Close() error {
	if a.cancelCleanup != nil {
		a.cancelCleanup()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
