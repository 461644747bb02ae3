package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/rmendoza/alumnitrack/internal/app/controllers"
	appMigrations "github.com/rmendoza/alumnitrack/internal/app/migrations"
	appRepos "github.com/rmendoza/alumnitrack/internal/app/repositories"
	appRoutes "github.com/rmendoza/alumnitrack/internal/app/routes"
	appServices "github.com/rmendoza/alumnitrack/internal/app/services"
	"github.com/rmendoza/alumnitrack/internal/config"
	"github.com/rmendoza/alumnitrack/internal/db"
	appMiddleware "github.com/rmendoza/alumnitrack/internal/middleware"
	pkgAuth "github.com/rmendoza/alumnitrack/internal/pkg/auth"
	"github.com/rmendoza/alumnitrack/internal/pkg/email"
	"github.com/rmendoza/alumnitrack/internal/pkg/filestorage"
	"github.com/rmendoza/alumnitrack/internal/pkg/flagledger"
	"github.com/rmendoza/alumnitrack/internal/pkg/helpers"
	"github.com/rmendoza/alumnitrack/internal/pkg/logger"
	"github.com/rmendoza/alumnitrack/internal/pkg/websocket"
	"github.com/rmendoza/alumnitrack/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                   *appRepos.Repositories
	JWTService              *pkgAuth.JWTService
	EmailService            email.EmailService
	FileStorage             *filestorage.LocalStorage
	Ledger                  *flagledger.Ledger
	RedisClient             *redis.Client
	Hub                     *websocket.Hub
	FeedHandler             *websocket.Handler
	ActivityService         *appServices.ActivityService
	GateService             *appServices.GateService
	AuthService             *appServices.AuthService
	ProfileService          *appServices.ProfileService
	QuestionnaireService    *appServices.QuestionnaireService
	AnnouncementService     *appServices.AnnouncementService
	DeletionService         *appServices.DeletionService
	DeletionProcessor       *appServices.DeletionProcessor
	AuthController          *appControllers.AuthController
	ProfileController       *appControllers.ProfileController
	QuestionnaireController *appControllers.QuestionnaireController
	AnnouncementController  *appControllers.AnnouncementController
	ActivityController      *appControllers.ActivityController
	DeletionController      *appControllers.DeletionController
	AuthMiddleware          *appMiddleware.AuthMiddleware
	Logger                  zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding failure is not fatal; an admin can be created by hand
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// File storage serves announcement images under /uploads
	baseURL := "http://localhost:" + cfg.Server.Port
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// Flag ledger backs the one-shot notices and the per-session prompt
	// guard. Redis when configured, otherwise the in-process store.
	var store flagledger.Store
	if cfg.Redis.Addr != "" {
		deps.RedisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := deps.RedisClient.Ping(ctx).Err(); err != nil {
			lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		store = flagledger.NewRedisStore(deps.RedisClient)
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Flag ledger backed by Redis")
	} else {
		store = flagledger.NewMemoryStore()
		lgr.Info().Msg("Flag ledger backed by in-process store")
	}
	deps.Ledger = flagledger.New(store)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.Mail.Host,
		Port:      cfg.Mail.Port,
		Username:  cfg.Mail.Username,
		Password:  cfg.Mail.Password,
		FromName:  cfg.Mail.FromName,
		FromEmail: cfg.Mail.FromAddress,
		UseTLS:    true,
		BaseURL:   cfg.Mail.BaseURL,
	}, lgr)

	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()
	deps.FeedHandler = websocket.NewHandler(deps.Hub, lgr)

	// Services
	deps.ActivityService = appServices.NewActivityService(deps.Repos.ActivityLogRepository, lgr)
	deps.GateService = appServices.NewGateService(
		deps.Repos.UserRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.TokenRepository,
		deps.Repos.DeletionRequestRepository,
		deps.Repos.QuestionnaireRepository,
		deps.Ledger,
		deps.JWTService.RefreshTokenLifetime(),
		lgr,
	)
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.VerificationTokenRepo,
		deps.Repos.PasswordResetTokenRepo,
		deps.JWTService,
		deps.EmailService,
		deps.GateService,
		deps.ActivityService,
		deps.Ledger,
		lgr,
	)
	deps.ProfileService = appServices.NewProfileService(
		deps.Repos.ProfileRepository,
		deps.Repos.UserRepository,
		deps.ActivityService,
		lgr,
	)
	deps.QuestionnaireService = appServices.NewQuestionnaireService(
		deps.Repos.QuestionnaireRepository,
		deps.Repos.ProfileRepository,
		deps.ActivityService,
		deps.Ledger,
		lgr,
	)
	deps.AnnouncementService = appServices.NewAnnouncementService(
		deps.Repos.AnnouncementRepository,
		deps.FileStorage,
		deps.Hub,
		deps.ActivityService,
		lgr,
	)
	deps.DeletionService = appServices.NewDeletionService(
		deps.Repos.DeletionRequestRepository,
		deps.Repos.TokenRepository,
		deps.ActivityService,
		deps.Ledger,
		lgr,
	)
	deps.DeletionProcessor = appServices.NewDeletionProcessor(
		&db.PostgresDB{Pool: dbPool},
		deps.Repos.DeletionRequestRepository,
		deps.Repos.UserRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.TokenRepository,
		deps.ActivityService,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService, lgr)
	deps.QuestionnaireController = appControllers.NewQuestionnaireController(deps.QuestionnaireService, lgr)
	deps.AnnouncementController = appControllers.NewAnnouncementController(deps.AnnouncementService, lgr)
	deps.ActivityController = appControllers.NewActivityController(deps.ActivityService, lgr)
	deps.DeletionController = appControllers.NewDeletionController(deps.DeletionService, deps.DeletionProcessor, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS(""))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProfileController,
		deps.QuestionnaireController,
		deps.AnnouncementController,
		deps.ActivityController,
		deps.DeletionController,
		deps.FeedHandler,
		deps.AuthMiddleware,
		cfg.Jobs.DeletionSecret,
	)

	return router
}
