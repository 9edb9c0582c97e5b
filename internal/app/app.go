package app

import (
	"fmt"
	"time"

	"laddercall_backend/internal/config"
	"laddercall_backend/internal/handlers"
	"laddercall_backend/internal/logger"
	"laddercall_backend/internal/middleware"
	"laddercall_backend/internal/models"
	"laddercall_backend/internal/oauth"
	"laddercall_backend/internal/repositories"
	"laddercall_backend/internal/routes"
	"laddercall_backend/internal/services"
	"laddercall_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run boots the full application: config, logger, database, migrations,
// wiring and the HTTP server.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		// Translate driver errors (duplicate key etc.) into gorm sentinels
		// so services can map them to the error taxonomy.
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := autoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Community{},
		&models.CommunityMember{},
		&models.JobPost{},
		&models.JobPostOptions{},
	)
}

// SetupRouter wires repositories, services and handlers into a gin engine.
// Exported so tests can mount the full router on an httptest server.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	provider := oauth.NewHTTPProvider(cfg.OAuth.UserInfoURL, time.Duration(cfg.OAuth.Timeout)*time.Second)

	serviceContainer := initializeServices(cfg, gormDB, provider)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, provider oauth.Provider) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	communityRepo := repositories.NewCommunityRepository(gormDB)
	memberRepo := repositories.NewMemberRepository(gormDB)
	jobPostRepo := repositories.NewJobPostRepository(gormDB)

	return &services.ServiceContainer{
		AuthService:      services.NewAuthService(userRepo, provider, cfg.OAuth.Provider),
		UserService:      services.NewUserService(userRepo),
		CommunityService: services.NewCommunityService(communityRepo, memberRepo, userRepo),
		JobPostService:   services.NewJobPostService(jobPostRepo, memberRepo, communityRepo, userRepo),
	}
}

func initializeHandlers(sc *services.ServiceContainer) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(base, sc.AuthService),
		UserHandler:      handlers.NewUserHandler(base, sc.UserService),
		CommunityHandler: handlers.NewCommunityHandler(base, sc.CommunityService),
		JobPostHandler:   handlers.NewJobPostHandler(base, sc.JobPostService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestID())

	return ginRouter
}
