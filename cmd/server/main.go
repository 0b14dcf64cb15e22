package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"estate-hub.backend/internal/config"
	"estate-hub.backend/internal/domain/notifications"
	"estate-hub.backend/internal/infrastructure/jobs"
	infranotif "estate-hub.backend/internal/infrastructure/notifications"
	"estate-hub.backend/internal/infrastructure/repositories"
	"estate-hub.backend/internal/interfaces/http/handlers"
	"estate-hub.backend/internal/interfaces/http/middleware"
	"estate-hub.backend/internal/usecases"
	"estate-hub.backend/pkg/jwt"
	"estate-hub.backend/pkg/logger"
	"estate-hub.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	submissionRepo := repositories.NewVerificationSubmissionRepository(db)
	propertyRepo := repositories.NewPropertyRepository(db)
	offerRepo := repositories.NewPropertyOfferRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize notification dispatcher
	var dispatcher notifications.Dispatcher
	if cfg.Notifications.Enabled {
		sesDispatcher, err := infranotif.NewSESDispatcher(
			context.Background(),
			cfg.Notifications.AWSRegion,
			cfg.Notifications.Sender,
			userRepo,
		)
		if err != nil {
			return fmt.Errorf("failed to initialize SES dispatcher: %w", err)
		}
		dispatcher = sesDispatcher
	} else {
		dispatcher = infranotif.NewLogDispatcher()
	}

	// Initialize usecases
	triageUsecase := usecases.NewVerificationTriageUsecase(submissionRepo, userRepo, usecases.TriageRules{
		RiskThreshold:    cfg.Triage.RiskThreshold,
		QualityThreshold: cfg.Triage.QualityThreshold,
	})
	offerUsecase := usecases.NewOfferUsecase(offerRepo, propertyRepo, userRepo, uow, dispatcher, usecases.ExpiryWindows{
		FullPaymentDays: cfg.Offers.FullPaymentWindowDays,
		DefaultDays:     cfg.Offers.DefaultWindowDays,
		MaxDays:         cfg.Offers.MaxWindowDays,
	})

	// Initialize handlers
	verificationHandler := handlers.NewVerificationHandler(triageUsecase)
	offerHandler := handlers.NewOfferHandler(offerUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewOfferExpiryJob(offerUsecase, cfg.Offers.SweepInterval, cfg.Offers.SweepBatchSize)
	go expiryJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		verificationHandler: verificationHandler,
		offerHandler:        offerHandler,
		authMiddleware:      middleware.AuthMiddleware(jwtService),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		expiryJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Estate-Hub Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
