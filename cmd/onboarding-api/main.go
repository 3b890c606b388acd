package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"luvix/onboarding/onboarding-backend/internal/auth"
	"luvix/onboarding/onboarding-backend/internal/config"
	"luvix/onboarding/onboarding-backend/internal/digest"
	"luvix/onboarding/onboarding-backend/internal/document"
	"luvix/onboarding/onboarding-backend/internal/mail"
	"luvix/onboarding/onboarding-backend/internal/storage"
	"luvix/onboarding/onboarding-backend/internal/submissions"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Connect to database
	logger.Info("Connecting to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName))
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&submissions.Submission{}); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Build the notification channel
	mailer, err := buildMailer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize mailer", zap.Error(err))
	}
	if err := cfg.Mail.Validate(); err != nil {
		logger.Warn("Mail is not fully configured; submissions will be rejected", zap.Error(err))
	}

	// Optional document archive
	var archiver submissions.Archiver
	if cfg.Storage.Bucket != "" {
		s3Client, err := buildS3Client(cfg)
		if err != nil {
			logger.Fatal("Failed to initialize S3 client", zap.Error(err))
		}
		archiver = storage.NewArchiver(s3Client, cfg.Storage.Bucket, "submissions", logger)
	}

	// Wire the modules
	repo := submissions.NewRepository(db)
	renderer := document.NewRenderer()
	submissionsService := submissions.NewService(repo, renderer, mailer, archiver, cfg.Mail, logger)
	submissionsHandler := submissions.NewHandler(submissionsService, logger)

	authService := auth.NewService(cfg.Admin.PasswordHash, cfg.Admin.JWTSecret, logger)
	authHandler := auth.NewHandler(authService, logger)

	// Setup Router
	router := gin.Default()

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register Routes
	authHandler.RegisterRoutes(router)
	submissionsHandler.RegisterRoutes(router, authService.Middleware())

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Scheduled digest
	var digestScheduler *digest.Scheduler
	if cfg.Digest.Enabled {
		digestScheduler = digest.NewScheduler(submissionsService, mailer, cfg.Mail.Recipient, cfg.Digest.Schedule, logger)
		if err := digestScheduler.Start(); err != nil {
			logger.Fatal("Failed to start digest scheduler", zap.Error(err))
		}
	}

	// Start Server
	srv := &http.Server{
		Addr:    cfg.Server.GetServerAddr(),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen: %s\n", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.Int("port", cfg.Server.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	if digestScheduler != nil {
		digestScheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", zap.Error(err))
	}

	logger.Info("Server exiting")
}

func buildMailer(cfg *config.Config, logger *zap.Logger) (mail.Mailer, error) {
	switch cfg.Mail.Provider {
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.Mail.SESRegion))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
		}
		return mail.NewSESMailer(sesv2.NewFromConfig(awsCfg), cfg.Mail.FromName, cfg.Mail.FromAddress, logger), nil
	default:
		return mail.NewSMTPMailer(
			cfg.Mail.SMTPHost,
			cfg.Mail.SMTPPort,
			cfg.Mail.Username,
			cfg.Mail.Password,
			cfg.Mail.FromName,
			logger,
		), nil
	}
}

func buildS3Client(cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Storage.Region),
	}
	if cfg.Storage.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Storage.AccessKeyID, cfg.Storage.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}
