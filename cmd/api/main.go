package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/smart-learners/orca-api/internal/config"
	"github.com/smart-learners/orca-api/internal/database"
	"github.com/smart-learners/orca-api/internal/handler"
	"github.com/smart-learners/orca-api/internal/middleware"
	"github.com/smart-learners/orca-api/internal/models"
	"github.com/smart-learners/orca-api/internal/repository"
	"github.com/smart-learners/orca-api/internal/router"
	"github.com/smart-learners/orca-api/internal/service"
	"github.com/smart-learners/orca-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.LabSubmission{}, &models.AssessmentResult{}, &models.ExamSession{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	modelClient, err := ai.NewOpenAIClient(ai.OpenAIConfig{
		APIKey:    cfg.OpenAIAPIKey,
		Model:     cfg.AIModel,
		MaxTokens: cfg.AIMaxTokens,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("failed to create model client: %v", err)
	}
	grader := ai.NewGrader(modelClient, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	submissionRepo := repository.NewLabSubmissionRepository(db)
	assessmentRepo := repository.NewAssessmentResultRepository(db)
	examRepo := repository.NewExamSessionRepository(db)

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.JWTTokenTTL, logger)
	gradingService := service.NewGradingService(grader, submissionRepo, logger)
	assessmentService := service.NewAssessmentService(assessmentRepo, validate, logger)
	chatService := service.NewChatService(grader, logger)
	examService := service.NewExamService(grader, examRepo, validate, logger)
	projectService := service.NewProjectService(grader, logger)
	progressService := service.NewProgressService(submissionRepo, assessmentRepo, examRepo, redisClient, cfg.ProgressCacheTTL, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(authService, logger),
		GradingHandler:     handler.NewGradingHandler(gradingService, logger),
		AssessmentHandler:  handler.NewAssessmentHandler(assessmentService, logger),
		ChatHandler:        handler.NewChatHandler(chatService, logger),
		ExamHandler:        handler.NewExamHandler(examService, logger),
		ProjectHandler:     handler.NewProjectHandler(projectService, logger),
		ProgressHandler:    handler.NewProgressHandler(progressService, logger),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
		OptionalMiddleware: middleware.JWTOptional(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
