package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smart-learners/orca-api/internal/config"
	"github.com/smart-learners/orca-api/internal/handler"
	"github.com/smart-learners/orca-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler        *handler.AuthHandler
	GradingHandler     *handler.GradingHandler
	AssessmentHandler  *handler.AssessmentHandler
	ChatHandler        *handler.ChatHandler
	ExamHandler        *handler.ExamHandler
	ProjectHandler     *handler.ProjectHandler
	ProgressHandler    *handler.ProgressHandler
	JWTMiddleware      fiber.Handler
	OptionalMiddleware fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	optionalMiddleware := deps.OptionalMiddleware
	if optionalMiddleware == nil {
		optionalMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth, jwtMiddleware)
	}

	// Grading, assessment, chat and project evaluation accept anonymous
	// callers; identity is attached when a valid token is presented.
	ai := api.Group("/ai", optionalMiddleware)
	if deps.GradingHandler != nil {
		deps.GradingHandler.Register(ai)
	}
	if deps.AssessmentHandler != nil {
		deps.AssessmentHandler.Register(ai)
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.Register(ai)
	}
	if deps.ProjectHandler != nil {
		deps.ProjectHandler.Register(ai)
	}

	// Exam sessions and progress always belong to a user.
	if deps.ExamHandler != nil {
		exam := api.Group("/ai/exam", jwtMiddleware)
		deps.ExamHandler.Register(exam)
	}
	if deps.ProgressHandler != nil {
		progress := api.Group("/ai/progress", jwtMiddleware)
		deps.ProgressHandler.Register(progress)
	}
}
