package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/google/uuid"

	"alfredoptarigan/mock-interview/internal/config"
	"alfredoptarigan/mock-interview/internal/handlers"
)

type Handlers struct {
	Upload    *handlers.UploadHandler
	Interview *handlers.InterviewHandler
	System    *handlers.SystemHandler
}

// New builds the Fiber app with middleware and every route registered.
func New(cfg *config.Config, h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "AI Mock Interview API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		// Empty reflects the requested headers, i.e. every header is allowed.
		AllowHeaders: "",
	}))

	app.Static("/static", cfg.Server.StaticDir)
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/", h.System.HandleRoot)

	api := app.Group("/api")
	api.Get("/health", h.System.HandleHealth)
	api.Get("/models", h.System.HandleListModels)
	api.Post("/upload", h.Upload.HandleUpload)
	api.Post("/chat", h.Interview.HandleChat)
	api.Post("/feedback", h.Interview.HandleFeedback)

	return app
}
