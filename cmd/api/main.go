// @title        AI Mock Interview API
// @version      1.0
// @description  Resume upload, interviewer chat and feedback backed by Gemini.
// @BasePath     /
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "alfredoptarigan/mock-interview/docs"
	"alfredoptarigan/mock-interview/internal/config"
	"alfredoptarigan/mock-interview/internal/handlers"
	"alfredoptarigan/mock-interview/internal/server"
	"alfredoptarigan/mock-interview/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	if cfg.Gemini.APIKey == "" {
		log.Println("⚠️  GEMINI_API_KEY is not set, requests must carry their own apiKey")
	}

	errorLog, err := services.NewErrorLog(cfg.Logging.ErrorLogPath)
	if err != nil {
		log.Fatalf("❌ Failed to open error log: %v", err)
	}
	defer errorLog.Close()

	// Initialize services
	pdfParser := services.NewPDFParserService()
	geminiService := services.NewGeminiService()
	interviewService := services.NewInterviewService(
		geminiService,
		cfg.Gemini.ChatModels,
		cfg.Gemini.FeedbackModel,
		cfg.Gemini.APIKey,
		errorLog,
	)
	log.Printf("✅ Services initialized (chat models: %v, feedback model: %s)\n", cfg.Gemini.ChatModels, cfg.Gemini.FeedbackModel)

	app := server.New(cfg, server.Handlers{
		Upload:    handlers.NewUploadHandler(pdfParser),
		Interview: handlers.NewInterviewHandler(interviewService),
		System:    handlers.NewSystemHandler(geminiService, interviewService),
	})
	log.Println("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s/swagger/index.html\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Printf("❌ Failed to start server: %v", err)
	}
}
