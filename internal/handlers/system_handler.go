package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/mock-interview/internal/models"
	"alfredoptarigan/mock-interview/internal/services"
)

// SystemHandler serves the root banner, health probe and model catalogue.
type SystemHandler struct {
	geminiService    services.GeminiService
	interviewService services.InterviewService
}

func NewSystemHandler(geminiService services.GeminiService, interviewService services.InterviewService) *SystemHandler {
	return &SystemHandler{
		geminiService:    geminiService,
		interviewService: interviewService,
	}
}

// HandleRoot handles GET /
// @Summary  API banner
// @Tags     system
// @Produce  json
// @Success  200  {object}  models.RootResponse
// @Router   / [get]
func (h *SystemHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(models.RootResponse{Message: "AI Mock Interview System API"})
}

// HandleHealth handles GET /api/health
func (h *SystemHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}

// HandleListModels handles GET /api/models
// @Summary      Available models
// @Description  Lists the models that support generateContent for the given credential.
// @Tags         system
// @Produce      json
// @Param        X-API-Key  header    string  false  "Gemini API key, falls back to GEMINI_API_KEY"
// @Success      200        {object}  models.ModelsResponse
// @Failure      401        {object}  models.ErrorResponse
// @Failure      500        {object}  models.ErrorResponse
// @Router       /api/models [get]
func (h *SystemHandler) HandleListModels(c *fiber.Ctx) error {
	apiKey, err := h.interviewService.ResolveAPIKey(c.Get("X-API-Key"))
	if err != nil {
		return serviceError(err)
	}

	list, err := h.geminiService.ListModels(c.UserContext(), apiKey)
	if err != nil {
		log.Printf("❌ Failed to list models: %v\n", err)
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if list == nil {
		list = []models.ModelInfo{}
	}

	return c.JSON(models.ModelsResponse{Models: list})
}
