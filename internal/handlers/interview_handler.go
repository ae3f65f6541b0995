package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/mock-interview/internal/models"
	"alfredoptarigan/mock-interview/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
}

func NewInterviewHandler(interviewService services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
	}
}

// HandleChat handles POST /api/chat
// @Summary      Next interviewer turn
// @Description  Sends the conversation to the fallback model list and returns the interviewer's reply.
// @Tags         interview
// @Accept       json
// @Produce      json
// @Param        request  body      models.ChatRequest  true  "Conversation"
// @Success      200      {object}  models.ChatResponse
// @Failure      401      {object}  models.ErrorResponse
// @Failure      422      {object}  models.ValidationErrorResponse
// @Failure      500      {object}  models.ErrorResponse
// @Router       /api/chat [post]
func (h *InterviewHandler) HandleChat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	reply, err := h.interviewService.Chat(c.UserContext(), services.ChatInput{
		RequestID: requestID(c),
		History:   *req.History,
		Message:   *req.Message,
		Context:   *req.Context,
		APIKey:    req.APIKey,
	})
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(models.ChatResponse{Response: reply})
}

// HandleFeedback handles POST /api/feedback
// @Summary      Interview feedback
// @Description  Reviews the full transcript with a single model and returns Markdown feedback.
// @Tags         interview
// @Accept       json
// @Produce      json
// @Param        request  body      models.FeedbackRequest  true  "Transcript"
// @Success      200      {object}  models.FeedbackResponse
// @Failure      401      {object}  models.ErrorResponse
// @Failure      422      {object}  models.ValidationErrorResponse
// @Failure      500      {object}  models.ErrorResponse
// @Router       /api/feedback [post]
func (h *InterviewHandler) HandleFeedback(c *fiber.Ctx) error {
	var req models.FeedbackRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	feedback, err := h.interviewService.Feedback(c.UserContext(), services.FeedbackInput{
		RequestID: requestID(c),
		History:   *req.History,
		Context:   *req.Context,
		APIKey:    req.APIKey,
	})
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(models.FeedbackResponse{Feedback: feedback})
}

func serviceError(err error) error {
	if errors.Is(err, services.ErrMissingAPIKey) {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
