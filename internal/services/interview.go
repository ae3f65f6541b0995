package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"alfredoptarigan/mock-interview/internal/models"
)

var ErrMissingAPIKey = errors.New("API Key not provided")

type ChatInput struct {
	RequestID string
	History   models.History
	Message   string
	Context   string
	APIKey    string
}

type FeedbackInput struct {
	RequestID string
	History   string
	Context   string
	APIKey    string
}

type InterviewService interface {
	Chat(ctx context.Context, in ChatInput) (string, error)
	Feedback(ctx context.Context, in FeedbackInput) (string, error)
	ResolveAPIKey(requestKey string) (string, error)
}

type interviewService struct {
	generator     TextGenerator
	chatFallback  *ModelFallback
	feedbackModel string
	promptBuilder *PromptBuilder
	envAPIKey     string
	errorLog      *ErrorLog
}

func NewInterviewService(
	generator TextGenerator,
	chatModels []string,
	feedbackModel string,
	envAPIKey string,
	errorLog *ErrorLog,
) InterviewService {
	return &interviewService{
		generator:     generator,
		chatFallback:  NewModelFallback(generator, chatModels, errorLog),
		feedbackModel: feedbackModel,
		promptBuilder: NewPromptBuilder(),
		envAPIKey:     envAPIKey,
		errorLog:      errorLog,
	}
}

// ResolveAPIKey prefers the key sent with the request over the configured one.
func (s *interviewService) ResolveAPIKey(requestKey string) (string, error) {
	if requestKey != "" {
		return requestKey, nil
	}
	if s.envAPIKey != "" {
		return s.envAPIKey, nil
	}
	return "", ErrMissingAPIKey
}

// Chat implements InterviewService.
func (s *interviewService) Chat(ctx context.Context, in ChatInput) (string, error) {
	log.Printf("🎤 Chat request received: message=%q history_turns=%d\n", in.Message, in.History.Len())

	apiKey, err := s.ResolveAPIKey(in.APIKey)
	if err != nil {
		return "", err
	}
	if in.APIKey != "" {
		log.Printf("🔑 Using API key: %s...\n", maskKey(in.APIKey))
	} else {
		log.Println("🔑 Using env API key")
	}

	prompt := s.promptBuilder.BuildInterviewerPrompt(in.Context, in.History.Text(), in.Message)
	log.Printf("📝 Interviewer prompt length: %d characters\n", len(prompt))

	text, _, err := s.chatFallback.Generate(ctx, in.RequestID, apiKey, prompt)
	if err != nil {
		return "", err
	}

	return text, nil
}

// Feedback implements InterviewService. Exactly one model is attempted.
func (s *interviewService) Feedback(ctx context.Context, in FeedbackInput) (string, error) {
	apiKey, err := s.ResolveAPIKey(in.APIKey)
	if err != nil {
		return "", err
	}

	prompt := s.promptBuilder.BuildFeedbackPrompt(in.Context, in.History)
	log.Printf("📝 Feedback prompt length: %d characters\n", len(prompt))

	feedback, err := s.generator.GenerateText(ctx, apiKey, s.feedbackModel, prompt)
	if err != nil {
		log.Printf("❌ Feedback generation failed: %v\n", err)
		s.errorLog.Printf(in.RequestID, "Error in feedback: %v", err)
		return "", fmt.Errorf("failed to generate feedback: %w", err)
	}

	return feedback, nil
}

func maskKey(key string) string {
	if len(key) <= 5 {
		return ""
	}
	return key[:5]
}
