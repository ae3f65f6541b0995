package services

import (
	"context"
	"fmt"
	"slices"

	"google.golang.org/genai"

	"alfredoptarigan/mock-interview/internal/models"
)

// TextGenerator produces text for a prompt with one specific model.
type TextGenerator interface {
	GenerateText(ctx context.Context, apiKey, model, prompt string) (string, error)
}

type GeminiService interface {
	TextGenerator
	ListModels(ctx context.Context, apiKey string) ([]models.ModelInfo, error)
}

type geminiService struct{}

// NewGeminiService returns a client that authenticates every call with the
// key it is given, since the credential can differ per request.
func NewGeminiService() GeminiService {
	return &geminiService{}
}

func (g *geminiService) newClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return client, nil
}

// GenerateText implements TextGenerator.
func (g *geminiService) GenerateText(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := g.newClient(ctx, apiKey)
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// ListModels implements GeminiService. Only models that support
// generateContent are returned.
func (g *geminiService) ListModels(ctx context.Context, apiKey string) ([]models.ModelInfo, error) {
	client, err := g.newClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	var result []models.ModelInfo
	for m, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		if !slices.Contains(m.SupportedActions, "generateContent") {
			continue
		}
		result = append(result, models.ModelInfo{
			Name:             m.Name,
			DisplayName:      m.DisplayName,
			SupportedActions: m.SupportedActions,
		})
	}

	return result, nil
}
