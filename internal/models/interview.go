package models

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	History *History `json:"history" validate:"required"`
	Message *string  `json:"message" validate:"required"`
	Context *string  `json:"context" validate:"required"`
	APIKey  string   `json:"apiKey,omitempty"`
}

// FeedbackRequest is the body of POST /api/feedback.
type FeedbackRequest struct {
	History *string `json:"history" validate:"required"`
	Context *string `json:"context" validate:"required"`
	APIKey  string  `json:"apiKey,omitempty"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type FeedbackResponse struct {
	Feedback string `json:"feedback"`
}

type RootResponse struct {
	Message string `json:"message"`
}

type ModelInfo struct {
	Name             string   `json:"name"`
	DisplayName      string   `json:"display_name"`
	SupportedActions []string `json:"supported_actions"`
}

type ModelsResponse struct {
	Models []ModelInfo `json:"models"`
}
