package services

import (
	"context"
	"errors"
	"fmt"
	"log"
)

var errNoModels = errors.New("no models configured")

// AllModelsFailedError is returned when every model of a fallback list failed.
type AllModelsFailedError struct {
	Models  []string
	LastErr error
}

func (e *AllModelsFailedError) Error() string {
	return fmt.Sprintf("All models failed. Last error: %v", e.LastErr)
}

func (e *AllModelsFailedError) Unwrap() error {
	return e.LastErr
}

// ModelFallback tries each model once, in order, and stops at the first
// success. There is no delay between attempts.
type ModelFallback struct {
	generator TextGenerator
	models    []string
	errorLog  *ErrorLog
}

func NewModelFallback(generator TextGenerator, models []string, errorLog *ErrorLog) *ModelFallback {
	return &ModelFallback{
		generator: generator,
		models:    append([]string(nil), models...),
		errorLog:  errorLog,
	}
}

func (f *ModelFallback) Models() []string {
	return append([]string(nil), f.models...)
}

// Generate returns the text of the first model that succeeds and that
// model's name.
func (f *ModelFallback) Generate(ctx context.Context, requestID, apiKey, prompt string) (string, string, error) {
	if len(f.models) == 0 {
		return "", "", &AllModelsFailedError{LastErr: errNoModels}
	}

	var lastErr error
	for _, model := range f.models {
		log.Printf("🤖 Trying model: %s\n", model)

		text, err := f.generator.GenerateText(ctx, apiKey, model, prompt)
		if err == nil {
			log.Printf("✅ Response generated with %s (%d characters)\n", model, len(text))
			f.errorLog.Printf(requestID, "chat served by %s", model)
			return text, model, nil
		}

		lastErr = err
		log.Printf("❌ Model %s failed: %v\n", model, err)
		f.errorLog.Printf(requestID, "model %s failed: %v", model, err)

		// A cancelled request makes the remaining attempts pointless.
		if ctxErr := ctx.Err(); ctxErr != nil {
			break
		}
	}

	failure := &AllModelsFailedError{Models: f.Models(), LastErr: lastErr}
	f.errorLog.Printf(requestID, "Error in chat: %v", failure)
	return "", "", failure
}
