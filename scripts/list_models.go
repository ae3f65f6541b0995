package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"alfredoptarigan/mock-interview/internal/config"
	"alfredoptarigan/mock-interview/internal/services"
)

func main() {
	cfg := config.Load()
	if cfg.Gemini.APIKey == "" {
		log.Fatal("❌ GEMINI_API_KEY is required to list models")
	}

	geminiService := services.NewGeminiService()

	models, err := geminiService.ListModels(context.Background(), cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to list models: %v", err)
	}

	fmt.Println("Listing ALL available models:")
	fmt.Println(strings.Repeat("=", 80))

	for _, m := range models {
		fmt.Printf("\nModel Name: %s\n", m.Name)
		fmt.Printf("Display Name: %s\n", m.DisplayName)
	}

	log.Printf("✅ %d models support generateContent\n", len(models))
}
