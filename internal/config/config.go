package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	Storage StorageConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	StaticDir string
}

type GeminiConfig struct {
	// APIKey is the fallback credential used when a request carries none.
	APIKey        string
	ChatModels    []string
	FeedbackModel string
}

type StorageConfig struct {
	MaxFileSize int64
}

type LoggingConfig struct {
	ErrorLogPath string
}

// DefaultChatModels is the fallback list tried in order by the chat endpoint.
var DefaultChatModels = []string{
	"models/gemini-flash-latest",
	"models/gemini-pro-latest",
	"models/gemini-2.0-flash-lite-001",
	"models/gemini-2.5-flash-lite",
}

const DefaultFeedbackModel = "models/gemini-flash-latest"

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "8000"),
			Env:       getEnv("ENV", "development"),
			StaticDir: getEnv("STATIC_DIR", "./static"),
		},
		Gemini: GeminiConfig{
			APIKey:        getEnv("GEMINI_API_KEY", ""),
			ChatModels:    getEnvAsSlice("CHAT_MODELS", DefaultChatModels),
			FeedbackModel: getEnv("FEEDBACK_MODEL", DefaultFeedbackModel),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Logging: LoggingConfig{
			ErrorLogPath: getEnv("ERROR_LOG_PATH", "server_error.log"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsSlice splits a comma separated value, dropping blank entries.
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return append([]string(nil), defaultValue...)
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return values
}
