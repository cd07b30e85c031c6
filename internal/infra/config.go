package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	LogFile            string
	ExtractProvider    string
	GeminiAPIKey       string
	GeminiBaseURL      string
	GeminiTextModel    string
	GeminiImageModel   string
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIBaseURL      string
	BackgroundEnabled  bool
	BackendTimeout     time.Duration
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
	CORSAllowedOrigins []string
	SessionTTL         time.Duration
	MaxUploadBytes     int64
	MaxImages          int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		LogFile:            os.Getenv("LOG_FILE"),
		ExtractProvider:    strings.ToLower(getEnv("EXTRACT_PROVIDER", ProviderGemini)),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:      getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiTextModel:    getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
		GeminiImageModel:   getEnv("GEMINI_IMAGE_MODEL", "gemini-3-pro-image-preview"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:      os.Getenv("OPENAI_BASE_URL"),
		BackgroundEnabled:  getEnvBool("BACKGROUND_ENABLED", true),
		BackendTimeout:     time.Second * time.Duration(getEnvInt("BACKEND_TIMEOUT_SECONDS", 120)),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 30)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 180)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 10),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		SessionTTL:         time.Minute * time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_MB", 20)) << 20,
		MaxImages:          getEnvInt("MAX_IMAGES", 6),
	}

	switch cfg.ExtractProvider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required")
		}
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when EXTRACT_PROVIDER=openai")
		}
	default:
		return nil, fmt.Errorf("unsupported EXTRACT_PROVIDER %q", cfg.ExtractProvider)
	}

	if cfg.MaxImages <= 0 {
		return nil, fmt.Errorf("MAX_IMAGES must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
