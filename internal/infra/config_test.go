package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("EXTRACT_PROVIDER", "")
	t.Setenv("PORT", "")
	t.Setenv("BACKGROUND_ENABLED", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.ExtractProvider != ProviderGemini {
		t.Fatalf("ExtractProvider = %q", cfg.ExtractProvider)
	}
	if cfg.GeminiTextModel != "gemini-2.5-flash" {
		t.Fatalf("GeminiTextModel = %q", cfg.GeminiTextModel)
	}
	if !cfg.BackgroundEnabled {
		t.Fatal("BackgroundEnabled should default to true")
	}
	if cfg.SessionTTL != time.Hour {
		t.Fatalf("SessionTTL = %s, want 1h", cfg.SessionTTL)
	}
	if cfg.MaxUploadBytes != 20<<20 {
		t.Fatalf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("CORSAllowedOrigins = %#v, want empty", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfigRequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("EXTRACT_PROVIDER", "gemini")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when GEMINI_API_KEY is missing")
	}
}

func TestLoadConfigOpenAIProvider(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("EXTRACT_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("BACKGROUND_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ExtractProvider != ProviderOpenAI {
		t.Fatalf("ExtractProvider = %q", cfg.ExtractProvider)
	}
	if cfg.BackgroundEnabled {
		t.Fatal("BackgroundEnabled should be false")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("CORSAllowedOrigins = %#v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	t.Setenv("EXTRACT_PROVIDER", "llama")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}
