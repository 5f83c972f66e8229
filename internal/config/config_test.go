package config

import (
	"flag"
	"os"
	"testing"
	"time"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(os.Stderr)
}

// unsetEnv удаляет переменные окружения, восстанавливая их после теста
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

var allKeys = []string{
	"DATABASE_URI", "JWT_SECRET", "TOKEN_TTL", "BASE_URL", "UPLOAD_DIR",
	"UPLOAD_MAX_MB", "SENTIMENT_ADDR", "SENTIMENT_LANGUAGE", "SENTIMENT_LEXICON",
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	unsetEnv(t, allKeys...)

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.AuthSecret != "dev-secret-key" {
		t.Fatalf("AuthSecret default expected 'dev-secret-key', got %q", cfg.AuthSecret)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("TokenTTL default expected 24h, got %s", cfg.TokenTTL)
	}
	if cfg.BaseURL != "localhost:3060" {
		t.Fatalf("BaseURL default expected 'localhost:3060', got %q", cfg.BaseURL)
	}
	if cfg.SentimentAddr != "localhost:3000" {
		t.Fatalf("SentimentAddr default expected 'localhost:3000', got %q", cfg.SentimentAddr)
	}
	if cfg.UploadDir != "public/images" {
		t.Fatalf("UploadDir default expected 'public/images', got %q", cfg.UploadDir)
	}
	if cfg.UploadMaxMB != 10 || cfg.UploadMaxBytes() != 10*1024*1024 {
		t.Fatalf("UploadMaxMB default expected 10, got %d", cfg.UploadMaxMB)
	}
	if cfg.SentimentLanguage != "english" {
		t.Fatalf("SentimentLanguage default expected 'english', got %q", cfg.SentimentLanguage)
	}
	if cfg.DatabaseDSN == "" {
		t.Fatalf("DatabaseDSN default must be non-empty")
	}
	if cfg.SentimentLexicon != "" {
		t.Fatalf("SentimentLexicon default expected empty (embedded), got %q", cfg.SentimentLexicon)
	}
}

func TestNewConfig_FromEnv(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("DATABASE_URI", "postgres://u:p@db:5432/sc")
	t.Setenv("JWT_SECRET", "top")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("BASE_URL", "example.com:8080")
	t.Setenv("UPLOAD_DIR", "/srv/images")
	t.Setenv("UPLOAD_MAX_MB", "2")
	t.Setenv("SENTIMENT_LANGUAGE", "spanish")
	t.Setenv("SENTIMENT_LEXICON", "/srv/AFINN-es-165.txt")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.DatabaseDSN != "postgres://u:p@db:5432/sc" {
		t.Fatalf("DatabaseDSN expected from env, got %q", cfg.DatabaseDSN)
	}
	if cfg.AuthSecret != "top" {
		t.Fatalf("AuthSecret expected from env 'top', got %q", cfg.AuthSecret)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("TokenTTL expected 1h, got %s", cfg.TokenTTL)
	}
	if cfg.BaseURL != "example.com:8080" {
		t.Fatalf("BaseURL expected 'example.com:8080', got %q", cfg.BaseURL)
	}
	if cfg.UploadDir != "/srv/images" || cfg.UploadMaxMB != 2 {
		t.Fatalf("upload settings not taken from env: %q %d", cfg.UploadDir, cfg.UploadMaxMB)
	}
	if cfg.SentimentLanguage != "spanish" {
		t.Fatalf("SentimentLanguage expected 'spanish', got %q", cfg.SentimentLanguage)
	}
	if cfg.SentimentLexicon != "/srv/AFINN-es-165.txt" {
		t.Fatalf("SentimentLexicon expected from env, got %q", cfg.SentimentLexicon)
	}
}

func TestNewConfig_InvalidAddrFallback(t *testing.T) {
	unsetEnv(t, allKeys...)
	// Невалидные адреса (со схемой) должны откатиться на дефолт
	t.Setenv("BASE_URL", "http://bad:8080")
	t.Setenv("SENTIMENT_ADDR", "bad")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:3060" {
		t.Fatalf("invalid BASE_URL must fallback to 'localhost:3060', got %q", cfg.BaseURL)
	}
	if cfg.SentimentAddr != "localhost:3000" {
		t.Fatalf("invalid SENTIMENT_ADDR must fallback to 'localhost:3000', got %q", cfg.SentimentAddr)
	}
}
