package config

import (
	"flag"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Marketplace API
	DatabaseDSN string        `env:"DATABASE_URI"`
	AuthSecret  string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BaseURL     string        `env:"BASE_URL"`
	UploadDir   string        `env:"UPLOAD_DIR"`
	UploadMaxMB int           `env:"UPLOAD_MAX_MB"`

	// Sentiment API
	SentimentAddr     string `env:"SENTIMENT_ADDR"`
	SentimentLanguage string `env:"SENTIMENT_LANGUAGE"`
	SentimentLexicon  string `env:"SENTIMENT_LEXICON"`
}

const (
	defaultDSN           = "file:secondchance.db?_pragma=busy_timeout(5000)"
	defaultAuthSecret    = "dev-secret-key"
	defaultBaseURL       = "localhost:3060"
	defaultSentimentAddr = "localhost:3000"
	defaultUploadDir     = "public/images"
	defaultUploadMaxMB   = 10
	defaultLanguage      = "english"
)

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "время жизни JWT (0 — без срока)")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address:port of the marketplace API")
	flag.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "каталог для загруженных изображений")
	flag.IntVar(&cfg.UploadMaxMB, "upload-max-mb", cfg.UploadMaxMB, "максимальный размер загрузки, МБ")
	flag.StringVar(&cfg.SentimentAddr, "sentiment-addr", cfg.SentimentAddr, "address:port of the sentiment API")
	flag.StringVar(&cfg.SentimentLanguage, "sentiment-lang", cfg.SentimentLanguage, "язык стеммера")
	flag.StringVar(&cfg.SentimentLexicon, "sentiment-lexicon", cfg.SentimentLexicon, "файл словаря AFINN (пусто — встроенный)")

	flag.Parse()

	// Defaults
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = defaultDSN
	}
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = defaultAuthSecret
	}
	if cfg.TokenTTL < 0 {
		cfg.TokenTTL = 0
	}
	// адреса должны быть в виде "address:port" (без схемы и пути), иначе берём дефолт
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}
	if !hostPortRe.MatchString(cfg.SentimentAddr) {
		cfg.SentimentAddr = defaultSentimentAddr
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = defaultUploadDir
	}
	if cfg.UploadMaxMB <= 0 {
		cfg.UploadMaxMB = defaultUploadMaxMB
	}
	if cfg.SentimentLanguage == "" {
		cfg.SentimentLanguage = defaultLanguage
	}

	return cfg
}

// UploadMaxBytes лимит тела multipart-запроса в байтах.
func (c *Config) UploadMaxBytes() int64 {
	return int64(c.UploadMaxMB) * 1024 * 1024
}
