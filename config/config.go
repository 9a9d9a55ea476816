package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Dosada05/chessmate-central/standings"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL string
	ServerPort  int
	LogLevel    slog.Level

	JWTSecretKey          string
	OrganizerPasswordHash string
	CORSAllowedOrigins    []string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
	UploadDir         string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	TextGenURL    string
	TextGenAPIKey string

	StandingsTieBreak       standings.TieBreak
	ResultMaxRetries        int
	StatusSchedulerInterval time.Duration
	RegistrationRateLimit   float64
	RegistrationRateBurst   int
}

// AuthEnabled reports whether organizer routes are protected.
func (c *Config) AuthEnabled() bool {
	return c.OrganizerPasswordHash != ""
}

// SMTPEnabled reports whether registration e-mails can be sent.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		JWTSecretKey:          os.Getenv("JWT_SECRET_KEY"),
		OrganizerPasswordHash: os.Getenv("ORGANIZER_PASSWORD_HASH"),
		CORSAllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		R2AccountID:           os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:         os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:     os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:          os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:       os.Getenv("R2_PUBLIC_BASE_URL"),
		UploadDir:             getEnv("UPLOAD_DIR", "./public/uploads"),
		SMTPHost:              os.Getenv("SMTP_HOST"),
		SMTPUser:              os.Getenv("SMTP_USER"),
		SMTPPass:              os.Getenv("SMTP_PASS"),
		SMTPFrom:              os.Getenv("SMTP_FROM"),
		TextGenURL:            os.Getenv("TEXTGEN_URL"),
		TextGenAPIKey:         os.Getenv("TEXTGEN_API_KEY"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is not set")
	}
	if cfg.AuthEnabled() && cfg.JWTSecretKey == "" {
		return nil, errors.New("JWT_SECRET_KEY must be set when ORGANIZER_PASSWORD_HASH is set")
	}

	var err error
	if cfg.ServerPort, err = getInt("SERVER_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}
	if cfg.SMTPPort, err = getInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if err = cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
	}
	if cfg.StandingsTieBreak, err = standings.ParseTieBreak(getEnv("STANDINGS_TIEBREAK", string(standings.TieBreakName))); err != nil {
		return nil, fmt.Errorf("invalid STANDINGS_TIEBREAK environment variable: %w", err)
	}
	if cfg.ResultMaxRetries, err = getInt("RESULT_MAX_RETRIES", 5); err != nil {
		return nil, err
	}
	if cfg.ResultMaxRetries < 1 {
		return nil, fmt.Errorf("RESULT_MAX_RETRIES must be positive, got %d", cfg.ResultMaxRetries)
	}
	if cfg.StatusSchedulerInterval, err = time.ParseDuration(getEnv("STATUS_SCHEDULER_INTERVAL", "1m")); err != nil {
		return nil, fmt.Errorf("invalid STATUS_SCHEDULER_INTERVAL environment variable: %w", err)
	}
	if cfg.StatusSchedulerInterval < 0 {
		return nil, errors.New("STATUS_SCHEDULER_INTERVAL must not be negative")
	}
	if cfg.RegistrationRateLimit, err = strconv.ParseFloat(getEnv("REGISTRATION_RATE_LIMIT", "1"), 64); err != nil {
		return nil, fmt.Errorf("invalid REGISTRATION_RATE_LIMIT environment variable: %w", err)
	}
	if cfg.RegistrationRateBurst, err = getInt("REGISTRATION_RATE_BURST", 5); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
