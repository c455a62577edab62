package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        int
	DatabaseURL string
	RedisURL    string
	NatsURL     string
	NatsToken   string
	LogLevel    string
	APIToken    string

	GenerationAPIKey      string
	GenerationModel       string
	GenerationMaxTokens   int
	GenerationTemperature float64
	OCRAPIKey             string

	Formality        float64
	UseAbbreviations bool
	CoachingMode     bool
}

func Load() Config {
	return Config{
		Port:        envInt("FLIRTKEY_PORT", 8650),
		DatabaseURL: envStr("DATABASE_URL", ""),
		RedisURL:    envStr("REDIS_URL", "redis://localhost:6379/0"),
		NatsURL:     envStr("NATS_URL", ""),
		NatsToken:   envStr("NATS_TOKEN", ""),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		APIToken:    envStr("FLIRTKEY_API_TOKEN", ""),

		GenerationAPIKey:      envStr("GENERATION_API_KEY", ""),
		GenerationModel:       envStr("GENERATION_MODEL", "gpt-4o-mini"),
		GenerationMaxTokens:   envInt("GENERATION_MAX_TOKENS", 1024),
		GenerationTemperature: envFloat("GENERATION_TEMPERATURE", 0.8),
		OCRAPIKey:             envStr("OCR_API_KEY", ""),

		Formality:        envFloat("STYLE_FORMALITY", 0.5),
		UseAbbreviations: envBool("STYLE_ABBREVIATIONS", false),
		CoachingMode:     envBool("COACHING_MODE", true),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
