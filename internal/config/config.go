package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	// Content-query API connection. Endpoint candidates are tried in
	// order, replacing the old per-environment URL sniffing.
	ContentAPIURLs []string
	ContentAPIKey  string

	// Auth
	CardgenAPIKey string

	// Image host prepended to relative image references.
	ImageHost string

	// Upload limits
	MaxUploadBytes int64

	// Card assembly
	DescriptionMinLength int
	HeadingKeywords      []string
	OfferKeywords        []string
	ImportantKeywords    []string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		ContentAPIURLs: envList("CONTENT_API_URLS", []string{"http://localhost:8080"}),
		ContentAPIKey:  os.Getenv("CONTENT_API_KEY"),

		CardgenAPIKey: os.Getenv("CARDGEN_API_KEY"),

		ImageHost: envOr("IMAGE_HOST", "https://images.localhost"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		DescriptionMinLength: envInt("DESCRIPTION_MIN_LENGTH", 20),
		HeadingKeywords:      envList("HEADING_KEYWORDS", []string{"important", "special offer", "rewards"}),
		OfferKeywords:        envList("OFFER_KEYWORDS", []string{"special offer", "rewards", "promo", "bonus"}),
		ImportantKeywords:    envList("IMPORTANT_KEYWORDS", []string{"important", "numbers", "fee", "rate"}),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.DescriptionMinLength <= 0 {
		cfg.DescriptionMinLength = 20
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ContentAPIKey == "" {
		return fmt.Errorf("CONTENT_API_KEY is required")
	}
	if c.CardgenAPIKey == "" {
		return fmt.Errorf("CARDGEN_API_KEY is required")
	}
	if len(c.ContentAPIURLs) == 0 {
		return fmt.Errorf("CONTENT_API_URLS must list at least one endpoint")
	}
	return nil
}

func envOr(key, fallback string) string {
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

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
