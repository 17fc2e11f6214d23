package config

import (
	"os"
	"strconv"

	"github.com/dgallion1/structsum/internal/marker"
	"github.com/dgallion1/structsum/internal/outline"
)

type Config struct {
	Port string

	// Auth. Empty disables authentication on the HTTP surface.
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Summary defaults, overridable per request / per flag.
	MinGranularity     int
	SuppressLowest     bool
	Width              int
	IncludeLineNumbers bool
	IncludeHeader      bool
	IncludeTitle       bool

	// Output file naming for batch runs.
	OutputExt string

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("STRUCTSUM_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		MinGranularity:     envInt("MIN_GRANULARITY", marker.MaxLevel),
		SuppressLowest:     envBool("SUPPRESS_LOWEST", true),
		Width:              envInt("WIDTH", 0),
		IncludeLineNumbers: envBool("INCLUDE_LINE_NUMBERS", true),
		IncludeHeader:      envBool("INCLUDE_HEADER", true),
		IncludeTitle:       envBool("INCLUDE_TITLE", true),

		OutputExt: envOr("OUTPUT_EXT", ".txt"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.OutputExt != "" && cfg.OutputExt[0] != '.' {
		cfg.OutputExt = "." + cfg.OutputExt
	}

	return cfg
}

// Validate rejects out-of-range summary defaults rather than clamping them.
func (c Config) Validate() error {
	return c.Options().Validate()
}

// Options assembles the configured summary defaults.
func (c Config) Options() outline.Options {
	return outline.Options{
		MinGranularity:     c.MinGranularity,
		SuppressLowest:     c.SuppressLowest,
		Width:              c.Width,
		IncludeLineNumbers: c.IncludeLineNumbers,
		IncludeHeader:      c.IncludeHeader,
		IncludeTitle:       c.IncludeTitle,
	}
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
