package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	AnnotatorGG   = "gg"
	AnnotatorGoCV = "gocv"
)

var (
	ErrNoSurface        = errors.New("either TELEGRAM_TOKEN or HTTP_ADDR is required")
	ErrUnknownAnnotator = errors.New("ANNOTATOR must be gg or gocv")
)

type Config struct {
	TelegramToken    string
	HTTPAddr         string
	CatalogPath      string
	TemplatePath     string
	FallbackTemplate string
	LogMode          string
	Annotator        string
	FontPath         string
	FontSize         float64
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:    os.Getenv("TELEGRAM_TOKEN"),
		HTTPAddr:         os.Getenv("HTTP_ADDR"),
		CatalogPath:      getEnv("CATALOG_PATH", "categories.json"),
		TemplatePath:     getEnv("TEMPLATE_PATH", "templates/classify.tmpl"),
		FallbackTemplate: os.Getenv("FALLBACK_TEMPLATE"),
		LogMode:          getEnv("LOG_MODE", "dev"),
		Annotator:        strings.ToLower(getEnv("ANNOTATOR", AnnotatorGG)),
		FontPath:         os.Getenv("FONT_PATH"),
		FontSize:         getFloat("FONT_SIZE", 20),
	}

	return cfg, nil
}

// Validate проверяет, что запущен хотя бы один вход: бот или HTTP
func (c *Config) Validate() error {
	if c.TelegramToken == "" && c.HTTPAddr == "" {
		return ErrNoSurface
	}
	switch c.Annotator {
	case AnnotatorGG, AnnotatorGoCV:
	default:
		return fmt.Errorf("%w: got %q", ErrUnknownAnnotator, c.Annotator)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}
