package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/eshaam/trackergg-scraper/internal/constants"
	scrapererrors "github.com/eshaam/trackergg-scraper/pkg/errors"
)

type Config struct {
	Scraper  ScraperConfig
	Browser  BrowserConfig
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Sheets   SheetsConfig
	Results  ResultsConfig
	Logging  LoggingConfig
}

type ScraperConfig struct {
	PlayersFile string
	Concurrency int
}

type BrowserConfig struct {
	ChromePath  string
	ProxyServer string
	Headless    bool
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Enabled reports whether a redis cache was configured at all.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

func (c PostgresConfig) Enabled() bool {
	return c.Host != ""
}

type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetID   string
	SheetRange      string
}

func (c SheetsConfig) Enabled() bool {
	return c.CredentialsFile != "" && c.SpreadsheetID != ""
}

type ResultsConfig struct {
	File string
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Scraper: ScraperConfig{
			PlayersFile: getEnv("PLAYERS_FILE", "players.json"),
			Concurrency: getEnvInt("SCRAPER_CONCURRENCY", constants.Workers.Default),
		},
		Browser: BrowserConfig{
			ChromePath:  getEnv("CHROME_PATH", ""),
			ProxyServer: getEnv("PROXY_SERVER", ""),
			Headless:    getEnvBool("BROWSER_HEADLESS", true),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", ""),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "scraper"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "trackergg"),
		},
		Sheets: SheetsConfig{
			CredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", ""),
			SpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
			SheetRange:      getEnv("SHEETS_RANGE", "Results!A:G"),
		},
		Results: ResultsConfig{
			File: getEnv("RESULTS_FILE", "results.jsonl"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scraper.PlayersFile == "" {
		return scrapererrors.NewValidationError("PLAYERS_FILE is required", "PLAYERS_FILE", c.Scraper.PlayersFile)
	}
	if c.Gemini.APIKey == "" {
		return scrapererrors.NewValidationError("GEMINI_API_KEY is required", "GEMINI_API_KEY", nil)
	}
	if c.Scraper.Concurrency < constants.Workers.Min {
		c.Scraper.Concurrency = constants.Workers.Min
	}
	if c.Scraper.Concurrency > constants.Workers.Max {
		c.Scraper.Concurrency = constants.Workers.Max
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
