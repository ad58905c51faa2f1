package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Translation TranslationConfig
	Redis       RedisConfig
	Logging     LoggingConfig
}

type TranslationConfig struct {
	GeminiAPIKey   string
	GeminiModel    string
	OpenAIAPIKey   string
	OpenAIModel    string
	EnableFallback bool
	MaxConcurrency int
	Timeout        time.Duration
	MinDetectRunes int
}

// RedisConfig enables the shared translation cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Translation: TranslationConfig{
			GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
			GeminiModel:    getEnv("GEMINI_MODEL", ""),
			OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:    getEnv("OPENAI_MODEL", ""),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
			MaxConcurrency: getEnvInt("BIRD2MD_MAX_CONCURRENCY", 8),
			Timeout:        time.Duration(getEnvInt("BIRD2MD_TRANSLATE_TIMEOUT_SECONDS", 15)) * time.Second,
			MinDetectRunes: getEnvInt("BIRD2MD_MIN_DETECT_RUNES", 12),
		},
		Redis: RedisConfig{
			Addr:     getEnv("BIRD2MD_REDIS_ADDR", ""),
			Password: getEnv("BIRD2MD_REDIS_PASSWORD", ""),
			DB:       getEnvInt("BIRD2MD_REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("BIRD2MD_REDIS_TTL_MINUTES", 24*60)) * time.Minute,
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
	if c.Translation.MaxConcurrency <= 0 {
		return fmt.Errorf("BIRD2MD_MAX_CONCURRENCY must be positive")
	}
	if c.Translation.Timeout <= 0 {
		return fmt.Errorf("BIRD2MD_TRANSLATE_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// fileConfig is the YAML override shape; zero values leave the corresponding
// environment-derived setting untouched.
type fileConfig struct {
	Translation struct {
		GeminiAPIKey   string `yaml:"gemini_api_key"`
		GeminiModel    string `yaml:"gemini_model"`
		OpenAIAPIKey   string `yaml:"openai_api_key"`
		OpenAIModel    string `yaml:"openai_model"`
		MaxConcurrency int    `yaml:"max_concurrency"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		MinDetectRunes int    `yaml:"min_detect_runes"`
	} `yaml:"translation"`
	Redis struct {
		Addr       string `yaml:"addr"`
		Password   string `yaml:"password"`
		DB         int    `yaml:"db"`
		TTLMinutes int    `yaml:"ttl_minutes"`
	} `yaml:"redis"`
	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
}

// ApplyFile merges a YAML config file over the loaded configuration.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.Translation.GeminiAPIKey != "" {
		c.Translation.GeminiAPIKey = fc.Translation.GeminiAPIKey
	}
	if fc.Translation.GeminiModel != "" {
		c.Translation.GeminiModel = fc.Translation.GeminiModel
	}
	if fc.Translation.OpenAIAPIKey != "" {
		c.Translation.OpenAIAPIKey = fc.Translation.OpenAIAPIKey
	}
	if fc.Translation.OpenAIModel != "" {
		c.Translation.OpenAIModel = fc.Translation.OpenAIModel
	}
	if fc.Translation.MaxConcurrency > 0 {
		c.Translation.MaxConcurrency = fc.Translation.MaxConcurrency
	}
	if fc.Translation.TimeoutSeconds > 0 {
		c.Translation.Timeout = time.Duration(fc.Translation.TimeoutSeconds) * time.Second
	}
	if fc.Translation.MinDetectRunes > 0 {
		c.Translation.MinDetectRunes = fc.Translation.MinDetectRunes
	}
	if fc.Redis.Addr != "" {
		c.Redis.Addr = fc.Redis.Addr
	}
	if fc.Redis.Password != "" {
		c.Redis.Password = fc.Redis.Password
	}
	if fc.Redis.DB != 0 {
		c.Redis.DB = fc.Redis.DB
	}
	if fc.Redis.TTLMinutes > 0 {
		c.Redis.TTL = time.Duration(fc.Redis.TTLMinutes) * time.Minute
	}
	if fc.Logging.Level != "" {
		c.Logging.Level = fc.Logging.Level
	}
	if fc.Logging.File != "" {
		c.Logging.File = fc.Logging.File
	}

	return c.Validate()
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
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
