package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port         string
	LogLevel     string
	DatabasePath string

	// Uploads
	UploadDir         string
	DefaultReportPath string
	MaxFileSize       int64

	// S3 report archive, disabled when S3Endpoint is empty
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool

	// OpenAI
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIBaseURL      string
	LLMTokensPerSecond int

	// Optional YAML file replacing the embedded crew definition
	CrewConfigPath string
}

func Load() (*Config, error) {
	maxUploadMB, err := getEnvInt("MAX_UPLOAD_MB", 10)
	if err != nil {
		return nil, err
	}
	tokensPerSecond, err := getEnvInt("LLM_TOKENS_PER_SECOND", 30000)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8000"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabasePath:       getEnv("DATABASE_PATH", "data/analyses.db"),
		UploadDir:          getEnv("UPLOAD_DIR", "data"),
		DefaultReportPath:  getEnv("DEFAULT_REPORT_PATH", "data/sample.pdf"),
		MaxFileSize:        int64(maxUploadMB) << 20,
		S3Endpoint:         getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:      getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
		S3SecretAccessKey:  getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
		S3BucketName:       getEnv("S3_BUCKET_NAME", "blood-reports"),
		S3UseSSL:           getEnv("S3_USE_SSL", "false") == "true",
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", ""),
		LLMTokensPerSecond: tokensPerSecond,
		CrewConfigPath:     getEnv("CREW_CONFIG", ""),
	}

	if cfg.MaxFileSize <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	if cfg.LLMTokensPerSecond <= 0 {
		return nil, fmt.Errorf("LLM_TOKENS_PER_SECOND must be positive")
	}

	return cfg, nil
}

// Validate checks the settings the HTTP server cannot start without.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	return nil
}

// ArchiveEnabled reports whether finished reports are copied to object storage.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Endpoint != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
