package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	Port string
	// DatabaseURL enables the usage audit when set.
	DatabaseURL     string
	MaxUploadBytes  int64
	HashChunkSize   int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables and, when configFile
// is not empty, from that file. Environment variables win.
func Load(configFile string) (*Config, error) {
	// Load .env file if it exists (useful for local development without Docker)
	godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TOOLBOX")
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("database_url", "")
	v.SetDefault("max_upload_bytes", 20<<20)
	v.SetDefault("hash_chunk_size", 64*1024)
	v.SetDefault("read_timeout", 120*time.Second)
	v.SetDefault("write_timeout", 120*time.Second)
	v.SetDefault("shutdown_timeout", 5*time.Second)

	// Names understood before the TOOLBOX_ prefix existed.
	v.BindEnv("port", "TOOLBOX_PORT", "API_PORT")
	v.BindEnv("database_url", "TOOLBOX_DATABASE_URL", "DATABASE_URL")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Port:            v.GetString("port"),
		DatabaseURL:     v.GetString("database_url"),
		MaxUploadBytes:  v.GetInt64("max_upload_bytes"),
		HashChunkSize:   v.GetInt("hash_chunk_size"),
		ReadTimeout:     v.GetDuration("read_timeout"),
		WriteTimeout:    v.GetDuration("write_timeout"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that would make the server unusable.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.HashChunkSize <= 0 {
		return fmt.Errorf("hash chunk size must be positive, got %d", c.HashChunkSize)
	}
	return nil
}
