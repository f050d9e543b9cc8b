package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	AI       AIConfig       `mapstructure:"ai"`
	Publish  PublishConfig  `mapstructure:"publish"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	DSN             string        `mapstructure:"dsn"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// AIConfig configures the enrichment provider (an OpenAI-compatible
// chat-completions endpoint).
type AIConfig struct {
	Model              string        `mapstructure:"model"`
	APIKey             string        `mapstructure:"api_key"`
	BaseURL            string        `mapstructure:"base_url"`
	ClassifyTimeout    time.Duration `mapstructure:"classify_timeout"`
	AttributesTimeout  time.Duration `mapstructure:"attributes_timeout"`
	ClassifyBatchSize  int           `mapstructure:"classify_batch_size"`
	DefaultConfidence  float64       `mapstructure:"default_confidence"`
	FallbackConfidence float64       `mapstructure:"fallback_confidence"`
}

// PublishConfig configures the downstream publication platform.
type PublishConfig struct {
	APIURL string `mapstructure:"api_url"`
	APIKey string `mapstructure:"api_key"`
}

type PipelineConfig struct {
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	FeedID              int     `mapstructure:"feed_id"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	Environment string `mapstructure:"environment"`
	File        string `mapstructure:"file"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/jobs.db")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("ai.model", "deepseek-chat")
	v.SetDefault("ai.base_url", "https://api.deepseek.com/v1")
	v.SetDefault("ai.classify_timeout", 15*time.Second)
	v.SetDefault("ai.attributes_timeout", 20*time.Second)
	v.SetDefault("ai.classify_batch_size", 5)
	v.SetDefault("ai.default_confidence", 0.85)
	v.SetDefault("ai.fallback_confidence", 0.3)
	v.SetDefault("pipeline.confidence_threshold", 0.86)
	v.SetDefault("pipeline.feed_id", 1)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.environment", "local")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("database.dsn", "DATABASE_DSN")
	v.BindEnv("ai.api_key", "DEEPSEEK_API_KEY")
	v.BindEnv("ai.base_url", "DEEPSEEK_BASE_URL")
	v.BindEnv("publish.api_url", "PUBLISH_API_URL")
	v.BindEnv("publish.api_key", "PUBLISH_API_KEY")
	v.BindEnv("pipeline.confidence_threshold", "CONFIDENCE_THRESHOLD")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that every required external credential is present.
// A failure here is fatal at construction time, before any feed is processed.
func (c *Config) Validate() error {
	var missing []string
	if c.AI.APIKey == "" {
		missing = append(missing, "DEEPSEEK_API_KEY")
	}
	if c.Publish.APIURL == "" {
		missing = append(missing, "PUBLISH_API_URL")
	}
	if c.Publish.APIKey == "" {
		missing = append(missing, "PUBLISH_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.Pipeline.ConfidenceThreshold < 0 || c.Pipeline.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be within [0,1], got %v", c.Pipeline.ConfidenceThreshold)
	}
	return nil
}
