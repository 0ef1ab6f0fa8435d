package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the personalization core.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Engine EngineConfig `mapstructure:"engine"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EngineConfig holds the adaptation dials. Everything here has a sensible
// default; deployments only override what they tune.
type EngineConfig struct {
	PatternCapacity    int                 `mapstructure:"pattern_capacity"`
	TickInterval       time.Duration       `mapstructure:"tick_interval"`
	AnalyticsTTL       time.Duration       `mapstructure:"analytics_ttl"`
	AnalyticsCacheSize int                 `mapstructure:"analytics_cache_size"`
	UnlockThreshold    float64             `mapstructure:"unlock_threshold"`
	BaseSessionMinutes float64             `mapstructure:"base_session_minutes"`
	DifficultyStep     float64             `mapstructure:"difficulty_step"`
	DifficultyEpsilon  float64             `mapstructure:"difficulty_epsilon"`
	Transfer           map[string][]string `mapstructure:"transfer"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("lingokit")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")

	viper.SetDefault("engine.pattern_capacity", 40)
	viper.SetDefault("engine.tick_interval", 5*time.Minute)
	viper.SetDefault("engine.analytics_ttl", 5*time.Minute)
	viper.SetDefault("engine.analytics_cache_size", 256)
	viper.SetDefault("engine.unlock_threshold", 0.85)
	viper.SetDefault("engine.base_session_minutes", 30.0)
	viper.SetDefault("engine.difficulty_step", 0.1)
	viper.SetDefault("engine.difficulty_epsilon", 0.05)
	viper.SetDefault("engine.transfer", map[string][]string{
		"conversation": {"pronunciation", "listening"},
		"vocabulary":   {"reading", "writing"},
		"grammar":      {"writing"},
		"listening":    {"conversation", "pronunciation"},
		"reading":      {"vocabulary", "grammar"},
	})
}
