package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables.
// Variables use the PARLA_ prefix with underscores for nesting, e.g.
// PARLA_DATABASE_URL maps to Config.Database.URL.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("PARLA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every config key with viper. AutomaticEnv only
// resolves keys viper already knows about, so required fields default to
// the empty string and rely on validation to reject missing values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.url", "")
	v.SetDefault("database.migrations_dir", "migrations")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080)
	v.SetDefault("auth.bcrypt_cost", 0)

	v.SetDefault("practice.default_batch_size", 0)
	v.SetDefault("practice.mastered_min_rate", 0)
	v.SetDefault("practice.mastered_min_reviews", 0)
	v.SetDefault("practice.familiar_min_rate", 0)
	v.SetDefault("practice.familiar_min_reviews", 0)
	v.SetDefault("practice.learning_interval_hours", 0)
	v.SetDefault("practice.familiar_interval_hours", 0)
	v.SetDefault("practice.mastered_interval_hours", 0)

	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.worker_count", 2)

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)
}
