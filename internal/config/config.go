package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Practice PracticeConfig `mapstructure:"practice" validate:"required"`
	Task     TaskConfig     `mapstructure:"task" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
	// MigrationsDir is the directory holding goose migration files.
	MigrationsDir string `mapstructure:"migrations_dir" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	// BCryptCost controls the bcrypt work factor for password hashing.
	// 0 selects the library default.
	BCryptCost int `mapstructure:"bcrypt_cost" validate:"omitempty,gte=4,lte=31"`
}

// PracticeConfig tunes the mastery engine. Zero values keep the built-in
// defaults, so every field is optional.
type PracticeConfig struct {
	DefaultBatchSize      int     `mapstructure:"default_batch_size" validate:"omitempty,gt=0"`
	MasteredMinRate       float64 `mapstructure:"mastered_min_rate" validate:"omitempty,gt=0,lte=1"`
	MasteredMinReviews    int     `mapstructure:"mastered_min_reviews" validate:"omitempty,gt=0"`
	FamiliarMinRate       float64 `mapstructure:"familiar_min_rate" validate:"omitempty,gt=0,lte=1"`
	FamiliarMinReviews    int     `mapstructure:"familiar_min_reviews" validate:"omitempty,gt=0"`
	LearningIntervalHours int     `mapstructure:"learning_interval_hours" validate:"omitempty,gt=0"`
	FamiliarIntervalHours int     `mapstructure:"familiar_interval_hours" validate:"omitempty,gt=0"`
	MasteredIntervalHours int     `mapstructure:"mastered_interval_hours" validate:"omitempty,gt=0"`
}

// TaskConfig contains settings for the background task processing system.
type TaskConfig struct {
	QueueSize   int `mapstructure:"queue_size" validate:"required,gt=0"`
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
}

// LLMConfig contains all LLM integration related settings. The API key is
// optional: without one the server boots with example generation disabled.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key" validate:"omitempty"`
	ModelName         string `mapstructure:"model_name" validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries" validate:"gte=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}
