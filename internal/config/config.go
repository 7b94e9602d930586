package config

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Study    StudyConfig    `mapstructure:"study"`
	Drill    DrillConfig    `mapstructure:"drill"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
// The URL is only required by commands that talk to Postgres.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0,lte=43200"`
	BCryptCost           int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// StudyConfig tunes scheduling and session handling.
type StudyConfig struct {
	DefaultNewItemsPerDay int     `mapstructure:"default_new_items_per_day" validate:"gte=1,lte=1000"`
	Timezone              string  `mapstructure:"timezone" validate:"required,timezone"`
	SessionIdleMinutes    int     `mapstructure:"session_idle_minutes" validate:"gt=0"`
	SweepSchedule         string  `mapstructure:"sweep_schedule" validate:"required"`
	PracticeAheadLimit    int     `mapstructure:"practice_ahead_limit" validate:"gt=0"`
	ExtraNewLimit         int     `mapstructure:"extra_new_limit" validate:"gt=0"`
	CatalogDir            string  `mapstructure:"catalog_dir" validate:"omitempty,dir"`
	DesiredRetention      float64 `mapstructure:"desired_retention" validate:"gt=0,lt=1"`
	MaximumIntervalDays   int     `mapstructure:"maximum_interval_days" validate:"gte=1"`
}

// DrillConfig configures the local terminal drill.
type DrillConfig struct {
	DataDir string `mapstructure:"data_dir" validate:"required"`
}
