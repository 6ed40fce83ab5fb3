package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Engine   EngineConfig   `mapstructure:"engine" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Path is the SQLite database file path. The special value
	// ":memory:" opens an in-memory database.
	Path string `mapstructure:"path" validate:"required"`
}

// EngineConfig contains growth engine tuning settings.
type EngineConfig struct {
	// TickInterval is how often the active pet's vital decay is applied.
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"required,min=1s"`
}
