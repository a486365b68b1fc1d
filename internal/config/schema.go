package config

import (
	"fmt"
	"time"
)

// Config holds promptseed configuration.
// Stored at: ./promptseed.yaml or ~/.promptseed/promptseed.yaml
type Config struct {
	Input      string      `mapstructure:"input" yaml:"input"`             // Source JSON document
	SQLOutput  string      `mapstructure:"sql_output" yaml:"sql_output"`   // Generated SQL script
	SeedOutput string      `mapstructure:"seed_output" yaml:"seed_output"` // Generated TypeScript seed module
	LogLevel   string      `mapstructure:"log_level" yaml:"log_level"`     // debug, info, warn, error
	Seed       SeedCfg     `mapstructure:"seed" yaml:"seed"`
	Database   DatabaseCfg `mapstructure:"database" yaml:"database"`
	Import     ImportCfg   `mapstructure:"import" yaml:"import"`
	Validate   ValidateCfg `mapstructure:"validate" yaml:"validate"`
}

// SeedCfg configures the generated seed module's storage reference.
type SeedCfg struct {
	StorageName   string `mapstructure:"storage_name" yaml:"storage_name"`
	StorageModule string `mapstructure:"storage_module" yaml:"storage_module"`
}

// DatabaseCfg configures the prompt store used by the import command.
type DatabaseCfg struct {
	// Driver is "sqlite" or "postgres".
	Driver string `mapstructure:"driver" yaml:"driver"`
	// DSN overrides the individual connection fields when set.
	// For sqlite it is the database file path (default: DefaultSQLitePath).
	DSN      string `mapstructure:"dsn" yaml:"dsn"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"` // supports ${ENV_VAR} syntax
	Name     string `mapstructure:"name" yaml:"name"`
	SSLMode  string `mapstructure:"sslmode" yaml:"sslmode"`

	ConnectAttempts int           `mapstructure:"connect_attempts" yaml:"connect_attempts"`
	ConnectDelay    time.Duration `mapstructure:"connect_delay" yaml:"connect_delay"`
}

// ImportCfg configures the native import routine.
type ImportCfg struct {
	ProgressEvery int `mapstructure:"progress_every" yaml:"progress_every"`
}

// ValidateCfg configures the validate command.
type ValidateCfg struct {
	Samples int `mapstructure:"samples" yaml:"samples"`
}

// DefaultSQLitePath is the sqlite database file used when no DSN is set.
const DefaultSQLitePath = "assistant_prompts.db"

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Input:      "assistant_prompts.json",
		SQLOutput:  "import_prompts.sql",
		SeedOutput: "server/replit_integrations/assistant-prompts/seed-all.ts",
		LogLevel:   "info",
		Seed: SeedCfg{
			StorageName:   "assistantPromptStorage",
			StorageModule: "./storage",
		},
		Database: DatabaseCfg{
			Driver:          "sqlite",
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Password:        "${PGPASSWORD}",
			Name:            "assistant_revival",
			SSLMode:         "disable",
			ConnectAttempts: 5,
			ConnectDelay:    time.Second,
		},
		Import: ImportCfg{
			ProgressEvery: 10,
		},
		Validate: ValidateCfg{
			Samples: 5,
		},
	}
}

// ConnectionString returns the DSN for the configured driver.
// Without an explicit DSN, sqlite uses DefaultSQLitePath and postgres gets
// a libpq key/value string built from the individual fields with
// ${ENV_VAR} references resolved.
func (d DatabaseCfg) ConnectionString() string {
	if d.DSN != "" {
		return ResolveEnvVars(d.DSN)
	}
	switch d.Driver {
	case "sqlite":
		return DefaultSQLitePath
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, ResolveEnvVars(d.Password), d.Name, d.SSLMode)
	default:
		return ""
	}
}
