package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/julianstephens/moodlog/internal/constants"
)

// Config holds runtime settings. Priority: ENV > YAML > defaults.
type Config struct {
	DBPath     string `yaml:"db_path" env:"MOODLOG_DB_PATH"`
	Debug      bool   `yaml:"debug" env:"MOODLOG_DEBUG" env-default:"false"`
	PageSize   int    `yaml:"page_size" env:"MOODLOG_PAGE_SIZE" env-default:"20"`
	MaxBackups int    `yaml:"max_backups" env:"MOODLOG_MAX_BACKUPS" env-default:"14"`
}

// Load reads an optional .env file from the working directory, then the
// YAML file named by MOODLOG_CONFIG (falling back to the XDG config
// directory) and the environment. A missing default file is not an error;
// a missing file named explicitly is.
func Load() (*Config, error) {
	// .env is optional and never overrides variables already set
	_ = godotenv.Load(constants.EnvFileName)

	var cfg Config

	path := os.Getenv(constants.ConfigEnvPath)
	explicitPath := path != ""
	if !explicitPath {
		path = DefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks the values Load cannot default
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.MaxBackups <= 0 {
		return fmt.Errorf("max_backups must be positive, got %d", c.MaxBackups)
	}
	return nil
}

// DataDir is the directory holding the database, its backups and logs
func (c *Config) DataDir() string {
	return filepath.Dir(c.DBPath)
}

// BackupDir is where database backups are written
func (c *Config) BackupDir() string {
	return filepath.Join(c.DataDir(), constants.BackupDirName)
}

// DefaultDBPath returns $XDG_DATA_HOME/moodlog/moodlog.db
func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, constants.AppName, constants.DBFileName)
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/moodlog/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, constants.AppName, constants.ConfigFileName)
}
