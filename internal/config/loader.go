package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads and merges configuration from global and project sources.
// Environment variables override file values.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		applyEnv(cfg)
		return cfg, nil // Return defaults if no home dir
	}

	cwd, err := os.Getwd()
	if err != nil {
		applyEnv(cfg)
		return cfg, nil // Return defaults if no cwd
	}

	// Load global config first
	globalPath := filepath.Join(home, ".mission-control", "config.yaml")
	if err := loadFile(globalPath, cfg); err != nil && !os.IsNotExist(err) {
		// Continue with defaults
	}

	// Load project config (overrides global)
	projectPath := filepath.Join(cwd, ".mission-control", "config.yaml")
	if err := loadFile(projectPath, cfg); err != nil && !os.IsNotExist(err) {
		// Continue
	}

	applyEnv(cfg)

	if cfg.Client.DataDir == "" {
		cfg.Client.DataDir = filepath.Join(home, ".mission-control", "data")
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MC_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("MC_DATABASE_URL"); v != "" {
		cfg.Server.DatabaseURL = v
	}
	if v := os.Getenv("MC_SQLITE_PATH"); v != "" {
		cfg.Server.SQLitePath = v
	}
	if v := os.Getenv("MC_PASSWORD"); v != "" {
		cfg.Server.Password = v
		cfg.Client.Password = v
	}
	if v := os.Getenv("MC_API_BASE"); v != "" {
		cfg.Client.APIBase = v
	}
	if v := os.Getenv("MC_GATEWAY_COMMAND"); v != "" {
		cfg.Server.GatewayCommand = v
	}
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".mission-control", "config.yaml")
}

// ProjectConfigPath returns the path to the project config file
func ProjectConfigPath() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, ".mission-control", "config.yaml")
}

// GlobalDir returns the path to the global Mission Control directory
func GlobalDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".mission-control")
}
