package config

// Config represents the full Mission Control configuration
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	// Server configuration
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Client configuration
	Client ClientConfig `yaml:"client" mapstructure:"client"`

	// Randy configuration
	Randy RandyConfig `yaml:"randy" mapstructure:"randy"`
}

// ServerConfig configures the API server
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`

	// DatabaseURL selects PostgreSQL when set. Empty means SQLite.
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`

	// Password gates the API when set
	Password string `yaml:"password" mapstructure:"password"`

	// GatewayCommand wakes the agent gateway on manual sync
	GatewayCommand string `yaml:"gateway_command" mapstructure:"gateway_command"`
}

// ClientConfig configures the CLI client
type ClientConfig struct {
	APIBase  string `yaml:"api_base" mapstructure:"api_base"`
	Password string `yaml:"password" mapstructure:"password"`

	// DataDir holds the offline mirror. Empty means ~/.mission-control/data.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`
}

// RandyConfig configures the autonomous agent integration
type RandyConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}
