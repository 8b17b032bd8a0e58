package config

import (
	"os"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Server: ServerConfig{
			Addr:       ":3001",
			SQLitePath: "mission-control.db",
		},
		Client: ClientConfig{
			APIBase: "http://localhost:3001",
		},
		Randy: RandyConfig{
			Enabled: true,
		},
	}
}

// WriteDefault writes the default global configuration to a file
func WriteDefault(path string) error {
	content := `# Mission Control Global Configuration
version: "1"

# API server
server:
  addr: ":3001"
  # PostgreSQL connection string. Leave empty to use SQLite.
  database_url: ""
  sqlite_path: mission-control.db
  # Shared API password. Leave empty to disable auth.
  password: ""
  # Command run to wake the agent gateway on manual sync
  gateway_command: ""

# CLI client
client:
  api_base: http://localhost:3001
  password: ""
  # Offline mirror directory. Empty means ~/.mission-control/data.
  data_dir: ""

# Randy agent integration
randy:
  enabled: true
`
	return os.WriteFile(path, []byte(content), 0644)
}

// WriteProjectDefault writes the default project configuration to a file
func WriteProjectDefault(path string) error {
	content := `# Mission Control Project Configuration
version: "1"

# Override global settings as needed
# client:
#   api_base: http://localhost:3001
# server:
#   sqlite_path: mission-control.db
`
	return os.WriteFile(path, []byte(content), 0644)
}
