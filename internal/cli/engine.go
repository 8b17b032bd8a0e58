package cli

import (
	"fmt"
	"os"

	"github.com/Macrojordan/mission-control-kanban/internal/client"
	"github.com/Macrojordan/mission-control-kanban/internal/config"
	"github.com/Macrojordan/mission-control-kanban/internal/localstore"
)

// newEngine wires the remote client and the local mirror into a fallback
// engine using the merged configuration plus any command line overrides.
func newEngine() (*client.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	base := cfg.Client.APIBase
	if apiBase != "" {
		base = apiBase
	}
	pass := cfg.Client.Password
	if password != "" {
		pass = password
	}

	if err := os.MkdirAll(cfg.Client.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	local := localstore.New(cfg.Client.DataDir)
	local.EnsureDefaultProject()

	return client.NewEngine(client.NewClient(base, pass), local, client.NewStatus()), nil
}
