// randy-hook is a lightweight CLI run on agent session start.
// It prints Randy's pending task queue as JSON so the agent harness can
// inject it into the session context.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Macrojordan/mission-control-kanban/internal/client"
	"github.com/Macrojordan/mission-control-kanban/internal/config"
	"github.com/Macrojordan/mission-control-kanban/internal/localstore"
)

// HookInput is the JSON the agent harness passes on stdin
type HookInput struct {
	SessionID        string `json:"sessionId"`
	WorkingDirectory string `json:"workingDirectory"`
}

// HookOutput is the digest written to stdout
type HookOutput struct {
	SessionID string     `json:"sessionId,omitempty"`
	Total     int64      `json:"total"`
	Offline   bool       `json:"offline"`
	Tasks     []hookTask `json:"tasks"`
}

type hookTask struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Project  string `json:"project,omitempty"`
}

func main() {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		// Silent failure - never break the agent session
		fmt.Println("{}")
		os.Exit(0)
	}

	var hookInput HookInput
	_ = json.Unmarshal(input, &hookInput)

	cfg, err := config.Load()
	if err != nil || !cfg.Randy.Enabled {
		fmt.Println("{}")
		os.Exit(0)
	}

	if err := os.MkdirAll(cfg.Client.DataDir, 0755); err != nil {
		fmt.Println("{}")
		os.Exit(0)
	}

	local := localstore.New(cfg.Client.DataDir)
	local.EnsureDefaultProject()
	engine := client.NewEngine(client.NewClient(cfg.Client.APIBase, cfg.Client.Password), local, client.NewStatus())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	list, err := engine.RandyTasks(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "randy-hook: %v\n", err)
		fmt.Println("{}")
		os.Exit(0)
	}

	out := HookOutput{
		SessionID: hookInput.SessionID,
		Total:     list.Total,
		Offline:   engine.Status().Offline(),
		Tasks:     make([]hookTask, 0, len(list.Tasks)),
	}
	for _, t := range list.Tasks {
		out.Tasks = append(out.Tasks, hookTask{
			ID:       t.ID,
			Title:    t.Title,
			Status:   t.Status,
			Priority: t.Priority,
			Project:  t.ProjectName,
		})
	}

	if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
		fmt.Println("{}")
	}
}
