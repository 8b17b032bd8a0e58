// Package model defines the Mission Control entities and the business rules
// shared by the server handlers and the offline fallback path. Keeping the
// defaults, derived fields, and activity wording here as pure functions is
// what prevents the two code paths from drifting.
package model

import (
	"encoding/json"
	"time"
)

// Task statuses (kanban columns).
const (
	StatusBacklog    = "backlog"
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusReview     = "review"
	StatusDone       = "done"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Activity actions.
const (
	ActionCreated        = "created"
	ActionStatusChanged  = "status_changed"
	ActionMoved          = "moved"
	ActionUpdated        = "updated"
	ActionDeleted        = "deleted"
	ActionCommented      = "commented"
	ActionAssigned       = "assigned"
	ActionProgressUpdate = "progress_update"
	ActionCompleted      = "completed"
)

// Randy is the assignee name of the external AI agent.
const Randy = "randy"

// SystemActor is used when no actor is provided.
const SystemActor = "sistema"

// Default project (id 1) seeded in every store.
const (
	DefaultProjectID          = 1
	DefaultProjectName        = "Geral"
	DefaultProjectDescription = "Projeto padrão para tarefas diversas"
	DefaultColor              = "#6366f1"
)

// StatusOrder is the canonical kanban column order.
var StatusOrder = []string{StatusBacklog, StatusTodo, StatusInProgress, StatusReview, StatusDone}

// PriorityOrder is the canonical priority order, most urgent first.
var PriorityOrder = []string{PriorityHigh, PriorityMedium, PriorityLow}

// Task is a kanban card.
type Task struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	ProjectID      int64      `json:"project_id"`
	AssignedTo     string     `json:"assigned_to"`
	Tags           []string   `json:"tags"`
	DueDate        *time.Time `json:"due_date"`
	NotionLink     string     `json:"notion_link,omitempty"`
	NotionPageID   string     `json:"notion_page_id,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
	RandyStatus    string     `json:"randy_status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	CompletedAt    *time.Time `json:"completed_at"`

	// Populated by list/get joins, never stored.
	ProjectName  string `json:"project_name,omitempty"`
	ProjectColor string `json:"project_color,omitempty"`
}

// TaskDetail is a task with its related records, as returned by GET /api/tasks/:id.
type TaskDetail struct {
	Task
	Comments []Comment  `json:"comments"`
	History  []Activity `json:"history"`
}

// Project groups tasks. IsFridge marks archived projects.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	IsFridge    bool      `json:"is_fridge"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	TaskCount   int64     `json:"task_count"`
}

// Comment on a task.
type Comment struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Activity is an append-only activity log entry.
type Activity struct {
	ID          int64     `json:"id"`
	TaskID      *int64    `json:"task_id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	PerformedBy string    `json:"performed_by"`
	CreatedAt   time.Time `json:"created_at"`
	TaskTitle   *string   `json:"task_title,omitempty"`
}

// Notification is an agent-directed notification.
type Notification struct {
	ID        int64     `json:"id"`
	TaskID    *int64    `json:"task_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Template holds default field values for template-based task creation.
// Data is opaque JSON.
type Template struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SyncState is the process-wide sync metadata.
type SyncState struct {
	LastSync  *time.Time `json:"lastSync"`
	IsSyncing bool       `json:"isSyncing"`
}

// ValidStatus reports whether s is a known kanban status.
func ValidStatus(s string) bool {
	for _, v := range StatusOrder {
		if v == s {
			return true
		}
	}
	return false
}

// ValidPriority reports whether p is a known priority.
func ValidPriority(p string) bool {
	for _, v := range PriorityOrder {
		if v == p {
			return true
		}
	}
	return false
}
