package model

import (
	"fmt"
	"time"
)

// TaskInput is the create-task request body.
type TaskInput struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	ProjectID      int64      `json:"project_id"`
	AssignedTo     string     `json:"assigned_to"`
	Tags           []string   `json:"tags"`
	DueDate        *time.Time `json:"due_date"`
	NotionLink     string     `json:"notion_link"`
	NotionPageID   string     `json:"notion_page_id"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
	RandyStatus    string     `json:"randy_status"`
}

// TaskUpdate is the update-task request body. Nil fields are left untouched.
type TaskUpdate struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	ProjectID      *int64     `json:"project_id"`
	AssignedTo     *string    `json:"assigned_to"`
	Tags           []string   `json:"tags"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
	RandyStatus    *string    `json:"randy_status"`
	UpdatedBy      string     `json:"updated_by,omitempty"`
}

// ProjectInput is the create/update-project request body.
type ProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsFridge    bool   `json:"is_fridge"`
}

// NewTask builds a task from create input, applying the canonical defaults.
// Both the server handler and the offline fallback go through here.
func NewTask(in TaskInput, id int64, now time.Time) Task {
	t := Task{
		ID:             id,
		Title:          in.Title,
		Description:    in.Description,
		Status:         in.Status,
		Priority:       in.Priority,
		ProjectID:      in.ProjectID,
		AssignedTo:     in.AssignedTo,
		Tags:           in.Tags,
		DueDate:        in.DueDate,
		NotionLink:     in.NotionLink,
		NotionPageID:   in.NotionPageID,
		EstimatedHours: in.EstimatedHours,
		ActualHours:    in.ActualHours,
		RandyStatus:    in.RandyStatus,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if t.Status == "" {
		t.Status = StatusBacklog
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.ProjectID == 0 {
		t.ProjectID = DefaultProjectID
	}
	if t.RandyStatus == "" {
		t.RandyStatus = "pending"
	}
	if t.Status == StatusDone {
		t.CompletedAt = &now
	}
	NormalizeTask(&t)
	return t
}

// ApplyUpdate shallow-merges the provided fields into t. CompletedAt is set
// to now when the status transitions to done and cleared when it leaves done;
// a task has a completion time exactly while it is done. Returns the status
// before the merge so callers can log the transition.
func ApplyUpdate(t *Task, u TaskUpdate, now time.Time) (oldStatus string) {
	oldStatus = t.Status

	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
		if *u.Status == StatusDone {
			if oldStatus != StatusDone {
				t.CompletedAt = &now
			}
		} else {
			t.CompletedAt = nil
		}
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.ProjectID != nil {
		t.ProjectID = *u.ProjectID
	}
	if u.AssignedTo != nil {
		t.AssignedTo = *u.AssignedTo
	}
	if u.Tags != nil {
		t.Tags = u.Tags
	}
	if u.DueDate != nil {
		t.DueDate = u.DueDate
	}
	if u.EstimatedHours != nil {
		t.EstimatedHours = u.EstimatedHours
	}
	if u.ActualHours != nil {
		t.ActualHours = u.ActualHours
	}
	if u.RandyStatus != nil {
		t.RandyStatus = *u.RandyStatus
	}
	t.UpdatedAt = now
	NormalizeTask(t)
	return oldStatus
}

// MoveTask applies a drag-and-drop status change, keeping CompletedAt in
// step with the done column.
func MoveTask(t *Task, status string, now time.Time) {
	if status == StatusDone {
		if t.Status != StatusDone {
			t.CompletedAt = &now
		}
	} else {
		t.CompletedAt = nil
	}
	t.Status = status
	t.UpdatedAt = now
}

// NewProject builds a project from create input with the canonical defaults.
func NewProject(in ProjectInput, id int64, now time.Time) Project {
	p := Project{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		IsFridge:    in.IsFridge,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Color == "" {
		p.Color = DefaultColor
	}
	return p
}

// DefaultProject returns the canonical "Geral" project seeded in every store.
func DefaultProject(now time.Time) Project {
	return Project{
		ID:          DefaultProjectID,
		Name:        DefaultProjectName,
		Description: DefaultProjectDescription,
		Color:       DefaultColor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Actor returns who performed an action, falling back to the system actor.
func Actor(s string) string {
	if s == "" {
		return SystemActor
	}
	return s
}

// Activity log wording. Both storage modes must record identical text.

func CreatedMessage(title string) string {
	return "Tarefa criada: " + title
}

func UpdatedMessage(title string) string {
	return "Tarefa atualizada: " + title
}

func StatusChangedMessage(from, to string) string {
	return fmt.Sprintf("Status alterado de %q para %q", from, to)
}

func MovedMessage(status string) string {
	return "Tarefa movida para " + status
}

func DeletedMessage(title string) string {
	return "Tarefa deletada: " + title
}

func CommentedMessage() string {
	return "Comentário adicionado"
}
