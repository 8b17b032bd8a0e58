package model

import (
	"net/url"
	"strconv"
	"strings"
)

// TaskFilter narrows a task listing. Zero values mean "no constraint".
// The same filter drives the SQL WHERE clause remotely and the in-memory
// predicate locally; Matches defines the canonical semantics: case-sensitive
// equality for enum fields, case-insensitive substring match for search, and
// exact membership for the tag filter.
type TaskFilter struct {
	Status     string
	ProjectID  int64
	Priority   string
	AssignedTo string
	Search     string
	Tag        string
}

// IsZero reports whether no constraint is set.
func (f TaskFilter) IsZero() bool {
	return f == TaskFilter{}
}

// Matches reports whether t passes every set constraint.
func (f TaskFilter) Matches(t Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.ProjectID != 0 && t.ProjectID != f.ProjectID {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), term) &&
			!strings.Contains(strings.ToLower(t.Description), term) {
			return false
		}
	}
	if f.Tag != "" {
		found := false
		for _, tag := range t.Tags {
			if tag == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Query encodes the filter as API query parameters.
func (f TaskFilter) Query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.ProjectID != 0 {
		q.Set("project_id", strconv.FormatInt(f.ProjectID, 10))
	}
	if f.Priority != "" {
		q.Set("priority", f.Priority)
	}
	if f.AssignedTo != "" {
		q.Set("assigned_to", f.AssignedTo)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Tag != "" {
		q.Set("tag", f.Tag)
	}
	return q
}

// FilterTasks applies f to tasks, preserving order.
func FilterTasks(tasks []Task, f TaskFilter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
