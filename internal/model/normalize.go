package model

import (
	"encoding/json"
	"strings"
)

// ParseTags turns the stored representation of tags into a string slice.
// Accepts a JSON array or a legacy comma-joined string.
func ParseTags(raw string) []string {
	if raw == "" {
		return []string{}
	}

	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err == nil {
		if tags == nil {
			return []string{}
		}
		return tags
	}

	parts := strings.Split(raw, ",")
	tags = make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// NormalizeRandyStatus canonicalizes the agent sub-state. Older records use
// underscores ("in_progress"); the wire format uses hyphens.
func NormalizeRandyStatus(s string) string {
	if s == "" {
		return "pending"
	}
	return strings.ReplaceAll(s, "_", "-")
}

// NormalizeTask is the single read-boundary coercion applied to every task
// leaving a store, regardless of which store answered.
func NormalizeTask(t *Task) {
	if t.Tags == nil {
		t.Tags = []string{}
	}
	t.RandyStatus = NormalizeRandyStatus(t.RandyStatus)
}
