package model

import (
	"math"
	"sort"
	"time"
)

// Dashboard metric shapes, matching the /api/dashboard/metrics response.

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
}

type ProjectCount struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int64  `json:"count"`
}

type DashboardTotals struct {
	All             int64 `json:"all"`
	CompletedToday  int64 `json:"completed_today"`
	CreatedThisWeek int64 `json:"created_this_week"`
}

type Dashboard struct {
	Totals             DashboardTotals `json:"totals"`
	ByStatus           []StatusCount   `json:"by_status"`
	ByPriority         []PriorityCount `json:"by_priority"`
	ByProject          []ProjectCount  `json:"by_project"`
	AvgCompletionHours int64           `json:"avg_completion_hours"`
	RecentActivity     []Activity      `json:"recent_activity"`
}

// RandyTaskList is the /api/randy/tasks response shape.
type RandyTaskList struct {
	AssignedTo string `json:"assigned_to"`
	Total      int64  `json:"total"`
	Tasks      []Task `json:"tasks"`
}

// RandyStats is the /api/randy/stats response shape.
type RandyStats struct {
	Total              int64           `json:"total"`
	Completed          int64           `json:"completed"`
	InProgress         int64           `json:"in_progress"`
	CompletionRate     int64           `json:"completion_rate"`
	AvgCompletionHours int64           `json:"avg_completion_hours"`
	ByPriority         []PriorityCount `json:"by_priority"`
}

// CompletionHours returns the hours between creation and completion, or false
// when the task is not done.
func CompletionHours(t Task) (float64, bool) {
	if t.Status != StatusDone || t.CompletedAt == nil {
		return 0, false
	}
	return t.CompletedAt.Sub(t.CreatedAt).Hours(), true
}

// sameLocalDay reports whether a and b fall on the same local calendar day.
func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// ComputeDashboard is the in-memory equivalent of the server's SQL aggregates.
// Counts are emitted in canonical enum order with zero buckets omitted, which
// is also how the server orders its GROUP BY results, so the two computations
// compare equal for equal data.
func ComputeDashboard(tasks []Task, projects []Project, activity []Activity, now time.Time) Dashboard {
	byStatus := map[string]int64{}
	byPriority := map[string]int64{}
	byProject := map[int64]int64{}

	var completedToday, createdThisWeek int64
	var hoursTotal float64
	var hoursCount int64
	weekAgo := now.AddDate(0, 0, -7)

	for _, t := range tasks {
		byStatus[t.Status]++
		if t.Status != StatusDone {
			byPriority[t.Priority]++
		}
		byProject[t.ProjectID]++

		if !t.CreatedAt.Before(weekAgo) {
			createdThisWeek++
		}
		if hours, ok := CompletionHours(t); ok {
			hoursTotal += hours
			hoursCount++
			if sameLocalDay(*t.CompletedAt, now) {
				completedToday++
			}
		}
	}

	d := Dashboard{
		Totals: DashboardTotals{
			All:             int64(len(tasks)),
			CompletedToday:  completedToday,
			CreatedThisWeek: createdThisWeek,
		},
		AvgCompletionHours: RoundHours(hoursTotal, hoursCount),
	}

	for _, s := range StatusOrder {
		if byStatus[s] > 0 {
			d.ByStatus = append(d.ByStatus, StatusCount{Status: s, Count: byStatus[s]})
		}
	}
	for _, p := range PriorityOrder {
		if byPriority[p] > 0 {
			d.ByPriority = append(d.ByPriority, PriorityCount{Priority: p, Count: byPriority[p]})
		}
	}
	for _, p := range projects {
		d.ByProject = append(d.ByProject, ProjectCount{Name: p.Name, Color: p.Color, Count: byProject[p.ID]})
	}

	d.RecentActivity = EnrichActivity(activity, tasks)
	if len(d.RecentActivity) > 20 {
		d.RecentActivity = d.RecentActivity[:20]
	}

	return d
}

// EnrichActivity attaches task titles to activity entries.
func EnrichActivity(activity []Activity, tasks []Task) []Activity {
	titles := make(map[int64]string, len(tasks))
	for _, t := range tasks {
		titles[t.ID] = t.Title
	}

	out := make([]Activity, len(activity))
	for i, a := range activity {
		if a.TaskID != nil {
			if title, ok := titles[*a.TaskID]; ok {
				t := title
				a.TaskTitle = &t
			}
		}
		out[i] = a
	}
	return out
}

// SortRandyTasks orders the agent queue: priority high→medium→low, then most
// recently created first.
func SortRandyTasks(tasks []Task) {
	rank := map[string]int{PriorityHigh: 1, PriorityMedium: 2, PriorityLow: 3}
	sort.SliceStable(tasks, func(i, j int) bool {
		ri, rj := rank[tasks[i].Priority], rank[tasks[j].Priority]
		if ri != rj {
			return ri < rj
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
}

// ComputeRandyStats is the in-memory equivalent of the agent stats aggregates.
func ComputeRandyStats(tasks []Task) RandyStats {
	var stats RandyStats
	var hoursTotal float64
	var hoursCount int64
	byPriority := map[string]int64{}

	for _, t := range tasks {
		stats.Total++
		switch t.Status {
		case StatusDone:
			stats.Completed++
		case StatusInProgress:
			stats.InProgress++
		}
		if t.Status != StatusDone {
			byPriority[t.Priority]++
		}
		if hours, ok := CompletionHours(t); ok {
			hoursTotal += hours
			hoursCount++
		}
	}

	if stats.Total > 0 {
		stats.CompletionRate = int64(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	stats.AvgCompletionHours = RoundHours(hoursTotal, hoursCount)

	for _, p := range PriorityOrder {
		if byPriority[p] > 0 {
			stats.ByPriority = append(stats.ByPriority, PriorityCount{Priority: p, Count: byPriority[p]})
		}
	}
	return stats
}

// RoundHours averages a summed duration to the nearest whole hour.
func RoundHours(total float64, count int64) int64 {
	if count == 0 {
		return 0
	}
	return int64(math.Round(total / float64(count)))
}
