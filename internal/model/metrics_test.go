package model

import (
	"testing"
	"time"
)

func samplePtr(t time.Time) *time.Time { return &t }

func TestComputeDashboard(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	projects := []Project{
		{ID: 1, Name: "Geral", Color: DefaultColor},
		{ID: 2, Name: "Infra", Color: "#ff0000"},
	}
	tasks := []Task{
		{ID: 1, Title: "A", Status: StatusTodo, Priority: PriorityHigh, ProjectID: 1, CreatedAt: now.AddDate(0, 0, -1)},
		{ID: 2, Title: "B", Status: StatusTodo, Priority: PriorityLow, ProjectID: 2, CreatedAt: now.AddDate(0, 0, -10)},
		{
			ID: 3, Title: "C", Status: StatusDone, Priority: PriorityMedium, ProjectID: 1,
			CreatedAt:   now.Add(-5 * time.Hour),
			CompletedAt: samplePtr(now.Add(-1 * time.Hour)),
		},
		{
			ID: 4, Title: "D", Status: StatusDone, Priority: PriorityMedium, ProjectID: 2,
			CreatedAt:   now.AddDate(0, 0, -9),
			CompletedAt: samplePtr(now.AddDate(0, 0, -8)),
		},
	}
	activity := []Activity{
		{ID: 1, TaskID: samplePtrInt(3), Description: "Tarefa criada: C", CreatedAt: now},
	}

	d := ComputeDashboard(tasks, projects, activity, now)

	if d.Totals.All != 4 {
		t.Errorf("Expected 4 tasks, got %d", d.Totals.All)
	}
	if d.Totals.CompletedToday != 1 {
		t.Errorf("Expected 1 completed today, got %d", d.Totals.CompletedToday)
	}
	if d.Totals.CreatedThisWeek != 2 {
		t.Errorf("Expected 2 created this week, got %d", d.Totals.CreatedThisWeek)
	}

	// Status buckets in canonical order, zero buckets omitted
	if len(d.ByStatus) != 2 {
		t.Fatalf("Expected 2 status buckets, got %v", d.ByStatus)
	}
	if d.ByStatus[0].Status != StatusTodo || d.ByStatus[0].Count != 2 {
		t.Errorf("Unexpected first status bucket: %+v", d.ByStatus[0])
	}
	if d.ByStatus[1].Status != StatusDone || d.ByStatus[1].Count != 2 {
		t.Errorf("Unexpected second status bucket: %+v", d.ByStatus[1])
	}

	// Priority buckets count open tasks only
	if len(d.ByPriority) != 2 {
		t.Fatalf("Expected 2 priority buckets, got %v", d.ByPriority)
	}
	if d.ByPriority[0].Priority != PriorityHigh || d.ByPriority[0].Count != 1 {
		t.Errorf("Unexpected priority bucket: %+v", d.ByPriority[0])
	}

	// (4h + 24h) / 2 = 14h
	if d.AvgCompletionHours != 14 {
		t.Errorf("Expected avg 14h, got %d", d.AvgCompletionHours)
	}

	if len(d.RecentActivity) != 1 {
		t.Fatalf("Expected 1 activity entry, got %d", len(d.RecentActivity))
	}
	if d.RecentActivity[0].TaskTitle == nil || *d.RecentActivity[0].TaskTitle != "C" {
		t.Error("Expected activity enriched with task title")
	}
}

func samplePtrInt(v int64) *int64 { return &v }

func TestComputeDashboardEmpty(t *testing.T) {
	t.Parallel()

	d := ComputeDashboard(nil, nil, nil, time.Now())

	if d.Totals.All != 0 {
		t.Errorf("Expected 0 tasks, got %d", d.Totals.All)
	}
	if len(d.ByStatus) != 0 || len(d.ByPriority) != 0 {
		t.Error("Expected no buckets for empty data")
	}
	if d.AvgCompletionHours != 0 {
		t.Errorf("Expected avg 0, got %d", d.AvgCompletionHours)
	}
}

func TestSortRandyTasks(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tasks := []Task{
		{ID: 1, Priority: PriorityLow, CreatedAt: now},
		{ID: 2, Priority: PriorityHigh, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 3, Priority: PriorityHigh, CreatedAt: now.Add(-1 * time.Hour)},
		{ID: 4, Priority: PriorityMedium, CreatedAt: now},
	}

	SortRandyTasks(tasks)

	wantOrder := []int64{3, 2, 4, 1}
	for i, want := range wantOrder {
		if tasks[i].ID != want {
			t.Errorf("Position %d: expected task %d, got %d", i, want, tasks[i].ID)
		}
	}
}

func TestComputeRandyStats(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	tasks := []Task{
		{ID: 1, Status: StatusDone, Priority: PriorityHigh, CreatedAt: now.Add(-3 * time.Hour), CompletedAt: samplePtr(now)},
		{ID: 2, Status: StatusInProgress, Priority: PriorityHigh, CreatedAt: now},
		{ID: 3, Status: StatusTodo, Priority: PriorityLow, CreatedAt: now},
	}

	stats := ComputeRandyStats(tasks)

	if stats.Total != 3 || stats.Completed != 1 || stats.InProgress != 1 {
		t.Errorf("Unexpected counts: %+v", stats)
	}
	// 1/3 rounds to 33
	if stats.CompletionRate != 33 {
		t.Errorf("Expected completion rate 33, got %d", stats.CompletionRate)
	}
	if stats.AvgCompletionHours != 3 {
		t.Errorf("Expected avg 3h, got %d", stats.AvgCompletionHours)
	}
	if len(stats.ByPriority) != 2 {
		t.Fatalf("Expected 2 priority buckets, got %v", stats.ByPriority)
	}
	if stats.ByPriority[0].Priority != PriorityHigh || stats.ByPriority[0].Count != 1 {
		t.Errorf("Unexpected priority bucket: %+v", stats.ByPriority[0])
	}
}

func TestRoundHours(t *testing.T) {
	t.Parallel()

	if RoundHours(0, 0) != 0 {
		t.Error("Expected 0 for no samples")
	}
	if RoundHours(10, 4) != 3 {
		t.Errorf("Expected 2.5 rounded to 3, got %d", RoundHours(10, 4))
	}
}
