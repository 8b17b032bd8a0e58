package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

// Dashboard computes the dashboard metrics with SQL aggregates. Buckets are
// emitted in canonical enum order and time windows are derived from the same
// clock the client uses, so the result matches model.ComputeDashboard for
// equal data.
func (s *Store) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	now := nowFunc()
	d := &model.Dashboard{}

	if err := s.queryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&d.Totals.All); err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := s.queryRow(ctx, `SELECT COUNT(*) FROM tasks
		WHERE status = 'done' AND completed_at >= ? AND completed_at < ?`,
		dayStart, dayStart.AddDate(0, 0, 1)).Scan(&d.Totals.CompletedToday); err != nil {
		return nil, fmt.Errorf("dashboard completed today: %w", err)
	}

	if err := s.queryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE created_at >= ?`,
		now.AddDate(0, 0, -7)).Scan(&d.Totals.CreatedThisWeek); err != nil {
		return nil, fmt.Errorf("dashboard created this week: %w", err)
	}

	byStatus, err := s.countBy(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`, nil)
	if err != nil {
		return nil, err
	}
	for _, status := range model.StatusOrder {
		if byStatus[status] > 0 {
			d.ByStatus = append(d.ByStatus, model.StatusCount{Status: status, Count: byStatus[status]})
		}
	}

	byPriority, err := s.countBy(ctx, `SELECT priority, COUNT(*) FROM tasks WHERE status != 'done' GROUP BY priority`, nil)
	if err != nil {
		return nil, err
	}
	for _, priority := range model.PriorityOrder {
		if byPriority[priority] > 0 {
			d.ByPriority = append(d.ByPriority, model.PriorityCount{Priority: priority, Count: byPriority[priority]})
		}
	}

	rows, err := s.query(ctx, `SELECT p.name, p.color, COUNT(t.id)
		FROM projects p
		LEFT JOIN tasks t ON p.id = t.project_id
		GROUP BY p.id, p.name, p.color
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("dashboard by project: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pc model.ProjectCount
		if err := rows.Scan(&pc.Name, &pc.Color, &pc.Count); err != nil {
			return nil, err
		}
		d.ByProject = append(d.ByProject, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	d.AvgCompletionHours, err = s.avgCompletionHours(ctx, "")
	if err != nil {
		return nil, err
	}

	d.RecentActivity, err = s.ListActivity(ctx, 20, 0)
	if err != nil {
		return nil, err
	}

	return d, nil
}

// RandyStats computes the agent's statistics with SQL counts.
func (s *Store) RandyStats(ctx context.Context) (*model.RandyStats, error) {
	stats := &model.RandyStats{}

	err := s.queryRow(ctx, `SELECT
		COUNT(*),
		COUNT(CASE WHEN status = 'done' THEN 1 END),
		COUNT(CASE WHEN status = 'in_progress' THEN 1 END)
		FROM tasks WHERE assigned_to = ?`, model.Randy).
		Scan(&stats.Total, &stats.Completed, &stats.InProgress)
	if err != nil {
		return nil, fmt.Errorf("randy stats: %w", err)
	}

	if stats.Total > 0 {
		stats.CompletionRate = int64(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}

	stats.AvgCompletionHours, err = s.avgCompletionHours(ctx, model.Randy)
	if err != nil {
		return nil, err
	}

	byPriority, err := s.countBy(ctx,
		`SELECT priority, COUNT(*) FROM tasks WHERE assigned_to = ? AND status != 'done' GROUP BY priority`,
		[]any{model.Randy})
	if err != nil {
		return nil, err
	}
	for _, priority := range model.PriorityOrder {
		if byPriority[priority] > 0 {
			stats.ByPriority = append(stats.ByPriority, model.PriorityCount{Priority: priority, Count: byPriority[priority]})
		}
	}

	return stats, nil
}

func (s *Store) countBy(ctx context.Context, query string, args []any) (map[string]int64, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count query: %w", err)
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var (
			key   string
			count int64
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

// avgCompletionHours averages completion durations in Go rather than with
// dialect-specific date arithmetic.
func (s *Store) avgCompletionHours(ctx context.Context, assignedTo string) (int64, error) {
	query := `SELECT created_at, completed_at FROM tasks
		WHERE status = 'done' AND completed_at IS NOT NULL`
	var args []any
	if assignedTo != "" {
		query += ` AND assigned_to = ?`
		args = append(args, assignedTo)
	}

	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("avg completion: %w", err)
	}
	defer rows.Close()

	var (
		total float64
		count int64
	)
	for rows.Next() {
		var created, completed time.Time
		if err := rows.Scan(&created, &completed); err != nil {
			return 0, err
		}
		total += completed.Sub(created).Hours()
		count++
	}
	return model.RoundHours(total, count), rows.Err()
}
