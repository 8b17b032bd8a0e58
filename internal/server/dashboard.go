package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

func (s *Server) handleDashboardMetrics(c *gin.Context) {
	dashboard, err := s.store.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// burndownPoint is one day of the burndown chart.
type burndownPoint struct {
	Date      string `json:"date"`
	Completed int64  `json:"completed"`
	Remaining int64  `json:"remaining"`
}

func (s *Server) handleBurndown(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "14"))
	if days < 1 || days > 90 {
		days = 14
	}

	tasks, err := s.store.ListTasks(c.Request.Context(), model.TaskFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	data := make([]burndownPoint, 0, days+1)
	for offset := days; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset)
		dayEnd := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).AddDate(0, 0, 1)

		var completed, remaining int64
		for _, t := range tasks {
			if t.CreatedAt.After(dayEnd) {
				continue
			}
			if t.Status == model.StatusDone && t.CompletedAt != nil && t.CompletedAt.Before(dayEnd) {
				completed++
			} else {
				remaining++
			}
		}
		data = append(data, burndownPoint{
			Date:      day.Format("2006-01-02"),
			Completed: completed,
			Remaining: remaining,
		})
	}

	c.JSON(http.StatusOK, gin.H{"days": days, "data": data})
}
