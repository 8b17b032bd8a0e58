package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
	"github.com/Macrojordan/mission-control-kanban/internal/store"
)

func (s *Server) handleRandyTasks(c *gin.Context) {
	tasks, err := s.store.RandyTasks(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.RandyTaskList{
		AssignedTo: model.Randy,
		Total:      int64(len(tasks)),
		Tasks:      tasks,
	})
}

func (s *Server) handleRandyComplete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": taskNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	model.MoveTask(task, model.StatusDone, now)
	task.RandyStatus = "completed"
	model.NormalizeTask(task)
	if err := s.store.SaveTask(ctx, task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.logActivity(c, &id, model.ActionCompleted, "Tarefa completada por Randy", model.Randy)
	c.JSON(http.StatusOK, gin.H{"message": "Tarefa marcada como completa", "task_id": id})
}

func (s *Server) handleRandyProgress(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var body struct {
		Status      *string  `json:"status"`
		ActualHours *float64 `json:"actual_hours"`
		Comment     string   `json:"comment"`
		RandyStatus *string  `json:"randy_status"`
	}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": taskNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	update := model.TaskUpdate{
		Status:      body.Status,
		ActualHours: body.ActualHours,
		RandyStatus: body.RandyStatus,
		UpdatedBy:   model.Randy,
	}
	model.ApplyUpdate(task, update, time.Now())
	if body.Status != nil && *body.Status == model.StatusDone {
		task.RandyStatus = "completed"
	}
	if err := s.store.SaveTask(ctx, task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if body.Comment != "" {
		if _, err := s.store.CreateComment(ctx, id, model.Randy, body.Comment); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	description := body.Comment
	if description == "" {
		description = "Progresso atualizado"
	}
	s.logActivity(c, &id, model.ActionProgressUpdate, description, model.Randy)

	c.JSON(http.StatusOK, gin.H{"message": "Progresso atualizado", "task_id": id})
}

func (s *Server) handleRandyNotifications(c *gin.Context) {
	unreadOnly := c.Query("unread_only") != ""
	notifications, err := s.store.ListNotifications(c.Request.Context(), unreadOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (s *Server) handleNotificationRead(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := s.store.MarkNotificationRead(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notificação marcada como lida"})
}

func (s *Server) handleRandyStats(c *gin.Context) {
	stats, err := s.store.RandyStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
