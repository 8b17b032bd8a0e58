package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
	"github.com/Macrojordan/mission-control-kanban/internal/store"
)

const taskNotFound = "Tarefa não encontrada"

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func filterFromQuery(c *gin.Context) model.TaskFilter {
	projectID, _ := strconv.ParseInt(c.Query("project_id"), 10, 64)
	return model.TaskFilter{
		Status:     c.Query("status"),
		ProjectID:  projectID,
		Priority:   c.Query("priority"),
		AssignedTo: c.Query("assigned_to"),
		Search:     c.Query("search"),
		Tag:        c.Query("tag"),
	}
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.store.ListTasks(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	detail, err := s.store.GetTaskDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": taskNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var in model.TaskInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if in.Status != "" && !model.ValidStatus(in.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	if in.Priority != "" && !model.ValidPriority(in.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
		return
	}

	ctx := c.Request.Context()
	task, err := s.store.CreateTask(ctx, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.logActivity(c, &task.ID, model.ActionCreated, model.CreatedMessage(task.Title), in.AssignedTo)
	if task.AssignedTo == model.Randy {
		if err := s.store.NotifyRandy(ctx, task.ID, "new_task", "Nova tarefa atribuída a você: "+task.Title); err != nil {
			log.Printf("notify randy: %v", err)
		}
	}

	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var u model.TaskUpdate
	if err := c.BindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if u.Status != nil && !model.ValidStatus(*u.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	if u.Priority != nil && !model.ValidPriority(*u.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
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

	oldAssignee := task.AssignedTo
	oldStatus := model.ApplyUpdate(task, u, time.Now())
	if err := s.store.SaveTask(ctx, task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if task.Status != oldStatus {
		s.logActivity(c, &id, model.ActionStatusChanged,
			model.StatusChangedMessage(oldStatus, task.Status), u.UpdatedBy)
	}
	if task.AssignedTo == model.Randy && oldAssignee != model.Randy {
		if err := s.store.NotifyRandy(ctx, id, "assigned", "Tarefa atribuída a você: "+task.Title); err != nil {
			log.Printf("notify randy: %v", err)
		}
	}

	c.JSON(http.StatusOK, task)
}

func (s *Server) handleMoveTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var body struct {
		Status  string `json:"status"`
		MovedBy string `json:"moved_by"`
	}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !model.ValidStatus(body.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
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

	model.MoveTask(task, body.Status, time.Now())
	if err := s.store.SaveTask(ctx, task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.logActivity(c, &id, model.ActionMoved, model.MovedMessage(body.Status), body.MovedBy)
	if task.AssignedTo == model.Randy && body.Status == model.StatusDone {
		if err := s.store.NotifyRandy(ctx, id, "completed", "Tarefa completada: "+task.Title); err != nil {
			log.Printf("notify randy: %v", err)
		}
	}

	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var body struct {
		DeletedBy string `json:"deleted_by"`
	}
	// DELETE bodies are optional.
	c.ShouldBindJSON(&body)

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

	if err := s.store.DeleteTask(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.logActivity(c, &id, model.ActionDeleted, model.DeletedMessage(task.Title), body.DeletedBy)
	c.JSON(http.StatusOK, gin.H{"message": "Tarefa deletada com sucesso"})
}

// logActivity records an audit entry; failures are logged, not fatal.
func (s *Server) logActivity(c *gin.Context, taskID *int64, action, description, performedBy string) {
	if err := s.store.LogActivity(c.Request.Context(), taskID, action, description, performedBy); err != nil {
		log.Printf("log activity: %v", err)
	}
}
