package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

func (s *Server) handleListComments(c *gin.Context) {
	taskID, ok := paramID(c, "taskId")
	if !ok {
		return
	}

	comments, err := s.store.ListComments(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (s *Server) handleAddComment(c *gin.Context) {
	var body struct {
		TaskID  int64  `json:"task_id"`
		Author  string `json:"author"`
		Content string `json:"content"`
	}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.TaskID == 0 || body.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task_id and content are required"})
		return
	}

	comment, err := s.store.CreateComment(c.Request.Context(), body.TaskID, body.Author, body.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.logActivity(c, &body.TaskID, model.ActionCommented, model.CommentedMessage(), body.Author)
	c.JSON(http.StatusCreated, comment)
}

func (s *Server) handleDeleteComment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := s.store.DeleteComment(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comentário deletado"})
}
