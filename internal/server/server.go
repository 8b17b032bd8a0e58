// Package server exposes the Mission Control REST API.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

// Storage is the store surface the handlers need. *store.Store implements it.
type Storage interface {
	ListTasks(ctx context.Context, f model.TaskFilter) ([]model.Task, error)
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	GetTaskDetail(ctx context.Context, id int64) (*model.TaskDetail, error)
	CreateTask(ctx context.Context, in model.TaskInput) (*model.Task, error)
	SaveTask(ctx context.Context, t *model.Task) error
	DeleteTask(ctx context.Context, id int64) error
	RandyTasks(ctx context.Context, status string) ([]model.Task, error)
	RandyStats(ctx context.Context) (*model.RandyStats, error)
	Dashboard(ctx context.Context) (*model.Dashboard, error)

	ListProjects(ctx context.Context) ([]model.Project, error)
	GetProject(ctx context.Context, id int64) (*model.Project, error)
	CreateProject(ctx context.Context, in model.ProjectInput) (*model.Project, error)
	SaveProject(ctx context.Context, p *model.Project) error
	DeleteProject(ctx context.Context, id int64) error

	ListComments(ctx context.Context, taskID int64) ([]model.Comment, error)
	CreateComment(ctx context.Context, taskID int64, author, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, id int64) error

	LogActivity(ctx context.Context, taskID *int64, action, description, performedBy string) error
	ListActivity(ctx context.Context, limit, offset int) ([]model.Activity, error)

	NotifyRandy(ctx context.Context, taskID int64, typ, message string) error
	ListNotifications(ctx context.Context, unreadOnly bool) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error

	ListTemplates(ctx context.Context) ([]model.Template, error)
	CreateTemplate(ctx context.Context, name string, data json.RawMessage) (*model.Template, error)
	UpdateTemplate(ctx context.Context, id int64, name *string, data json.RawMessage) (*model.Template, error)
	DeleteTemplate(ctx context.Context, id int64) error
}

// Options configures the server.
type Options struct {
	// Password gates every /api route when set. Sent as a bearer token.
	Password string
	// GatewayCommand is the agent-gateway wake command run on POST /api/sync.
	GatewayCommand string
}

// Server is the Mission Control API server.
type Server struct {
	store  Storage
	router *gin.Engine
	opts   Options
	sync   syncState
}

type syncState struct {
	mu        sync.Mutex
	lastSync  *time.Time
	isSyncing bool
}

// NewServer builds the server and registers all routes.
func NewServer(store Storage, opts Options) *Server {
	router := gin.Default()

	s := &Server{
		store:  store,
		router: router,
		opts:   opts,
	}
	s.registerRoutes(router)
	return s
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/health", s.handleHealth)
	router.POST("/auth/verify", s.handleAuthVerify)

	api := router.Group("/api", s.requireAuth)
	{
		api.GET("/tasks", s.handleListTasks)
		api.GET("/tasks/:id", s.handleGetTask)
		api.POST("/tasks", s.handleCreateTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.PATCH("/tasks/:id/move", s.handleMoveTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)

		api.GET("/projects", s.handleListProjects)
		api.GET("/projects/:id", s.handleGetProject)
		api.POST("/projects", s.handleCreateProject)
		api.PUT("/projects/:id", s.handleUpdateProject)
		api.PUT("/projects/:id/fridge", s.handleProjectFridge)
		api.DELETE("/projects/:id", s.handleDeleteProject)

		api.GET("/comments/task/:taskId", s.handleListComments)
		api.POST("/comments", s.handleAddComment)
		api.DELETE("/comments/:id", s.handleDeleteComment)

		api.GET("/activities", s.handleListActivities)

		api.GET("/dashboard/metrics", s.handleDashboardMetrics)
		api.GET("/dashboard/burndown", s.handleBurndown)

		api.GET("/randy/tasks", s.handleRandyTasks)
		api.POST("/randy/tasks/:id/complete", s.handleRandyComplete)
		api.POST("/randy/tasks/:id/progress", s.handleRandyProgress)
		api.GET("/randy/notifications", s.handleRandyNotifications)
		api.POST("/randy/notifications/:id/read", s.handleNotificationRead)
		api.GET("/randy/stats", s.handleRandyStats)

		api.GET("/templates", s.handleListTemplates)
		api.POST("/templates", s.handleCreateTemplate)
		api.PUT("/templates/:id", s.handleUpdateTemplate)
		api.DELETE("/templates/:id", s.handleDeleteTemplate)

		api.GET("/sync/status", s.handleSyncStatus)
		api.POST("/sync", s.handleTriggerSync)
	}
}

// Run starts the server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// requireAuth gates API routes behind the shared password.
func (s *Server) requireAuth(c *gin.Context) {
	if s.opts.Password == "" {
		return
	}
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token != s.opts.Password {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now(),
	})
}

func (s *Server) handleAuthVerify(c *gin.Context) {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.BindJSON(&body); err != nil {
		return
	}
	if s.opts.Password != "" && body.Password != s.opts.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
