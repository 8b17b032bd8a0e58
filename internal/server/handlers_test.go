package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

var ErrMockDB = errors.New("database error")

func newTestServer(mock *MockStorage, opts Options) *Server {
	gin.SetMode(gin.TestMode)
	return NewServer(mock, opts)
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return resp
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name           string
		password       string
		header         string
		expectedStatus int
	}{
		{
			name:           "no password configured allows anonymous access",
			password:       "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing token rejected",
			password:       "secret",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong token rejected",
			password:       "secret",
			header:         "Bearer nope",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "correct token accepted",
			password:       "secret",
			header:         "Bearer secret",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&MockStorage{}, Options{Password: tt.password})

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestHandleListTasks(t *testing.T) {
	mock := &MockStorage{}
	var gotFilter model.TaskFilter
	mock.ListTasksFunc = func(ctx context.Context, f model.TaskFilter) ([]model.Task, error) {
		gotFilter = f
		return []model.Task{{ID: 1, Title: "Primeira"}}, nil
	}
	srv := newTestServer(mock, Options{})

	w := doRequest(t, srv, http.MethodGet, "/api/tasks?status=todo&project_id=2&tag=infra", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if gotFilter.Status != "todo" || gotFilter.ProjectID != 2 || gotFilter.Tag != "infra" {
		t.Errorf("filter not parsed from query: %+v", gotFilter)
	}

	var tasks []model.Task
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != 1 {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestHandleCreateTask(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		setupMock      func(*MockStorage)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name:           "missing title returns validation error",
			body:           map[string]string{"description": "sem titulo"},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				if resp["error"] != "title is required" {
					t.Errorf("expected title error, got %v", resp["error"])
				}
			},
		},
		{
			name:           "unknown priority rejected",
			body:           map[string]string{"title": "Urgente", "priority": "urgent"},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				if resp["error"] != "invalid priority" {
					t.Errorf("expected priority error, got %v", resp["error"])
				}
			},
		},
		{
			name:           "unknown status rejected",
			body:           map[string]string{"title": "Urgente", "status": "doing"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "create succeeds and logs activity",
			body: map[string]any{"title": "Nova tarefa"},
			setupMock: func(m *MockStorage) {
				m.CreateTaskFunc = func(ctx context.Context, in model.TaskInput) (*model.Task, error) {
					task := model.NewTask(in, 7, time.Now())
					return &task, nil
				}
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				if resp["id"].(float64) != 7 {
					t.Errorf("expected id 7, got %v", resp["id"])
				}
				if resp["status"] != model.StatusBacklog {
					t.Errorf("expected backlog status, got %v", resp["status"])
				}
			},
		},
		{
			name: "store error returns 500",
			body: map[string]any{"title": "Nova tarefa"},
			setupMock: func(m *MockStorage) {
				m.CreateTaskFunc = func(ctx context.Context, in model.TaskInput) (*model.Task, error) {
					return nil, ErrMockDB
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockStorage{}
			if tt.setupMock != nil {
				tt.setupMock(mock)
			}
			srv := newTestServer(mock, Options{})

			w := doRequest(t, srv, http.MethodPost, "/api/tasks", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, decodeBody(t, w))
			}
		})
	}
}

func TestHandleCreateTaskNotifiesRandy(t *testing.T) {
	mock := &MockStorage{}
	mock.CreateTaskFunc = func(ctx context.Context, in model.TaskInput) (*model.Task, error) {
		task := model.NewTask(in, 3, time.Now())
		return &task, nil
	}
	var notified bool
	mock.NotifyRandyFunc = func(ctx context.Context, taskID int64, typ, message string) error {
		notified = true
		if taskID != 3 {
			t.Errorf("expected notification for task 3, got %d", taskID)
		}
		if typ != "new_task" {
			t.Errorf("expected type new_task, got %s", typ)
		}
		return nil
	}
	srv := newTestServer(mock, Options{})

	w := doRequest(t, srv, http.MethodPost, "/api/tasks", map[string]any{
		"title":       "Deploy",
		"assigned_to": model.Randy,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if !notified {
		t.Error("expected randy notification on assigned create")
	}
}

func TestHandleMoveTask(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           any
		setupMock      func(*MockStorage)
		expectedStatus int
	}{
		{
			name:           "invalid id",
			path:           "/api/tasks/abc/move",
			body:           map[string]string{"status": "done"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid status",
			path:           "/api/tasks/1/move",
			body:           map[string]string{"status": "archived"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "task not found",
			path:           "/api/tasks/99/move",
			body:           map[string]string{"status": "done"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "valid move",
			path: "/api/tasks/1/move",
			body: map[string]string{"status": "in_progress"},
			setupMock: func(m *MockStorage) {
				m.GetTaskFunc = func(ctx context.Context, id int64) (*model.Task, error) {
					return &model.Task{ID: id, Title: "Task", Status: model.StatusTodo}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockStorage{}
			if tt.setupMock != nil {
				tt.setupMock(mock)
			}
			srv := newTestServer(mock, Options{})

			w := doRequest(t, srv, http.MethodPatch, tt.path, tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandleMoveTaskToDoneSetsCompletedAt(t *testing.T) {
	mock := &MockStorage{}
	mock.GetTaskFunc = func(ctx context.Context, id int64) (*model.Task, error) {
		return &model.Task{ID: id, Title: "Task", Status: model.StatusReview}, nil
	}
	var saved *model.Task
	mock.SaveTaskFunc = func(ctx context.Context, task *model.Task) error {
		saved = task
		return nil
	}
	srv := newTestServer(mock, Options{})

	w := doRequest(t, srv, http.MethodPatch, "/api/tasks/5/move", map[string]string{"status": "done"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if saved == nil {
		t.Fatal("expected task to be saved")
	}
	if saved.Status != model.StatusDone {
		t.Errorf("expected done, got %s", saved.Status)
	}
	if saved.CompletedAt == nil {
		t.Error("expected completed_at to be set on move to done")
	}
}

func TestHandleMoveTaskOutOfDoneClearsCompletedAt(t *testing.T) {
	completed := time.Now().Add(-time.Hour)
	mock := &MockStorage{}
	mock.GetTaskFunc = func(ctx context.Context, id int64) (*model.Task, error) {
		return &model.Task{ID: id, Title: "Reaberta", Status: model.StatusDone, CompletedAt: &completed}, nil
	}
	var saved *model.Task
	mock.SaveTaskFunc = func(ctx context.Context, task *model.Task) error {
		saved = task
		return nil
	}
	srv := newTestServer(mock, Options{})

	w := doRequest(t, srv, http.MethodPatch, "/api/tasks/5/move", map[string]string{"status": "todo"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if saved == nil {
		t.Fatal("expected task to be saved")
	}
	if saved.CompletedAt != nil {
		t.Error("expected completed_at cleared when the task leaves done")
	}
}

func TestHandleUpdateTaskRejectsUnknownEnums(t *testing.T) {
	mock := &MockStorage{}
	mock.GetTaskFunc = func(ctx context.Context, id int64) (*model.Task, error) {
		t.Error("validation must run before the store is hit")
		return &model.Task{ID: id}, nil
	}
	srv := newTestServer(mock, Options{})

	w := doRequest(t, srv, http.MethodPut, "/api/tasks/5", map[string]string{"priority": "urgent"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = doRequest(t, srv, http.MethodPut, "/api/tasks/5", map[string]string{"status": "doing"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleDeleteTask(t *testing.T) {
	mock := &MockStorage{}
	mock.GetTaskFunc = func(ctx context.Context, id int64) (*model.Task, error) {
		return &model.Task{ID: id, Title: "Task antiga"}, nil
	}
	var logged string
	mock.LogActivityFunc = func(ctx context.Context, taskID *int64, action, description, performedBy string) error {
		logged = description
		return nil
	}
	srv := newTestServer(mock, Options{})

	w := doRequest(t, srv, http.MethodDelete, "/api/tasks/4", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeBody(t, w)
	if resp["message"] != "Tarefa deletada com sucesso" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
	if logged != model.DeletedMessage("Task antiga") {
		t.Errorf("expected deletion logged with title, got %q", logged)
	}
}

func TestHandleDeleteProjectProtectsDefault(t *testing.T) {
	var deleted bool
	mock := &MockStorage{}
	mock.DeleteProjectFunc = func(ctx context.Context, id int64) error {
		deleted = true
		return nil
	}
	srv := newTestServer(mock, Options{})

	w := doRequest(t, srv, http.MethodDelete, "/api/projects/1", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for default project, got %d", w.Code)
	}
	if deleted {
		t.Error("default project must not reach the store")
	}

	w = doRequest(t, srv, http.MethodDelete, "/api/projects/2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for regular project, got %d", w.Code)
	}
	if !deleted {
		t.Error("expected delete to reach the store")
	}
}

func TestHandleAddComment(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		expectedStatus int
	}{
		{
			name:           "missing content",
			body:           map[string]any{"task_id": 1},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing task id",
			body:           map[string]any{"content": "oi"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "valid comment",
			body:           map[string]any{"task_id": 1, "author": "ana", "content": "oi"},
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&MockStorage{}, Options{})

			w := doRequest(t, srv, http.MethodPost, "/api/comments", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandleRandyComplete(t *testing.T) {
	mock := &MockStorage{}
	mock.GetTaskFunc = func(ctx context.Context, id int64) (*model.Task, error) {
		return &model.Task{ID: id, Title: "Deploy", Status: model.StatusInProgress, AssignedTo: model.Randy}, nil
	}
	var saved *model.Task
	mock.SaveTaskFunc = func(ctx context.Context, task *model.Task) error {
		saved = task
		return nil
	}
	srv := newTestServer(mock, Options{})

	w := doRequest(t, srv, http.MethodPost, "/api/randy/tasks/8/complete", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	if saved == nil {
		t.Fatal("expected task to be saved")
	}
	if saved.Status != model.StatusDone {
		t.Errorf("expected done, got %s", saved.Status)
	}
	if saved.RandyStatus != "completed" {
		t.Errorf("expected randy_status completed, got %s", saved.RandyStatus)
	}
	if saved.CompletedAt == nil {
		t.Error("expected completed_at set")
	}
}

func TestHandleRandyProgressWithComment(t *testing.T) {
	mock := &MockStorage{}
	mock.GetTaskFunc = func(ctx context.Context, id int64) (*model.Task, error) {
		return &model.Task{ID: id, Title: "Deploy", Status: model.StatusTodo, AssignedTo: model.Randy}, nil
	}
	var commentAuthor, commentContent string
	mock.CreateCommentFunc = func(ctx context.Context, taskID int64, author, content string) (*model.Comment, error) {
		commentAuthor, commentContent = author, content
		return &model.Comment{ID: 1, TaskID: taskID, Author: author, Content: content}, nil
	}
	srv := newTestServer(mock, Options{})

	status := model.StatusInProgress
	w := doRequest(t, srv, http.MethodPost, "/api/randy/tasks/8/progress", map[string]any{
		"status":  status,
		"comment": "Metade feito",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	if commentAuthor != model.Randy {
		t.Errorf("expected comment by randy, got %q", commentAuthor)
	}
	if commentContent != "Metade feito" {
		t.Errorf("unexpected comment content: %q", commentContent)
	}
}

func TestHandleRandyTasks(t *testing.T) {
	mock := &MockStorage{}
	mock.RandyTasksFunc = func(ctx context.Context, status string) ([]model.Task, error) {
		return []model.Task{{ID: 1}, {ID: 2}}, nil
	}
	srv := newTestServer(mock, Options{})

	w := doRequest(t, srv, http.MethodGet, "/api/randy/tasks", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeBody(t, w)
	if resp["assigned_to"] != model.Randy {
		t.Errorf("expected assigned_to randy, got %v", resp["assigned_to"])
	}
	if resp["total"].(float64) != 2 {
		t.Errorf("expected total 2, got %v", resp["total"])
	}
}

func TestHandleTriggerSync(t *testing.T) {
	srv := newTestServer(&MockStorage{}, Options{})

	w := doRequest(t, srv, http.MethodPost, "/api/sync", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	resp := decodeBody(t, w)
	if resp["success"] != true {
		t.Errorf("expected success true, got %v", resp["success"])
	}
	if resp["syncId"] == "" {
		t.Error("expected a sync id")
	}

	// Status should now report the recorded sync
	w = doRequest(t, srv, http.MethodGet, "/api/sync/status", nil)
	resp = decodeBody(t, w)
	if resp["lastSync"] == nil {
		t.Error("expected lastSync after a manual sync")
	}
}

func TestHandleTriggerSyncConflict(t *testing.T) {
	srv := newTestServer(&MockStorage{}, Options{})
	srv.sync.isSyncing = true

	w := doRequest(t, srv, http.MethodPost, "/api/sync", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 while syncing, got %d", w.Code)
	}

	resp := decodeBody(t, w)
	if resp["error"] != "Sync already in progress" {
		t.Errorf("unexpected error: %v", resp["error"])
	}
}

func TestHandleCreateTemplate(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		expectedStatus int
	}{
		{
			name:           "missing data",
			body:           map[string]any{"name": "bugfix"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "valid template",
			body:           map[string]any{"name": "bugfix", "data": map[string]any{"priority": "high"}},
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&MockStorage{}, Options{})

			w := doRequest(t, srv, http.MethodPost, "/api/templates", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandleBurndown(t *testing.T) {
	mock := &MockStorage{}
	mock.ListTasksFunc = func(ctx context.Context, f model.TaskFilter) ([]model.Task, error) {
		return nil, nil
	}
	srv := newTestServer(mock, Options{})

	tests := []struct {
		name         string
		query        string
		expectedDays float64
	}{
		{"default", "", 14},
		{"explicit", "?days=7", 7},
		{"too large clamps to default", "?days=500", 14},
		{"invalid clamps to default", "?days=abc", 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, srv, http.MethodGet, "/api/dashboard/burndown"+tt.query, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			resp := decodeBody(t, w)
			if resp["days"].(float64) != tt.expectedDays {
				t.Errorf("expected %v days, got %v", tt.expectedDays, resp["days"])
			}
			if len(resp["data"].([]interface{})) != int(tt.expectedDays)+1 {
				t.Errorf("expected %d points, got %d", int(tt.expectedDays)+1, len(resp["data"].([]interface{})))
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&MockStorage{}, Options{Password: "secret"})

	// Health stays open even with auth enabled
	w := doRequest(t, srv, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeBody(t, w)
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %v", resp["status"])
	}
}

func TestHandleAuthVerify(t *testing.T) {
	srv := newTestServer(&MockStorage{}, Options{Password: "secret"})

	w := doRequest(t, srv, http.MethodPost, "/auth/verify", map[string]string{"password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = doRequest(t, srv, http.MethodPost, "/auth/verify", map[string]string{"password": "secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["success"] != true {
		t.Errorf("expected success true, got %v", resp["success"])
	}
}
