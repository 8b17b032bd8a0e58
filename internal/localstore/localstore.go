// Package localstore is the durable client-side mirror of the server
// collections, used when the network is unavailable. It is the last-resort
// path, so reads never fail: missing or corrupt files degrade to the zero
// value, and write errors are swallowed.
package localstore

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/natefinch/atomic"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

// Collection file names under the data directory.
const (
	tasksFile    = "tasks.json"
	projectsFile = "projects.json"
	commentsFile = "comments.json"
	activityFile = "activity.json"
	metaFile     = "meta.json"
)

// maxActivity bounds the locally retained activity log.
const maxActivity = 200

type meta struct {
	LastTaskID    int64 `json:"lastTaskId"`
	LastProjectID int64 `json:"lastProjectId"`
}

// Store persists serialized collections plus monotonic ID counters.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New opens a store rooted at dir and seeds the default project if missing.
func New(dir string) *Store {
	os.MkdirAll(dir, 0755)
	s := &Store{dir: dir}
	s.EnsureDefaultProject()
	return s
}

func (s *Store) read(name string, v any) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return
	}
	json.Unmarshal(data, v)
}

func (s *Store) write(name string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	atomic.WriteFile(filepath.Join(s.dir, name), bytes.NewReader(data))
}

// Tasks returns the mirrored task list, normalized.
func (s *Store) Tasks() []model.Task {
	var tasks []model.Task
	s.read(tasksFile, &tasks)
	for i := range tasks {
		model.NormalizeTask(&tasks[i])
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks
}

// SetTasks replaces the mirrored task list wholesale.
func (s *Store) SetTasks(tasks []model.Task) {
	s.write(tasksFile, tasks)
}

// Projects returns the mirrored project list.
func (s *Store) Projects() []model.Project {
	var projects []model.Project
	s.read(projectsFile, &projects)
	if projects == nil {
		projects = []model.Project{}
	}
	return projects
}

// SetProjects replaces the mirrored project list wholesale.
func (s *Store) SetProjects(projects []model.Project) {
	s.write(projectsFile, projects)
}

// Comments returns the mirrored comment list.
func (s *Store) Comments() []model.Comment {
	var comments []model.Comment
	s.read(commentsFile, &comments)
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments
}

// SetComments replaces the mirrored comment list wholesale.
func (s *Store) SetComments(comments []model.Comment) {
	s.write(commentsFile, comments)
}

// Activity returns the mirrored activity log, newest first.
func (s *Store) Activity() []model.Activity {
	var activity []model.Activity
	s.read(activityFile, &activity)
	if activity == nil {
		activity = []model.Activity{}
	}
	return activity
}

// SetActivity replaces the mirrored activity log, keeping at most maxActivity
// entries.
func (s *Store) SetActivity(activity []model.Activity) {
	if len(activity) > maxActivity {
		activity = activity[:maxActivity]
	}
	s.write(activityFile, activity)
}

// LogActivity prepends an entry to the local activity log. Local entry IDs
// are positional; they only need to be unique within the mirror.
func (s *Store) LogActivity(taskID int64, action, description, performedBy string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity := s.Activity()
	id := taskID
	entry := model.Activity{
		ID:          int64(len(activity) + 1),
		TaskID:      &id,
		Action:      action,
		Description: description,
		PerformedBy: model.Actor(performedBy),
		CreatedAt:   now,
	}
	s.SetActivity(append([]model.Activity{entry}, activity...))
}

func (s *Store) meta() meta {
	var m meta
	s.read(metaFile, &m)
	return m
}

func (s *Store) setMeta(m meta) {
	s.write(metaFile, m)
}

// NextTaskID increments and persists the task counter. IDs are never reused,
// even after deletes.
func (s *Store) NextTaskID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.meta()
	m.LastTaskID++
	s.setMeta(m)
	return m.LastTaskID
}

// NextProjectID increments and persists the project counter.
func (s *Store) NextProjectID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.meta()
	m.LastProjectID++
	s.setMeta(m)
	return m.LastProjectID
}

// BumpTaskID raises the task counter to at least id, so locally generated IDs
// never collide with server-assigned ones seen in the mirror.
func (s *Store) BumpTaskID(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.meta()
	if m.LastTaskID < id {
		m.LastTaskID = id
		s.setMeta(m)
	}
}

// BumpProjectID raises the project counter to at least id.
func (s *Store) BumpProjectID(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.meta()
	if m.LastProjectID < id {
		m.LastProjectID = id
		s.setMeta(m)
	}
}

// EnsureDefaultProject seeds the canonical "Geral" project (id 1) and aligns
// the project counter so it never collides with it.
func (s *Store) EnsureDefaultProject() {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := s.Projects()
	for _, p := range projects {
		if p.ID == model.DefaultProjectID {
			return
		}
	}

	s.SetProjects(append([]model.Project{model.DefaultProject(time.Now())}, projects...))
	m := s.meta()
	if m.LastProjectID < model.DefaultProjectID {
		m.LastProjectID = model.DefaultProjectID
		s.setMeta(m)
	}
}
