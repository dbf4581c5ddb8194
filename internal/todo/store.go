// Package todo holds the client-side task state: the authoritative in-memory
// task list synchronized with the remote service, plus the pure filter, sort,
// and statistics derivations the views render from.
package todo

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/models"
)

// Store is the single in-memory source of truth for the signed-in user's
// tasks. Every mutation calls the service first and merges only the
// authoritative response; a failed call leaves the list untouched.
//
// Operations are not queued or deduplicated: two concurrent mutations on the
// same id race, and the later response wins. Accepted limitation.
type Store struct {
	client *api.Client

	mu      sync.RWMutex
	tasks   []models.Task
	lastErr string
}

// NewStore creates an empty store backed by client.
func NewStore(client *api.Client) *Store {
	return &Store{client: client}
}

// Tasks returns a copy of the full task list.
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// LastError returns the most recent operation failure, or "".
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Dismiss clears the error slot.
func (s *Store) Dismiss() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// Draft is the user input for creating a task.
type Draft struct {
	Title       string
	Description string
	Priority    models.Priority
	DueDate     *time.Time
	TagIDs      []string
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	Status      *models.Status
	Priority    *models.Priority
	DueDate     *time.Time
	TagIDs      *[]string
}

// Load fetches the full task collection and replaces the local list. On
// failure the prior list stays as it was.
func (s *Store) Load(ctx context.Context) error {
	wire, err := s.client.ListTasks(ctx, "")
	if err != nil {
		return s.fail("loading tasks failed", err)
	}

	tasks := make([]models.Task, 0, len(wire))
	for i, t := range wire {
		task := TaskFromWire(t)
		task.Order = i
		tasks = append(tasks, task)
	}

	s.mu.Lock()
	s.tasks = tasks
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Create sends a creation payload and appends the server's task on success.
func (s *Store) Create(ctx context.Context, draft Draft) error {
	req := api.TaskCreate{
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    string(draft.Priority),
		TagIDs:      draft.TagIDs,
	}
	if draft.DueDate != nil {
		req.DueDate = api.FormatTime(*draft.DueDate)
	}

	wire, err := s.client.CreateTask(ctx, req)
	if err != nil {
		return s.fail("creating task failed", err)
	}

	task := TaskFromWire(*wire)
	s.mu.Lock()
	task.Order = len(s.tasks)
	s.tasks = append(s.tasks, task)
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Update sends only the changed fields and merges the server's response into
// the matching entry, stamping an advisory UpdatedAt.
func (s *Store) Update(ctx context.Context, id string, patch Patch) error {
	req := api.TaskUpdate{
		Title:       patch.Title,
		Description: patch.Description,
		TagIDs:      patch.TagIDs,
	}
	if patch.Status != nil {
		status := string(*patch.Status)
		req.Status = &status
	}
	if patch.Priority != nil {
		priority := string(*patch.Priority)
		req.Priority = &priority
	}
	if patch.DueDate != nil {
		due := api.FormatTime(*patch.DueDate)
		req.DueDate = &due
	}

	wire, err := s.client.UpdateTask(ctx, id, req)
	if err != nil {
		return s.fail("updating task failed", err)
	}

	s.merge(TaskFromWire(*wire))
	return nil
}

// Delete removes the task locally once the service confirms.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteTask(ctx, id); err != nil {
		return s.fail("deleting task failed", err)
	}

	s.mu.Lock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Toggle advances the task's status along the service's fixed cycle
// pending -> in_progress -> done -> pending. Cancelled is never entered this
// way; it is only reachable through SetStatus.
func (s *Store) Toggle(ctx context.Context, id string) error {
	wire, err := s.client.ToggleTask(ctx, id)
	if err != nil {
		return s.fail("toggling task failed", err)
	}
	s.merge(TaskFromWire(*wire))
	return nil
}

// SetStatus assigns one of the four statuses directly via Update.
func (s *Store) SetStatus(ctx context.Context, id string, status models.Status) error {
	return s.Update(ctx, id, Patch{Status: &status})
}

// merge replaces the matching entry with the server copy, keeping the local
// manual order and stamping the advisory update time. The remote clock stays
// authoritative; the stamp only keeps the UI's "edited just now" honest.
func (s *Store) merge(task models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == task.ID {
			task.Order = t.Order
			task.UpdatedAt = time.Now()
			s.tasks[i] = task
			break
		}
	}
	s.lastErr = ""
}

func (s *Store) fail(msg string, err error) error {
	logger.Error(msg, err, zap.String("component", "todo"))
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	return err
}
