package todo

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/models"
)

// DefaultTagColor is assigned when the user does not pick one.
const DefaultTagColor = "#3B82F6"

// TagStore holds the user's tags, independently CRUD-able from tasks. Tasks
// keep snapshot copies; edits here show up on tasks only after a refetch.
type TagStore struct {
	client *api.Client

	mu      sync.RWMutex
	tags    []models.Tag
	lastErr string
}

// NewTagStore creates an empty tag store backed by client.
func NewTagStore(client *api.Client) *TagStore {
	return &TagStore{client: client}
}

// Tags returns a copy of the tag list.
func (s *TagStore) Tags() []models.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// LastError returns the most recent operation failure, or "".
func (s *TagStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Dismiss clears the error slot.
func (s *TagStore) Dismiss() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// Load fetches all tags, replacing the local list.
func (s *TagStore) Load(ctx context.Context) error {
	wire, err := s.client.ListTags(ctx)
	if err != nil {
		return s.fail("loading tags failed", err)
	}

	tags := make([]models.Tag, 0, len(wire))
	for _, t := range wire {
		tags = append(tags, TagFromWire(t))
	}

	s.mu.Lock()
	s.tags = tags
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Create adds a tag; an empty color falls back to DefaultTagColor.
func (s *TagStore) Create(ctx context.Context, name, color string) error {
	if color == "" {
		color = DefaultTagColor
	}
	wire, err := s.client.CreateTag(ctx, api.TagCreate{Name: name, Color: color})
	if err != nil {
		return s.fail("creating tag failed", err)
	}

	s.mu.Lock()
	s.tags = append(s.tags, TagFromWire(*wire))
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Update renames or recolors a tag; nil fields are unchanged.
func (s *TagStore) Update(ctx context.Context, id string, name, color *string) error {
	wire, err := s.client.UpdateTag(ctx, id, api.TagUpdate{Name: name, Color: color})
	if err != nil {
		return s.fail("updating tag failed", err)
	}

	updated := TagFromWire(*wire)
	s.mu.Lock()
	for i, t := range s.tags {
		if t.ID == id {
			s.tags[i] = updated
			break
		}
	}
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Delete removes a tag locally once the service confirms.
func (s *TagStore) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteTag(ctx, id); err != nil {
		return s.fail("deleting tag failed", err)
	}

	s.mu.Lock()
	for i, t := range s.tags {
		if t.ID == id {
			s.tags = append(s.tags[:i], s.tags[i+1:]...)
			break
		}
	}
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

func (s *TagStore) fail(msg string, err error) error {
	logger.Error(msg, err, zap.String("component", "tags"))
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	return err
}
