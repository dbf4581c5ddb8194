package todo

import (
	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/models"
)

// TaskFromWire maps a service task to the local shape. Completed state is
// never stored; it derives from Status on the model.
func TaskFromWire(t api.Task) models.Task {
	task := models.Task{
		ID:        t.ID,
		Title:     t.Title,
		Status:    models.Status(t.Status),
		Priority:  models.Priority(t.Priority),
		CreatedAt: api.ParseTime(t.CreatedAt),
		UpdatedAt: api.ParseTime(t.UpdatedAt),
	}
	if t.Description != nil {
		task.Description = *t.Description
	}
	if !task.Status.Valid() {
		task.Status = models.StatusPending
	}
	if task.Priority.Weight() == 0 {
		task.Priority = models.PriorityMedium
	}
	if t.DueDate != nil && *t.DueDate != "" {
		if due := api.ParseTime(*t.DueDate); !due.IsZero() {
			task.DueDate = &due
		}
	}
	for _, tag := range t.Tags {
		task.Tags = append(task.Tags, TagFromWire(tag))
	}
	return task
}

// TagFromWire maps a service tag to the local shape.
func TagFromWire(t api.Tag) models.Tag {
	return models.Tag{
		ID:        t.ID,
		UserID:    t.UserID,
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: api.ParseTime(t.CreatedAt),
	}
}
