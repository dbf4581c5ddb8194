package todo

import (
	"math"
	"time"

	"github.com/taskdeck/taskdeck/internal/models"
)

// Stats are summary counts over the full, unfiltered task list.
type Stats struct {
	Total        int
	Completed    int
	Active       int
	HighPriority int // high or urgent, not yet done
	InProgress   int
	Overdue      int
	// CompletionRate is completed/total as a rounded percentage; 0 when the
	// list is empty.
	CompletionRate int
}

// Aggregate derives Stats from tasks as of now.
func Aggregate(tasks []models.Task, now time.Time) Stats {
	var s Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed() {
			s.Completed++
		}
		if (t.Priority == models.PriorityHigh || t.Priority == models.PriorityUrgent) && !t.Completed() {
			s.HighPriority++
		}
		if t.Status == models.StatusInProgress {
			s.InProgress++
		}
		if t.Overdue(now) {
			s.Overdue++
		}
	}
	s.Active = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
