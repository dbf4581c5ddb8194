package todo

import (
	"sort"
	"strings"

	"github.com/taskdeck/taskdeck/internal/models"
)

// All is the sentinel meaning "no restriction" for a filter dimension.
const All = "all"

// Filter narrows and orders the displayed task list. It lives entirely in
// the UI and is never sent to the service.
type Filter struct {
	Status   string // a models.Status value, or All
	Category string // a derived category name, or All
	Priority string // a models.Priority value, or All
	Search   string
}

// NewFilter returns the identity filter that passes every task.
func NewFilter() Filter {
	return Filter{Status: All, Category: All, Priority: All}
}

// IsDefault reports whether f is the identity filter.
func (f Filter) IsDefault() bool {
	return f.Status == All && f.Category == All && f.Priority == All && f.Search == ""
}

// Match reports whether a single task passes every filter dimension.
func (f Filter) Match(t models.Task) bool {
	if f.Status != All && string(t.Status) != f.Status {
		return false
	}
	if f.Category != All && f.Category != "" && t.Category() != f.Category {
		return false
	}
	if f.Priority != All && string(t.Priority) != f.Priority {
		return false
	}
	if f.Search != "" {
		query := strings.ToLower(f.Search)
		inTitle := strings.Contains(strings.ToLower(t.Title), query)
		inDesc := t.Description != "" && strings.Contains(strings.ToLower(t.Description), query)
		if !inTitle && !inDesc {
			return false
		}
	}
	return true
}

// Apply returns the subset of tasks passing the filter, in input order.
func Apply(tasks []models.Task, f Filter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Sort orders tasks by priority weight descending, then manual order
// ascending for equal priorities. Stable; the input is not modified.
func Sort(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := out[i].Priority.Weight(), out[j].Priority.Weight()
		if wi != wj {
			return wi > wj
		}
		return out[i].Order < out[j].Order
	})
	return out
}

// Visible is the full derivation the list view renders: filter, then sort.
func Visible(tasks []models.Task, f Filter) []models.Task {
	return Sort(Apply(tasks, f))
}

// Categories returns the distinct categories present in tasks, in first-seen
// order, for the filter dropdown.
func Categories(tasks []models.Task) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tasks {
		c := t.Category()
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
