package todo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/todo"
)

func task(id, title string, status models.Status, priority models.Priority, order int) models.Task {
	return models.Task{ID: id, Title: title, Status: status, Priority: priority, Order: order}
}

func TestApplyIdentityFilter(t *testing.T) {
	tasks := []models.Task{
		task("1", "Buy groceries", models.StatusPending, models.PriorityHigh, 0),
		task("2", "Clean house", models.StatusDone, models.PriorityLow, 1),
		task("3", "Write report", models.StatusCancelled, models.PriorityUrgent, 2),
	}

	got := todo.Apply(tasks, todo.NewFilter())
	assert.Equal(t, tasks, got)
	assert.True(t, todo.NewFilter().IsDefault())
}

func TestApplyStatusFilter(t *testing.T) {
	tasks := []models.Task{
		task("1", "a", models.StatusPending, models.PriorityLow, 0),
		task("2", "b", models.StatusInProgress, models.PriorityLow, 1),
		task("3", "c", models.StatusDone, models.PriorityLow, 2),
		task("4", "d", models.StatusCancelled, models.PriorityLow, 3),
	}

	for _, status := range models.Statuses {
		f := todo.NewFilter()
		f.Status = string(status)
		got := todo.Apply(tasks, f)
		require.Len(t, got, 1, "status %s", status)
		assert.Equal(t, status, got[0].Status)
	}
}

func TestApplyPriorityFilter(t *testing.T) {
	tasks := []models.Task{
		task("1", "a", models.StatusPending, models.PriorityLow, 0),
		task("2", "b", models.StatusPending, models.PriorityUrgent, 1),
	}

	f := todo.NewFilter()
	f.Priority = string(models.PriorityUrgent)
	got := todo.Apply(tasks, f)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestApplyCategoryFilter(t *testing.T) {
	work := models.Tag{ID: "t1", Name: "Work"}
	tagged := task("1", "a", models.StatusPending, models.PriorityLow, 0)
	tagged.Tags = []models.Tag{work}
	untagged := task("2", "b", models.StatusPending, models.PriorityLow, 1)

	f := todo.NewFilter()
	f.Category = "Work"
	got := todo.Apply([]models.Task{tagged, untagged}, f)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	// Untagged tasks fall into the fallback category.
	f.Category = models.FallbackCategory
	got = todo.Apply([]models.Task{tagged, untagged}, f)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestApplySearch(t *testing.T) {
	groceries := task("1", "Buy groceries", models.StatusPending, models.PriorityLow, 0)
	house := task("2", "Clean house", models.StatusPending, models.PriorityLow, 1)
	described := task("3", "Errand", models.StatusPending, models.PriorityLow, 2)
	described.Description = "grab GROCERIES on the way home"

	f := todo.NewFilter()
	f.Search = "groc"
	got := todo.Apply([]models.Task{groceries, house, described}, f)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestSortPriorityThenOrder(t *testing.T) {
	a := task("A", "a", models.StatusPending, models.PriorityHigh, 2)
	b := task("B", "b", models.StatusPending, models.PriorityMedium, 1)
	c := task("C", "c", models.StatusPending, models.PriorityHigh, 1)

	got := todo.Sort([]models.Task{a, b, c})
	require.Len(t, got, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestSortUrgentAboveHigh(t *testing.T) {
	high := task("H", "h", models.StatusPending, models.PriorityHigh, 0)
	urgent := task("U", "u", models.StatusPending, models.PriorityUrgent, 5)

	got := todo.Sort([]models.Task{high, urgent})
	assert.Equal(t, "U", got[0].ID)
}

func TestSortDoesNotMutateInput(t *testing.T) {
	in := []models.Task{
		task("1", "a", models.StatusPending, models.PriorityLow, 0),
		task("2", "b", models.StatusPending, models.PriorityHigh, 1),
	}
	todo.Sort(in)
	assert.Equal(t, "1", in[0].ID)
}

func TestCategories(t *testing.T) {
	work := models.Tag{ID: "t1", Name: "Work"}
	first := task("1", "a", models.StatusPending, models.PriorityLow, 0)
	first.Tags = []models.Tag{work}
	second := task("2", "b", models.StatusPending, models.PriorityLow, 1)
	third := task("3", "c", models.StatusPending, models.PriorityLow, 2)
	third.Tags = []models.Tag{work}

	got := todo.Categories([]models.Task{first, second, third})
	assert.Equal(t, []string{"Work", models.FallbackCategory}, got)
}
