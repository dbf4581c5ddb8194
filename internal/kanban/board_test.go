package kanban_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/kanban"
	"github.com/taskdeck/taskdeck/internal/models"
)

func boardTasks() []models.Task {
	return []models.Task{
		{ID: "p1", Status: models.StatusPending},
		{ID: "p2", Status: models.StatusPending},
		{ID: "w1", Status: models.StatusInProgress},
		{ID: "d1", Status: models.StatusDone},
		{ID: "c1", Status: models.StatusCancelled},
	}
}

func TestNewBoardSeedsLanes(t *testing.T) {
	b := kanban.NewBoard(boardTasks())

	assert.Empty(t, b.Column(kanban.LaneBacklog), "backlog starts empty")
	assert.Equal(t, []string{"p1", "p2"}, b.Column(kanban.LaneTodo))
	assert.Equal(t, []string{"w1"}, b.Column(kanban.LaneInProgress))
	assert.Equal(t, []string{"d1"}, b.Column(kanban.LaneDone))
	assert.Equal(t, []string{"c1"}, b.Column(kanban.LaneCancelled))
}

func TestLaneStatusMapping(t *testing.T) {
	assert.Equal(t, models.StatusPending, kanban.LaneBacklog.Status())
	assert.Equal(t, models.StatusPending, kanban.LaneTodo.Status())
	assert.Equal(t, models.StatusInProgress, kanban.LaneInProgress.Status())
	assert.Equal(t, models.StatusDone, kanban.LaneDone.Status())
	assert.Equal(t, models.StatusCancelled, kanban.LaneCancelled.Status())
}

func TestMoveWithin(t *testing.T) {
	b := kanban.NewBoard([]models.Task{
		{ID: "a", Status: models.StatusPending},
		{ID: "b", Status: models.StatusPending},
		{ID: "c", Status: models.StatusPending},
	})

	b.MoveWithin(kanban.LaneTodo, 0, 2)
	assert.Equal(t, []string{"b", "c", "a"}, b.Column(kanban.LaneTodo))

	b.MoveWithin(kanban.LaneTodo, 2, 0)
	assert.Equal(t, []string{"a", "b", "c"}, b.Column(kanban.LaneTodo))

	// Out-of-range moves are ignored.
	b.MoveWithin(kanban.LaneTodo, 0, 9)
	assert.Equal(t, []string{"a", "b", "c"}, b.Column(kanban.LaneTodo))
}

func TestMoveToInsertsAtPosition(t *testing.T) {
	b := kanban.NewBoard(boardTasks())

	b.MoveTo("p1", kanban.LaneInProgress, 0)
	assert.Equal(t, []string{"p2"}, b.Column(kanban.LaneTodo))
	assert.Equal(t, []string{"p1", "w1"}, b.Column(kanban.LaneInProgress))
}

func TestMoveToAppendsWhenIndexOutOfRange(t *testing.T) {
	b := kanban.NewBoard(boardTasks())

	// Dropping on the lane container rather than a sibling card appends.
	b.MoveTo("p1", kanban.LaneDone, -1)
	assert.Equal(t, []string{"d1", "p1"}, b.Column(kanban.LaneDone))
}

func TestDropStatus(t *testing.T) {
	b := kanban.NewBoard(boardTasks())

	b.MoveTo("p1", kanban.LaneDone, 0)
	status, ok := b.DropStatus("p1")
	require.True(t, ok)
	assert.Equal(t, models.StatusDone, status)

	// Moving into backlog still commits pending.
	b.MoveTo("w1", kanban.LaneBacklog, 0)
	status, ok = b.DropStatus("w1")
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, status)

	_, ok = b.DropStatus("missing")
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	b := kanban.NewBoard(boardTasks())
	b.Remove("p2")
	assert.Equal(t, []string{"p1"}, b.Column(kanban.LaneTodo))

	lane, _, ok := b.Locate("p2")
	assert.False(t, ok)
	assert.Empty(t, lane)
}
