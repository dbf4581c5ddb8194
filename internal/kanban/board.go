// Package kanban models the board's lane membership. The board is a local
// projection built once from the task list: it is not kept in sync with the
// store and is rebuilt only when the board view is re-entered. Moves update
// the board immediately; the status change behind a drop is confirmed
// remotely afterwards, so a failed drop leaves the board showing a lane the
// service never confirmed.
package kanban

import "github.com/taskdeck/taskdeck/internal/models"

// Lane is one board column.
type Lane string

const (
	LaneBacklog    Lane = "backlog"
	LaneTodo       Lane = "todo"
	LaneInProgress Lane = "in_progress"
	LaneDone       Lane = "done"
	LaneCancelled  Lane = "cancelled"
)

// Lanes lists the columns in display order.
var Lanes = []Lane{LaneBacklog, LaneTodo, LaneInProgress, LaneDone, LaneCancelled}

// Status returns the task status a lane maps to. Backlog and todo both map
// to pending: the split is a board-only subdivision with no backing field.
func (l Lane) Status() models.Status {
	switch l {
	case LaneBacklog, LaneTodo:
		return models.StatusPending
	case LaneInProgress:
		return models.StatusInProgress
	case LaneDone:
		return models.StatusDone
	case LaneCancelled:
		return models.StatusCancelled
	}
	return models.StatusPending
}

// Title returns the column header.
func (l Lane) Title() string {
	switch l {
	case LaneBacklog:
		return "Backlog"
	case LaneTodo:
		return "To Do"
	case LaneInProgress:
		return "In Progress"
	case LaneDone:
		return "Done"
	case LaneCancelled:
		return "Cancelled"
	}
	return string(l)
}

// Board is the ordered lane membership, task ids per lane.
type Board struct {
	columns map[Lane][]string
}

// NewBoard builds lane membership from the current task list. Pending tasks
// seed the todo lane; backlog starts empty and only fills through moves.
func NewBoard(tasks []models.Task) *Board {
	b := &Board{columns: make(map[Lane][]string, len(Lanes))}
	for _, lane := range Lanes {
		b.columns[lane] = nil
	}
	for _, t := range tasks {
		lane := LaneTodo
		switch t.Status {
		case models.StatusInProgress:
			lane = LaneInProgress
		case models.StatusDone:
			lane = LaneDone
		case models.StatusCancelled:
			lane = LaneCancelled
		}
		b.columns[lane] = append(b.columns[lane], t.ID)
	}
	return b
}

// Column returns a copy of the ordered ids in a lane.
func (b *Board) Column(lane Lane) []string {
	ids := b.columns[lane]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Locate returns the lane and position holding id.
func (b *Board) Locate(id string) (Lane, int, bool) {
	for _, lane := range Lanes {
		for i, candidate := range b.columns[lane] {
			if candidate == id {
				return lane, i, true
			}
		}
	}
	return "", 0, false
}

// MoveWithin reorders a lane: the id at from is removed and reinserted at
// to. Purely local; no status change is implied.
func (b *Board) MoveWithin(lane Lane, from, to int) {
	ids := b.columns[lane]
	if from < 0 || from >= len(ids) || to < 0 || to >= len(ids) || from == to {
		return
	}
	id := ids[from]
	ids = append(ids[:from], ids[from+1:]...)
	ids = append(ids[:to], append([]string{id}, ids[to:]...)...)
	b.columns[lane] = ids
}

// MoveTo moves id into dst at index, removing it from its current lane.
// An out-of-range index appends, matching a drop on the lane container
// rather than on a sibling card.
func (b *Board) MoveTo(id string, dst Lane, index int) {
	src, pos, ok := b.Locate(id)
	if !ok {
		return
	}
	b.columns[src] = append(b.columns[src][:pos], b.columns[src][pos+1:]...)

	ids := b.columns[dst]
	if index < 0 || index > len(ids) {
		index = len(ids)
	}
	b.columns[dst] = append(ids[:index], append([]string{id}, ids[index:]...)...)
}

// Remove drops id from the board, e.g. after a delete.
func (b *Board) Remove(id string) {
	lane, pos, ok := b.Locate(id)
	if !ok {
		return
	}
	b.columns[lane] = append(b.columns[lane][:pos], b.columns[lane][pos+1:]...)
}

// DropStatus resolves the status a finished move commits: the status of the
// lane currently holding id.
func (b *Board) DropStatus(id string) (models.Status, bool) {
	lane, _, ok := b.Locate(id)
	if !ok {
		return "", false
	}
	return lane.Status(), true
}
