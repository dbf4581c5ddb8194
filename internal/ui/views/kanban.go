package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/kanban"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/todo"
	"github.com/taskdeck/taskdeck/internal/ui/keys"
	"github.com/taskdeck/taskdeck/internal/ui/styles"
)

// KanbanView shows the board: five status lanes with keyboard grab and drop.
type KanbanView struct {
	ctx    context.Context
	store  *todo.Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int
	loaded bool

	board   *kanban.Board
	laneIdx int
	cursor  int

	// Grab state: while grabbed, movement keys reposition the card locally;
	// dropping commits the destination lane's status to the service.
	grabbed   bool
	grabbedID string
}

// NewKanbanView creates the board view.
func NewKanbanView(ctx context.Context, store *todo.Store) *KanbanView {
	return &KanbanView{
		ctx:    ctx,
		store:  store,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		board:  kanban.NewBoard(nil),
	}
}

// Init reloads tasks and rebuilds the board. The board is only rebuilt on
// entry or explicit refresh, never behind the user's back.
func (v *KanbanView) Init() tea.Cmd {
	return v.reload
}

type boardReloadedMsg struct{}

func (v *KanbanView) reload() tea.Msg {
	v.store.Load(v.ctx)
	return boardReloadedMsg{}
}

type statusDroppedMsg struct{}

func (v *KanbanView) lane() kanban.Lane {
	return kanban.Lanes[v.laneIdx]
}

// taskByID resolves a board card back to its task.
func (v *KanbanView) taskByID(id string) (models.Task, bool) {
	for _, t := range v.store.Tasks() {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func (v *KanbanView) clampCursor() {
	col := v.board.Column(v.lane())
	if v.cursor >= len(col) {
		v.cursor = max(0, len(col)-1)
	}
}

func (v *KanbanView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case boardReloadedMsg:
		v.loaded = true
		v.board = kanban.NewBoard(v.store.Tasks())
		v.grabbed = false
		v.grabbedID = ""
		v.clampCursor()
		return v, nil

	case statusDroppedMsg:
		// Board positions are already final; the message only surfaces any
		// error banner. No rollback on failure.
		return v, nil

	case tea.KeyMsg:
		if v.grabbed {
			return v.updateGrabbed(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *KanbanView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		if v.store.LastError() != "" {
			v.store.Dismiss()
			return v, nil
		}
		return v, func() tea.Msg { return SwitchView{Target: TargetList} }

	case key.Matches(msg, v.keys.Left):
		if v.laneIdx > 0 {
			v.laneIdx--
			v.clampCursor()
		}
		return v, nil

	case key.Matches(msg, v.keys.Right):
		if v.laneIdx < len(kanban.Lanes)-1 {
			v.laneIdx++
			v.clampCursor()
		}
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.board.Column(v.lane()))-1 {
			v.cursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Toggle):
		col := v.board.Column(v.lane())
		if len(col) > 0 {
			v.grabbed = true
			v.grabbedID = col[v.cursor]
		}
		return v, nil

	case key.Matches(msg, v.keys.Refresh):
		return v, v.reload

	case msg.String() == "1":
		return v, func() tea.Msg { return SwitchView{Target: TargetList} }
	case msg.String() == "3":
		return v, func() tea.Msg { return SwitchView{Target: TargetCalendar} }
	case msg.String() == "4":
		return v, func() tea.Msg { return SwitchView{Target: TargetTags} }
	case msg.String() == "5":
		return v, func() tea.Msg { return SwitchView{Target: TargetChat} }
	}

	return v, nil
}

func (v *KanbanView) updateGrabbed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.grabbed = false
		v.grabbedID = ""
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.board.MoveWithin(v.lane(), v.cursor, v.cursor-1)
			v.cursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.board.Column(v.lane()))-1 {
			v.board.MoveWithin(v.lane(), v.cursor, v.cursor+1)
			v.cursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Left):
		if v.laneIdx > 0 {
			v.laneIdx--
			v.board.MoveTo(v.grabbedID, v.lane(), v.cursor)
			v.clampCursor()
			v.locateGrabbed()
		}
		return v, nil

	case key.Matches(msg, v.keys.Right):
		if v.laneIdx < len(kanban.Lanes)-1 {
			v.laneIdx++
			v.board.MoveTo(v.grabbedID, v.lane(), v.cursor)
			v.clampCursor()
			v.locateGrabbed()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Toggle):
		return v, v.drop()
	}

	return v, nil
}

// locateGrabbed re-points the cursor at the grabbed card after a cross-lane
// move.
func (v *KanbanView) locateGrabbed() {
	if _, idx, ok := v.board.Locate(v.grabbedID); ok {
		v.cursor = idx
	}
}

// drop commits the grabbed card's new lane as its status. Local board
// positions stay even if the remote call fails; the error banner is the only
// signal of the divergence.
func (v *KanbanView) drop() tea.Cmd {
	id := v.grabbedID
	v.grabbed = false
	v.grabbedID = ""

	status, ok := v.board.DropStatus(id)
	if !ok {
		return nil
	}
	if task, found := v.taskByID(id); found && task.Status == status {
		return nil
	}

	return func() tea.Msg {
		v.store.SetStatus(v.ctx, id, status)
		return statusDroppedMsg{}
	}
}

func (v *KanbanView) View() string {
	s := v.styles

	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Board") + "  " + v.renderTabs())
	b.WriteString("\n\n")

	if banner := v.store.LastError(); banner != "" {
		b.WriteString(s.ErrorBanner.Render(banner))
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderLanes())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *KanbanView) renderTabs() string {
	s := v.styles
	labels := []string{"1 list", "2 board", "3 calendar", "4 tags", "5 chat"}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == 1 {
			parts[i] = s.TabActive.Render(l)
		} else {
			parts[i] = s.Tab.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (v *KanbanView) renderLanes() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	laneWidth := max(contentWidth/len(kanban.Lanes)-2, 14)
	laneHeight := max(v.height-10, 6)

	var lanes []string
	for li, lane := range kanban.Lanes {
		col := v.board.Column(lane)

		title := s.ColumnTitle.Render(fmt.Sprintf("%s (%d)", lane.Title(), len(col)))
		rows := []string{title, ""}

		for ci, id := range col {
			task, ok := v.taskByID(id)
			label := id
			if ok {
				label = task.Title
			}
			if len(label) > laneWidth-4 {
				label = label[:laneWidth-5] + "…"
			}

			cardStyle := s.Card
			if li == v.laneIdx && ci == v.cursor {
				cardStyle = s.CardSelected
				if v.grabbed && id == v.grabbedID {
					cardStyle = s.CardGrabbed
				}
			}
			rows = append(rows, cardStyle.Width(laneWidth-2).Render(label))
		}

		columnStyle := s.Column
		if li == v.laneIdx {
			columnStyle = s.ColumnFocused
		}
		lanes = append(lanes, columnStyle.Width(laneWidth).Height(laneHeight).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, lanes...)
}

func (v *KanbanView) renderHelp() string {
	if v.grabbed {
		return v.styles.Help.Render(
			fmt.Sprintf("%s move • %s drop • %s cancel",
				v.styles.HelpKey.Render("↑↓←→"),
				v.styles.HelpKey.Render("↵"),
				v.styles.HelpKey.Render("esc"),
			),
		)
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s navigate • %s grab • %s refresh • %s views • %s back • %s quit",
			v.styles.HelpKey.Render("↑↓←→"),
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("r"),
			v.styles.HelpKey.Render("1-5"),
			v.styles.HelpKey.Render("esc"),
			v.styles.HelpKey.Render("q"),
		),
	)
}
