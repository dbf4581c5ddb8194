package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/todo"
	"github.com/taskdeck/taskdeck/internal/ui/keys"
	"github.com/taskdeck/taskdeck/internal/ui/styles"
)

// CalendarView shows a month grid keyed by due date with a per-day task list.
type CalendarView struct {
	ctx    context.Context
	store  *todo.Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int
	loaded bool

	month    time.Time // first day of the shown month
	selected time.Time // selected day
}

// NewCalendarView creates the calendar view anchored on today.
func NewCalendarView(ctx context.Context, store *todo.Store) *CalendarView {
	now := time.Now()
	return &CalendarView{
		ctx:      ctx,
		store:    store,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		month:    time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		selected: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
	}
}

func (v *CalendarView) Init() tea.Cmd {
	return v.reload
}

type calendarReloadedMsg struct{}

func (v *CalendarView) reload() tea.Msg {
	v.store.Load(v.ctx)
	return calendarReloadedMsg{}
}

// byDay indexes tasks by the calendar day their due date falls on.
func (v *CalendarView) byDay() map[string][]models.Task {
	out := make(map[string][]models.Task)
	for _, t := range v.store.Tasks() {
		if t.DueDate == nil {
			continue
		}
		day := t.DueDate.Format(dueDateLayout)
		out[day] = append(out[day], t)
	}
	return out
}

// selectDay moves the selection, following it across month boundaries.
func (v *CalendarView) selectDay(d time.Time) {
	v.selected = d
	v.month = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

func (v *CalendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case calendarReloadedMsg:
		v.loaded = true
		return v, nil

	case tea.KeyMsg:
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
			v.selectDay(v.selected.AddDate(0, 0, -1))
			return v, nil

		case key.Matches(msg, v.keys.Right):
			v.selectDay(v.selected.AddDate(0, 0, 1))
			return v, nil

		case key.Matches(msg, v.keys.Up):
			v.selectDay(v.selected.AddDate(0, 0, -7))
			return v, nil

		case key.Matches(msg, v.keys.Down):
			v.selectDay(v.selected.AddDate(0, 0, 7))
			return v, nil

		case msg.String() == "[":
			v.selectDay(v.selected.AddDate(0, -1, 0))
			return v, nil

		case msg.String() == "]":
			v.selectDay(v.selected.AddDate(0, 1, 0))
			return v, nil

		case msg.String() == "t":
			now := time.Now()
			v.selectDay(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()))
			return v, nil

		case key.Matches(msg, v.keys.Refresh):
			return v, v.reload

		case msg.String() == "1":
			return v, func() tea.Msg { return SwitchView{Target: TargetList} }
		case msg.String() == "2":
			return v, func() tea.Msg { return SwitchView{Target: TargetKanban} }
		case msg.String() == "4":
			return v, func() tea.Msg { return SwitchView{Target: TargetTags} }
		case msg.String() == "5":
			return v, func() tea.Msg { return SwitchView{Target: TargetChat} }
		}
	}

	return v, nil
}

func (v *CalendarView) View() string {
	s := v.styles

	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Calendar") + "  " + v.renderTabs())
	b.WriteString("\n\n")

	if banner := v.store.LastError(); banner != "" {
		b.WriteString(s.ErrorBanner.Render(banner))
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderMonth())
	b.WriteString("\n")
	b.WriteString(v.renderDayList())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *CalendarView) renderTabs() string {
	s := v.styles
	labels := []string{"1 list", "2 board", "3 calendar", "4 tags", "5 chat"}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == 2 {
			parts[i] = s.TabActive.Render(l)
		} else {
			parts[i] = s.Tab.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (v *CalendarView) renderMonth() string {
	s := v.styles
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	byDay := v.byDay()

	header := s.Title.Render(v.month.Format("January 2006"))

	weekdays := []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	var headerCells []string
	for _, wd := range weekdays {
		headerCells = append(headerCells, s.TitleMuted.Width(4).Align(lipgloss.Right).Render(wd))
	}
	weekdayRow := lipgloss.JoinHorizontal(lipgloss.Top, headerCells...)

	// Walk from the Sunday on or before the 1st through the Saturday on or
	// after the last day.
	cursor := v.month.AddDate(0, 0, -int(v.month.Weekday()))
	lastDay := v.month.AddDate(0, 1, -1)

	var weeks []string
	for !cursor.After(lastDay) {
		var cells []string
		for i := 0; i < 7; i++ {
			cells = append(cells, v.renderDayCell(cursor, today, byDay))
			cursor = cursor.AddDate(0, 0, 1)
		}
		weeks = append(weeks, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	grid := lipgloss.JoinVertical(lipgloss.Left, append([]string{header, "", weekdayRow}, weeks...)...)
	return s.FilterBar.Render(grid)
}

func (v *CalendarView) renderDayCell(day, today time.Time, byDay map[string][]models.Task) string {
	s := v.styles
	label := fmt.Sprintf("%d", day.Day())

	tasks := byDay[day.Format(dueDateLayout)]
	if len(tasks) > 0 {
		label += "•"
	}

	overdue := false
	for _, t := range tasks {
		if t.Overdue(time.Now()) {
			overdue = true
			break
		}
	}

	style := s.Day
	switch {
	case day.Equal(v.selected):
		style = s.DaySelected
	case overdue:
		style = s.DayOverdue
	case day.Equal(today):
		style = s.DayToday
	case day.Month() != v.month.Month():
		style = s.DayOutside
	}

	return style.Render(label)
}

func (v *CalendarView) renderDayList() string {
	s := v.styles
	tasks := v.byDay()[v.selected.Format(dueDateLayout)]

	header := s.TitleMuted.Render(v.selected.Format("Mon, Jan 2"))
	if len(tasks) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, s.TitleMuted.Render("  nothing due"))
	}

	// Same priority-then-order ranking as the list view.
	tasks = todo.Sort(tasks)

	rows := []string{header}
	for _, t := range tasks {
		statusStyle := lipgloss.NewStyle().Foreground(styles.StatusColor(t.Status))
		line := "  " + statusStyle.Render("●") + " " + t.Title
		if t.Overdue(time.Now()) {
			line += " " + lipgloss.NewStyle().Foreground(styles.Current.Error).Render("(overdue)")
		}
		rows = append(rows, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *CalendarView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s day • %s week • %s month • %s today • %s refresh • %s views • %s back • %s quit",
			v.styles.HelpKey.Render("←→"),
			v.styles.HelpKey.Render("↑↓"),
			v.styles.HelpKey.Render("[ ]"),
			v.styles.HelpKey.Render("t"),
			v.styles.HelpKey.Render("r"),
			v.styles.HelpKey.Render("1-5"),
			v.styles.HelpKey.Render("esc"),
			v.styles.HelpKey.Render("q"),
		),
	)
}
