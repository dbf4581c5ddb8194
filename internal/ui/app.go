// Package ui holds the root Bubble Tea model: the screen gate between the
// auth form and the main application, and the switcher across the main views.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/chat"
	"github.com/taskdeck/taskdeck/internal/session"
	"github.com/taskdeck/taskdeck/internal/state"
	"github.com/taskdeck/taskdeck/internal/todo"
	"github.com/taskdeck/taskdeck/internal/ui/styles"
	"github.com/taskdeck/taskdeck/internal/ui/views"
)

// Screen is the top-level gate
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenAuth
	ScreenMain
)

type App struct {
	ctx     context.Context
	client  *api.Client
	session *session.Session
	state   *state.DB

	tasks *todo.Store
	tags  *todo.TagStore
	chat  *chat.Store

	screen  Screen
	target  views.Target
	spinner spinner.Model
	styles  *styles.Styles

	authView     *views.AuthView
	listView     *views.TaskListView
	kanbanView   *views.KanbanView
	calendarView *views.CalendarView
	tagsView     *views.TagListView
	chatView     *views.ChatView
	chatInited   bool

	width  int
	height int
}

// NewApp creates the root model. ctx is cancelled by main once the program
// exits, so no in-flight call can mutate state after teardown.
func NewApp(ctx context.Context, client *api.Client, sess *session.Session, st *state.DB) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Current.Primary)

	return &App{
		ctx:     ctx,
		client:  client,
		session: sess,
		state:   st,
		tasks:   todo.NewStore(client),
		tags:    todo.NewTagStore(client),
		screen:  ScreenLoading,
		spinner: sp,
		styles:  styles.NewStyles(),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.restore)
}

type sessionRestoredMsg struct{}

func (a *App) restore() tea.Msg {
	a.session.Restore(a.ctx)
	return sessionRestoredMsg{}
}

// enterMain builds the signed-in views and opens the last active one.
func (a *App) enterMain() tea.Cmd {
	user := a.session.User()
	if user == nil {
		return a.enterAuth()
	}

	a.chat = chat.NewStore(a.client, user.ID)
	a.chatInited = false

	a.listView = views.NewTaskListView(a.ctx, a.tasks, a.tags)
	a.kanbanView = views.NewKanbanView(a.ctx, a.tasks)
	a.calendarView = views.NewCalendarView(a.ctx, a.tasks)
	a.tagsView = views.NewTagListView(a.ctx, a.tags)
	a.chatView = views.NewChatView(a.ctx, a.chat)

	last, _ := a.state.GetSetting(state.KeyLastView)
	a.target = views.TargetFromString(last)
	a.screen = ScreenMain

	return tea.Batch(
		a.activateTarget(),
		a.resize(),
	)
}

func (a *App) enterAuth() tea.Cmd {
	a.screen = ScreenAuth
	a.authView = views.NewAuthView(a.ctx, a.session)
	return tea.Batch(a.authView.Init(), a.resize())
}

// resize replays the window size so freshly created views lay themselves out.
func (a *App) resize() tea.Cmd {
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: a.width, Height: a.height}
	}
}

// activateTarget initializes the view being switched to. The chat history is
// loaded once per sign-in; every other view refetches on entry.
func (a *App) activateTarget() tea.Cmd {
	switch a.target {
	case views.TargetKanban:
		return a.kanbanView.Init()
	case views.TargetCalendar:
		return a.calendarView.Init()
	case views.TargetTags:
		return a.tagsView.Init()
	case views.TargetChat:
		if a.chatInited {
			return nil
		}
		a.chatInited = true
		return a.chatView.Init()
	default:
		return a.listView.Init()
	}
}

// active returns the view currently receiving key input.
func (a *App) active() tea.Model {
	if a.screen == ScreenAuth {
		return a.authView
	}
	switch a.target {
	case views.TargetKanban:
		return a.kanbanView
	case views.TargetCalendar:
		return a.calendarView
	case views.TargetTags:
		return a.tagsView
	case views.TargetChat:
		return a.chatView
	default:
		return a.listView
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.broadcast(msg)

	case sessionRestoredMsg:
		if a.session.Status() == session.StatusAuthenticated {
			return a, a.enterMain()
		}
		return a, a.enterAuth()

	case views.SignedIn:
		return a, a.enterMain()

	case views.SignedOut:
		a.session.Logout()
		return a, a.enterAuth()

	case views.SwitchView:
		a.target = msg.Target
		a.state.SetSetting(state.KeyLastView, a.target.String())
		return a, tea.Batch(a.activateTarget(), a.resize())

	case spinner.TickMsg:
		if a.screen == ScreenLoading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, a.broadcast(msg)

	case tea.KeyMsg:
		if a.screen == ScreenLoading {
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			return a, nil
		}
		view := a.active()
		if view == nil {
			return a, nil
		}
		_, cmd := view.Update(msg)
		return a, a.checkEviction(cmd)
	}

	// Everything else (refresh completions and the like) goes to every
	// created view; each view ignores messages it does not own.
	return a, a.checkEviction(a.broadcast(msg))
}

// broadcast forwards a message to every live view and batches their commands.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	forward := func(m tea.Model) {
		if m == nil {
			return
		}
		if _, cmd := m.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if a.screen == ScreenAuth {
		forward(a.authView)
		return tea.Batch(cmds...)
	}
	if a.screen == ScreenMain {
		forward(a.listView)
		forward(a.kanbanView)
		forward(a.calendarView)
		forward(a.tagsView)
		forward(a.chatView)
	}
	return tea.Batch(cmds...)
}

// checkEviction drops back to the auth screen when any 401 has evicted the
// session out from under the main views.
func (a *App) checkEviction(cmd tea.Cmd) tea.Cmd {
	if a.screen == ScreenMain && a.session.Status() == session.StatusUnauthenticated {
		return tea.Batch(cmd, a.enterAuth())
	}
	return cmd
}

func (a *App) View() string {
	switch a.screen {
	case ScreenLoading:
		content := a.spinner.View() + " " + a.styles.TitleMuted.Render("restoring session...")
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
	case ScreenAuth:
		if a.authView != nil {
			return a.authView.View()
		}
		return ""
	default:
		if view := a.active(); view != nil {
			return view.View()
		}
		return ""
	}
}
