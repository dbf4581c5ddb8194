package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/chat"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/ui/keys"
	"github.com/taskdeck/taskdeck/internal/ui/styles"
)

// ChatView is the assistant conversation: scrollback viewport on top, input
// below. The input is disabled while a reply is in flight.
type ChatView struct {
	ctx    context.Context
	store  *chat.Store
	styles *styles.Styles
	keys   keys.KeyMap

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model

	width  int
	height int
	ready  bool
	loaded bool

	confirmClear bool
}

// NewChatView creates the conversation view.
func NewChatView(ctx context.Context, store *chat.Store) *ChatView {
	s := styles.NewStyles()

	input := textarea.New()
	input.Placeholder = "Ask the assistant..."
	input.CharLimit = 2000
	input.SetHeight(2)
	input.ShowLineNumbers = false
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Current.Accent)

	return &ChatView{
		ctx:     ctx,
		store:   store,
		styles:  s,
		keys:    keys.DefaultKeyMap(),
		input:   input,
		spinner: sp,
	}
}

func (v *ChatView) Init() tea.Cmd {
	return tea.Batch(v.loadHistory, v.spinner.Tick, textarea.Blink)
}

type chatRefreshedMsg struct{}

func (v *ChatView) loadHistory() tea.Msg {
	v.store.LoadHistory(v.ctx)
	return chatRefreshedMsg{}
}

func (v *ChatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		vpHeight := max(msg.Height-10, 4)
		if !v.ready {
			v.viewport = viewport.New(contentWidth-4, vpHeight)
			v.ready = true
		} else {
			v.viewport.Width = contentWidth - 4
			v.viewport.Height = vpHeight
		}
		v.input.SetWidth(contentWidth - 4)
		v.refreshViewport()
		return v, nil

	case chatRefreshedMsg:
		v.loaded = true
		v.refreshViewport()
		v.viewport.GotoBottom()
		return v, nil

	case spinner.TickMsg:
		// The spinner ticks continuously; while a send is in flight the
		// ticks also repaint the optimistic message.
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		if v.store.Sending() {
			v.refreshViewport()
			v.viewport.GotoBottom()
		}
		return v, cmd

	case tea.KeyMsg:
		if v.confirmClear {
			switch msg.String() {
			case "y", "Y":
				v.confirmClear = false
				return v, func() tea.Msg {
					v.store.Clear(v.ctx)
					return chatRefreshedMsg{}
				}
			case "n", "N", "esc":
				v.confirmClear = false
				return v, nil
			}
			return v, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return v, tea.Quit

		case "esc":
			return v, func() tea.Msg { return SwitchView{Target: TargetList} }

		case "ctrl+x":
			v.confirmClear = true
			return v, nil

		case "enter":
			return v, v.send()

		case "pgup", "pgdown":
			var cmd tea.Cmd
			v.viewport, cmd = v.viewport.Update(msg)
			return v, cmd
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *ChatView) send() tea.Cmd {
	if v.store.Sending() {
		return nil
	}
	content := strings.TrimSpace(v.input.Value())
	if content == "" {
		return nil
	}
	v.input.Reset()
	return func() tea.Msg {
		v.store.Send(v.ctx, content)
		return chatRefreshedMsg{}
	}
}

func (v *ChatView) refreshViewport() {
	if !v.ready {
		return
	}
	v.viewport.SetContent(v.renderMessages())
}

func (v *ChatView) renderMessages() string {
	s := v.styles
	width := max(v.viewport.Width-2, 20)

	var blocks []string
	for _, m := range v.store.Messages() {
		label := s.ChatAssistant.Render("Assistant")
		if m.Role == models.RoleUser {
			label = s.ChatUser.Render("You")
		}
		stamp := s.TitleMuted.Render(m.Timestamp.Format("3:04 PM"))
		body := lipgloss.NewStyle().Width(width).Render(m.Content)
		blocks = append(blocks, label+" "+stamp+"\n"+body)
	}

	if v.store.Sending() {
		blocks = append(blocks, v.spinner.View()+s.TitleMuted.Render(" thinking..."))
	}

	return strings.Join(blocks, "\n\n")
}

func (v *ChatView) View() string {
	s := v.styles

	if v.confirmClear {
		return v.renderClearConfirm()
	}

	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Chat") + "  " + v.renderTabs())
	b.WriteString("\n\n")

	if banner := v.store.LastError(); banner != "" {
		b.WriteString(s.ErrorBanner.Render(banner))
		b.WriteString("\n\n")
	}

	b.WriteString(v.viewport.View())
	b.WriteString("\n\n")

	inputStyle := s.InputFocused
	if v.store.Sending() {
		inputStyle = s.Input
	}
	b.WriteString(inputStyle.Render(v.input.View()))

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *ChatView) renderTabs() string {
	s := v.styles
	labels := []string{"1 list", "2 board", "3 calendar", "4 tags", "5 chat"}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == 4 {
			parts[i] = s.TabActive.Render(l)
		} else {
			parts[i] = s.Tab.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (v *ChatView) renderClearConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Clear Conversation?"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ChatView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s send • %s clear • %s scroll • %s back",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("ctrl+x"),
			v.styles.HelpKey.Render("pgup/pgdn"),
			v.styles.HelpKey.Render("esc"),
		),
	)
}
