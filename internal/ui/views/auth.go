package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/session"
	"github.com/taskdeck/taskdeck/internal/ui/keys"
	"github.com/taskdeck/taskdeck/internal/ui/styles"
)

// AuthView is the sign-in / sign-up form shown while unauthenticated.
type AuthView struct {
	ctx     context.Context
	session *session.Session
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	signup   bool
	busy     bool
	errText  string
	email    textinput.Model
	password textinput.Model
	name     textinput.Model
	focusIdx int // email, password, (name), submit
}

// NewAuthView creates the form.
func NewAuthView(ctx context.Context, sess *session.Session) *AuthView {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 100
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword

	name := textinput.New()
	name.Placeholder = "Display name"
	name.CharLimit = 100

	return &AuthView{
		ctx:      ctx,
		session:  sess,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		email:    email,
		password: password,
		name:     name,
	}
}

func (v *AuthView) Init() tea.Cmd {
	return textinput.Blink
}

type authDoneMsg struct {
	err error
}

// fieldCount is the number of focusable rows including the submit button.
func (v *AuthView) fieldCount() int {
	if v.signup {
		return 4
	}
	return 3
}

func (v *AuthView) submitIdx() int {
	return v.fieldCount() - 1
}

func (v *AuthView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case authDoneMsg:
		v.busy = false
		if msg.err != nil {
			v.errText = msg.err.Error()
			return v, nil
		}
		return v, func() tea.Msg { return SignedIn{} }

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}

		switch {
		case msg.String() == "ctrl+c":
			return v, tea.Quit

		case msg.String() == "ctrl+t":
			v.signup = !v.signup
			v.errText = ""
			if v.focusIdx >= v.fieldCount() {
				v.focusIdx = v.fieldCount() - 1
			}
			v.updateFocus()
			return v, nil

		case msg.String() == "shift+tab":
			v.focusIdx = (v.focusIdx + v.fieldCount() - 1) % v.fieldCount()
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Tab):
			v.focusIdx = (v.focusIdx + 1) % v.fieldCount()
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Save):
			return v, v.submit()

		case key.Matches(msg, v.keys.Enter):
			if v.focusIdx == v.submitIdx() {
				return v, v.submit()
			}
			v.focusIdx++
			v.updateFocus()
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.email, cmd = v.email.Update(msg)
	case 1:
		v.password, cmd = v.password.Update(msg)
	case 2:
		if v.signup {
			v.name, cmd = v.name.Update(msg)
		}
	}
	return v, cmd
}

func (v *AuthView) updateFocus() {
	v.email.Blur()
	v.password.Blur()
	v.name.Blur()
	switch v.focusIdx {
	case 0:
		v.email.Focus()
	case 1:
		v.password.Focus()
	case 2:
		if v.signup {
			v.name.Focus()
		}
	}
}

func (v *AuthView) submit() tea.Cmd {
	email := strings.TrimSpace(v.email.Value())
	password := v.password.Value()
	name := strings.TrimSpace(v.name.Value())

	if email == "" || password == "" {
		v.errText = "email and password are required"
		return nil
	}
	if v.signup && name == "" {
		v.errText = "name is required"
		return nil
	}

	v.busy = true
	v.errText = ""
	signup := v.signup
	return func() tea.Msg {
		var err error
		if signup {
			err = v.session.Signup(v.ctx, email, password, name)
		} else {
			err = v.session.Login(v.ctx, email, password)
		}
		return authDoneMsg{err: err}
	}
}

func (v *AuthView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 40)

	formTitle := "Sign In"
	switchHint := "Ctrl+T: create an account"
	if v.signup {
		formTitle = "Create Account"
		switchHint = "Ctrl+T: back to sign in"
	}

	emailStyle := s.Input
	passwordStyle := s.Input
	nameStyle := s.Input
	btnStyle := s.Button
	switch v.focusIdx {
	case 0:
		emailStyle = s.InputFocused
	case 1:
		passwordStyle = s.InputFocused
	case 2:
		if v.signup {
			nameStyle = s.InputFocused
		}
	}
	if v.focusIdx == v.submitIdx() {
		btnStyle = s.ButtonFocused
	}

	btnLabel := " Sign In "
	if v.signup {
		btnLabel = " Sign Up "
	}
	if v.busy {
		btnLabel = " ... "
	}

	rows := []string{
		s.Title.Render("taskdeck"),
		s.TitleMuted.Render(formTitle),
		"",
		"Email:",
		emailStyle.Width(inputWidth).Render(v.email.View()),
		"",
		"Password:",
		passwordStyle.Width(inputWidth).Render(v.password.View()),
	}
	if v.signup {
		rows = append(rows,
			"",
			"Name:",
			nameStyle.Width(inputWidth).Render(v.name.View()),
		)
	}
	rows = append(rows, "", btnStyle.Render(btnLabel))
	if v.errText != "" {
		rows = append(rows, "", s.ErrorBanner.Width(inputWidth).Render(v.errText))
	}
	rows = append(rows, "", s.TitleMuted.Render("Tab: next • ↵: submit • "+switchHint))

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}
