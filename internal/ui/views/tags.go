package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/todo"
	"github.com/taskdeck/taskdeck/internal/ui/keys"
	"github.com/taskdeck/taskdeck/internal/ui/styles"
)

type tagItem struct {
	tag models.Tag
}

func (i tagItem) Title() string       { return i.tag.Name }
func (i tagItem) Description() string { return i.tag.Color }
func (i tagItem) FilterValue() string { return i.tag.Name }

type tagDelegate struct {
	styles *styles.Styles
	width  int
}

func (d tagDelegate) Height() int                               { return 1 }
func (d tagDelegate) Spacing() int                              { return 1 }
func (d tagDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d tagDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	t, ok := item.(tagItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(t.tag.Color)).Render("●")
	line := swatch + " " + t.tag.Name + "  " + d.styles.TitleMuted.Render(t.tag.Color)

	itemStyle := d.styles.ListItem.Width(width)
	if selected {
		itemStyle = d.styles.ListSelected.Width(width)
	}

	fmt.Fprint(w, itemStyle.Render(line))
}

// TagListView manages the user's tags: create, rename, recolor, delete.
type TagListView struct {
	ctx   context.Context
	store *todo.TagStore

	list     list.Model
	delegate *tagDelegate
	styles   *styles.Styles
	keys     keys.KeyMap

	width  int
	height int
	loaded bool

	editing    bool
	editingNew bool
	editID     string
	nameInput  textinput.Model
	colorInput textinput.Model
	focusIdx   int // 0=name, 1=color, 2=save
	formErr    string

	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string
}

// NewTagListView creates the tag management view.
func NewTagListView(ctx context.Context, store *todo.TagStore) *TagListView {
	s := styles.NewStyles()

	nameInput := textinput.New()
	nameInput.Placeholder = "Tag name"
	nameInput.CharLimit = 50

	colorInput := textinput.New()
	colorInput.Placeholder = todo.DefaultTagColor
	colorInput.CharLimit = 7

	delegate := &tagDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Tags"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &TagListView{
		ctx:        ctx,
		store:      store,
		list:       l,
		delegate:   delegate,
		styles:     s,
		keys:       keys.DefaultKeyMap(),
		nameInput:  nameInput,
		colorInput: colorInput,
	}
}

func (v *TagListView) Init() tea.Cmd {
	return v.reload
}

type tagsReloadedMsg struct{}

func (v *TagListView) reload() tea.Msg {
	v.store.Load(v.ctx)
	return tagsReloadedMsg{}
}

func (v *TagListView) syncItems() {
	tags := v.store.Tags()
	items := make([]list.Item, len(tags))
	for i, t := range tags {
		items[i] = tagItem{tag: t}
	}
	v.list.SetItems(items)
}

func (v *TagListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-8)
		return v, nil

	case tagsReloadedMsg:
		v.loaded = true
		v.syncItems()
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.editing {
			return v.updateEditing(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit

		case key.Matches(msg, v.keys.Back):
			if v.store.LastError() != "" {
				v.store.Dismiss()
				return v, nil
			}
			return v, func() tea.Msg { return SwitchView{Target: TargetList} }

		case key.Matches(msg, v.keys.New):
			v.startForm(nil)
			return v, textinput.Blink

		case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(tagItem); ok {
				v.startForm(&item.tag)
				return v, textinput.Blink
			}
			return v, nil

		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(tagItem); ok {
				v.confirmingDelete = true
				v.deleteTargetID = item.tag.ID
				v.deleteTargetName = item.tag.Name
			}
			return v, nil

		case key.Matches(msg, v.keys.Refresh):
			return v, v.reload

		case msg.String() == "1":
			return v, func() tea.Msg { return SwitchView{Target: TargetList} }
		case msg.String() == "2":
			return v, func() tea.Msg { return SwitchView{Target: TargetKanban} }
		case msg.String() == "3":
			return v, func() tea.Msg { return SwitchView{Target: TargetCalendar} }
		case msg.String() == "5":
			return v, func() tea.Msg { return SwitchView{Target: TargetChat} }
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *TagListView) startForm(tag *models.Tag) {
	v.editing = true
	v.editingNew = tag == nil
	v.focusIdx = 0
	v.formErr = ""
	if tag == nil {
		v.editID = ""
		v.nameInput.Reset()
		v.colorInput.Reset()
	} else {
		v.editID = tag.ID
		v.nameInput.SetValue(tag.Name)
		v.colorInput.SetValue(tag.Color)
	}
	v.updateFocus()
}

func (v *TagListView) updateFocus() {
	v.nameInput.Blur()
	v.colorInput.Blur()
	switch v.focusIdx {
	case 0:
		v.nameInput.Focus()
	case 1:
		v.colorInput.Focus()
	}
}

func (v *TagListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case key.Matches(msg, v.keys.Save):
		return v, v.save()

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + 2) % 3
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 3
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx < 2 {
			v.focusIdx++
			v.updateFocus()
			return v, nil
		}
		return v, v.save()
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.nameInput, cmd = v.nameInput.Update(msg)
	case 1:
		v.colorInput, cmd = v.colorInput.Update(msg)
	}
	return v, cmd
}

func (v *TagListView) save() tea.Cmd {
	name := strings.TrimSpace(v.nameInput.Value())
	if name == "" {
		v.formErr = "name is required"
		return nil
	}
	color := strings.TrimSpace(v.colorInput.Value())

	v.editing = false
	v.formErr = ""

	if v.editingNew {
		return func() tea.Msg {
			v.store.Create(v.ctx, name, color)
			return tagsReloadedMsg{}
		}
	}

	id := v.editID
	var colorPtr *string
	if color != "" {
		colorPtr = &color
	}
	return func() tea.Msg {
		v.store.Update(v.ctx, id, &name, colorPtr)
		return tagsReloadedMsg{}
	}
}

func (v *TagListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		id := v.deleteTargetID
		return v, func() tea.Msg {
			v.store.Delete(v.ctx, id)
			return tagsReloadedMsg{}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TagListView) View() string {
	s := v.styles

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.editing {
		return v.renderForm()
	}

	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Tags") + "  " + v.renderTabs())
	b.WriteString("\n\n")

	if banner := v.store.LastError(); banner != "" {
		b.WriteString(s.ErrorBanner.Render(banner))
		b.WriteString("\n\n")
	}

	if len(v.list.Items()) == 0 {
		b.WriteString(s.TitleMuted.Render("No tags. Press 'n' to create one."))
	} else {
		b.WriteString(v.list.View())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TagListView) renderTabs() string {
	s := v.styles
	labels := []string{"1 list", "2 board", "3 calendar", "4 tags", "5 chat"}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == 3 {
			parts[i] = s.TabActive.Render(l)
		} else {
			parts[i] = s.Tab.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (v *TagListView) renderForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Tag"
	if !v.editingNew {
		formTitle = "Edit Tag"
	}

	nameStyle := s.Input
	colorStyle := s.Input
	btnStyle := s.Button
	switch v.focusIdx {
	case 0:
		nameStyle = s.InputFocused
	case 1:
		colorStyle = s.InputFocused
	case 2:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 40)

	rows := []string{
		s.Title.Render(formTitle),
		"",
		"Name:",
		nameStyle.Width(inputWidth).Render(v.nameInput.View()),
		"",
		"Color (hex, optional):",
		colorStyle.Width(12).Render(v.colorInput.View()),
		"",
		btnStyle.Render(" Save "),
	}
	if v.formErr != "" {
		rows = append(rows, "", s.ErrorBanner.Render(v.formErr))
	}
	rows = append(rows, "", s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"))

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TagListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Tag?"),
		"",
		s.TitleMuted.Render(v.deleteTargetName),
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

func (v *TagListView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s edit • %s new • %s del • %s refresh • %s views • %s back • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("r"),
			v.styles.HelpKey.Render("1-5"),
			v.styles.HelpKey.Render("esc"),
			v.styles.HelpKey.Render("q"),
		),
	)
}
