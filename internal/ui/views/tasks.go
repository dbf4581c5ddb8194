package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/todo"
	"github.com/taskdeck/taskdeck/internal/ui/keys"
	"github.com/taskdeck/taskdeck/internal/ui/styles"
)

const dueDateLayout = "2006-01-02"

// FocusArea represents which part of the UI has focus
type FocusArea int

const (
	FocusSearchInput FocusArea = iota
	FocusStatusFilter
	FocusPriorityFilter
	FocusCategoryFilter
	FocusTaskList
)

// TaskListView is the filterable, sortable task list with inline create and
// edit forms.
type TaskListView struct {
	ctx    context.Context
	store  *todo.Store
	tags   *todo.TagStore
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int
	loaded bool

	// UI state
	focus       FocusArea
	cursor      int
	scrollY     int
	filter      todo.Filter
	searchInput textinput.Model

	// Dropdown state (status/priority/category filters)
	dropdownOpen bool
	dropdownFor  FocusArea
	dropCursor   int

	// Task creation/editing
	editing         bool
	editingNew      bool
	editID          string
	editTitle       textinput.Model
	editDesc        textarea.Model
	editDue         textinput.Model
	editPriorityIdx int
	editFocusIdx    int // 0=title, 1=desc, 2=due, 3=priority, 4=tags, 5=save
	editTags        []string
	editTagCursor   int
	formErr         string

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

// NewTaskListView creates the task list view.
func NewTaskListView(ctx context.Context, store *todo.Store, tags *todo.TagStore) *TaskListView {
	s := styles.NewStyles()

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	editTitle := textinput.New()
	editTitle.Placeholder = "Task title"
	editTitle.CharLimit = 200

	editDesc := textarea.New()
	editDesc.Placeholder = "Description"
	editDesc.CharLimit = 1000
	editDesc.SetWidth(50)
	editDesc.SetHeight(3)
	editDesc.ShowLineNumbers = false

	editDue := textinput.New()
	editDue.Placeholder = dueDateLayout
	editDue.CharLimit = 10

	return &TaskListView{
		ctx:         ctx,
		store:       store,
		tags:        tags,
		styles:      s,
		keys:        keys.DefaultKeyMap(),
		focus:       FocusTaskList,
		filter:      todo.NewFilter(),
		searchInput: search,
		editTitle:   editTitle,
		editDesc:    editDesc,
		editDue:     editDue,
	}
}

// Init triggers the initial task and tag fetch.
func (v *TaskListView) Init() tea.Cmd {
	return tea.Batch(v.refreshTasks, v.refreshTags)
}

type tasksRefreshedMsg struct{}

type tagsRefreshedMsg struct{}

func (v *TaskListView) refreshTasks() tea.Msg {
	v.store.Load(v.ctx)
	return tasksRefreshedMsg{}
}

func (v *TaskListView) refreshTags() tea.Msg {
	v.tags.Load(v.ctx)
	return tagsRefreshedMsg{}
}

// visible returns the filtered, sorted tasks the list renders.
func (v *TaskListView) visible() []models.Task {
	return todo.Visible(v.store.Tasks(), v.filter)
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.editDesc.SetWidth(clamp(contentWidth-10, 20, 50))
		return v, nil

	case tasksRefreshedMsg:
		v.loaded = true
		if n := len(v.visible()); v.cursor >= n {
			v.cursor = max(0, n-1)
		}
		return v, nil

	case tagsRefreshedMsg:
		return v, nil

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.editing {
			return v.updateEditing(msg)
		}

		if v.dropdownOpen {
			return v.updateDropdown(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle search input typing first - don't process hotkeys while typing
	if v.focus == FocusSearchInput {
		switch {
		case key.Matches(msg, v.keys.Back):
			v.searchInput.Blur()
			v.focus = FocusTaskList
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			v.searchInput.Blur()
			v.focus = FocusTaskList
			v.filter.Search = v.searchInput.Value()
			return v, nil
		default:
			var cmd tea.Cmd
			v.searchInput, cmd = v.searchInput.Update(msg)
			v.filter.Search = v.searchInput.Value()
			v.cursor = 0
			v.scrollY = 0
			return v, cmd
		}
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		if v.store.LastError() != "" {
			v.store.Dismiss()
			return v, nil
		}
		if !v.filter.IsDefault() {
			v.filter = todo.NewFilter()
			v.searchInput.Reset()
			v.cursor = 0
			v.scrollY = 0
		}
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.cycleFocus(1)
		return v, nil

	case msg.String() == "shift+tab":
		v.cycleFocus(-1)
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.focus == FocusTaskList && v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.focus == FocusTaskList && v.cursor < len(v.visible())-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		switch v.focus {
		case FocusStatusFilter, FocusPriorityFilter, FocusCategoryFilter:
			v.dropdownOpen = true
			v.dropdownFor = v.focus
			v.dropCursor = 0
			return v, nil
		case FocusTaskList:
			if tasks := v.visible(); len(tasks) > 0 {
				v.startEditTask(tasks[v.cursor])
				return v, textinput.Blink
			}
		}
		return v, nil

	case key.Matches(msg, v.keys.Toggle):
		if tasks := v.visible(); v.focus == FocusTaskList && len(tasks) > 0 {
			id := tasks[v.cursor].ID
			return v, func() tea.Msg {
				v.store.Toggle(v.ctx, id)
				return tasksRefreshedMsg{}
			}
		}
		return v, nil

	case key.Matches(msg, v.keys.Edit):
		if tasks := v.visible(); v.focus == FocusTaskList && len(tasks) > 0 {
			v.startEditTask(tasks[v.cursor])
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Delete):
		if tasks := v.visible(); v.focus == FocusTaskList && len(tasks) > 0 {
			v.confirmingDelete = true
			v.deleteTargetID = tasks[v.cursor].ID
			v.deleteTargetName = tasks[v.cursor].Title
			return v, nil
		}
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.focus = FocusSearchInput
		v.searchInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Filter):
		v.focus = FocusStatusFilter
		v.dropdownOpen = true
		v.dropdownFor = FocusStatusFilter
		v.dropCursor = 0
		return v, nil

	case key.Matches(msg, v.keys.Refresh):
		return v, tea.Batch(v.refreshTasks, v.refreshTags)

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil

	case msg.String() == "2":
		return v, func() tea.Msg { return SwitchView{Target: TargetKanban} }
	case msg.String() == "3":
		return v, func() tea.Msg { return SwitchView{Target: TargetCalendar} }
	case msg.String() == "4":
		return v, func() tea.Msg { return SwitchView{Target: TargetTags} }
	case msg.String() == "5":
		return v, func() tea.Msg { return SwitchView{Target: TargetChat} }

	case msg.String() == "ctrl+d":
		return v, func() tea.Msg { return SignedOut{} }
	}

	return v, nil
}

// dropdownOptions returns the options for the open dropdown; index 0 is
// always the "all" sentinel.
func (v *TaskListView) dropdownOptions() []string {
	switch v.dropdownFor {
	case FocusStatusFilter:
		opts := []string{todo.All}
		for _, s := range models.Statuses {
			opts = append(opts, string(s))
		}
		return opts
	case FocusPriorityFilter:
		opts := []string{todo.All}
		for _, p := range models.Priorities {
			opts = append(opts, string(p))
		}
		return opts
	default:
		return append([]string{todo.All}, todo.Categories(v.store.Tasks())...)
	}
}

func (v *TaskListView) updateDropdown(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := v.dropdownOptions()

	switch {
	case key.Matches(msg, v.keys.Back):
		v.dropdownOpen = false
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.dropCursor > 0 {
			v.dropCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.dropCursor < len(opts)-1 {
			v.dropCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		choice := opts[v.dropCursor]
		switch v.dropdownFor {
		case FocusStatusFilter:
			v.filter.Status = choice
		case FocusPriorityFilter:
			v.filter.Priority = choice
		case FocusCategoryFilter:
			v.filter.Category = choice
		}
		v.dropdownOpen = false
		v.cursor = 0
		v.scrollY = 0
		return v, nil
	}

	return v, nil
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		id := v.deleteTargetID
		return v, func() tea.Msg {
			v.store.Delete(v.ctx, id)
			return tasksRefreshedMsg{}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case key.Matches(msg, v.keys.Save):
		return v, v.saveTask()

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % 6 // 0-5: title, desc, due, priority, tags, save
		v.updateEditFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.editFocusIdx = (v.editFocusIdx + 5) % 6
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		// Enter on title or due moves to next field
		if v.editFocusIdx == 0 || v.editFocusIdx == 2 || v.editFocusIdx == 3 {
			v.editFocusIdx++
			v.updateEditFocus()
			return v, nil
		}
		// Enter on tags toggles the selected tag
		if v.editFocusIdx == 4 {
			v.toggleEditTag()
			return v, nil
		}
		// Enter on save button saves
		if v.editFocusIdx == 5 {
			return v, v.saveTask()
		}
		// For the description textarea, let enter pass through for newlines

	case msg.String() == " ":
		// Space also toggles tags when in tag selector
		if v.editFocusIdx == 4 {
			v.toggleEditTag()
			return v, nil
		}

	case msg.String() == "left":
		if v.editFocusIdx == 3 {
			v.editPriorityIdx = (v.editPriorityIdx + len(models.Priorities) - 1) % len(models.Priorities)
			return v, nil
		}

	case msg.String() == "right":
		if v.editFocusIdx == 3 {
			v.editPriorityIdx = (v.editPriorityIdx + 1) % len(models.Priorities)
			return v, nil
		}

	case key.Matches(msg, v.keys.Up):
		if v.editFocusIdx == 4 && v.editTagCursor > 0 {
			v.editTagCursor--
			return v, nil
		}

	case key.Matches(msg, v.keys.Down):
		if v.editFocusIdx == 4 && v.editTagCursor < len(v.tags.Tags())-1 {
			v.editTagCursor++
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case 0:
		v.editTitle, cmd = v.editTitle.Update(msg)
	case 1:
		v.editDesc, cmd = v.editDesc.Update(msg)
	case 2:
		v.editDue, cmd = v.editDue.Update(msg)
	}
	return v, cmd
}

// toggleEditTag toggles the currently selected tag in the edit form
func (v *TaskListView) toggleEditTag() {
	tags := v.tags.Tags()
	if v.editTagCursor >= len(tags) {
		return
	}
	tagID := tags[v.editTagCursor].ID

	for i, id := range v.editTags {
		if id == tagID {
			v.editTags = append(v.editTags[:i], v.editTags[i+1:]...)
			return
		}
	}
	v.editTags = append(v.editTags, tagID)
}

func (v *TaskListView) cycleFocus(dir int) {
	v.searchInput.Blur()

	v.focus = FocusArea((int(v.focus) + dir + 5) % 5)

	if v.focus == FocusSearchInput {
		v.searchInput.Focus()
	}
}

func (v *TaskListView) ensureVisible() {
	// Each task item is 2 lines + 1 margin = 3 lines
	availableHeight := v.height - 12
	if availableHeight < 3 {
		availableHeight = 3
	}
	visibleItems := availableHeight / 3
	if visibleItems < 1 {
		visibleItems = 1
	}

	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

func (v *TaskListView) startNewTask() {
	v.editing = true
	v.editingNew = true
	v.editID = ""
	v.editFocusIdx = 0
	v.editTagCursor = 0
	v.editTags = nil
	v.formErr = ""
	v.editTitle.Reset()
	v.editDesc.Reset()
	v.editDue.Reset()
	v.editPriorityIdx = 1 // medium
	v.updateEditFocus()
}

func (v *TaskListView) startEditTask(task models.Task) {
	v.editing = true
	v.editingNew = false
	v.editID = task.ID
	v.editFocusIdx = 0
	v.editTagCursor = 0
	v.formErr = ""
	v.editTags = make([]string, len(task.Tags))
	for i, t := range task.Tags {
		v.editTags[i] = t.ID
	}
	v.editTitle.SetValue(task.Title)
	v.editDesc.SetValue(task.Description)
	if task.DueDate != nil {
		v.editDue.SetValue(task.DueDate.Format(dueDateLayout))
	} else {
		v.editDue.Reset()
	}
	v.editPriorityIdx = 1
	for i, p := range models.Priorities {
		if p == task.Priority {
			v.editPriorityIdx = i
			break
		}
	}
	v.updateEditFocus()
}

func (v *TaskListView) updateEditFocus() {
	v.editTitle.Blur()
	v.editDesc.Blur()
	v.editDue.Blur()

	switch v.editFocusIdx {
	case 0:
		v.editTitle.Focus()
	case 1:
		v.editDesc.Focus()
	case 2:
		v.editDue.Focus()
	}
}

func (v *TaskListView) saveTask() tea.Cmd {
	title := strings.TrimSpace(v.editTitle.Value())
	if title == "" {
		v.formErr = "title is required"
		return nil
	}

	var due *time.Time
	if raw := strings.TrimSpace(v.editDue.Value()); raw != "" {
		parsed, err := time.Parse(dueDateLayout, raw)
		if err != nil {
			v.formErr = "due date must be " + dueDateLayout
			return nil
		}
		due = &parsed
	}

	desc := strings.TrimSpace(v.editDesc.Value())
	priority := models.Priorities[v.editPriorityIdx]
	tagIDs := make([]string, len(v.editTags))
	copy(tagIDs, v.editTags)

	v.editing = false
	v.formErr = ""

	if v.editingNew {
		draft := todo.Draft{
			Title:       title,
			Description: desc,
			Priority:    priority,
			DueDate:     due,
			TagIDs:      tagIDs,
		}
		return func() tea.Msg {
			v.store.Create(v.ctx, draft)
			return tasksRefreshedMsg{}
		}
	}

	id := v.editID
	patch := todo.Patch{
		Title:       &title,
		Description: &desc,
		Priority:    &priority,
		DueDate:     due,
		TagIDs:      &tagIDs,
	}
	return func() tea.Msg {
		v.store.Update(v.ctx, id, patch)
		return tasksRefreshedMsg{}
	}
}

// View renders the view
func (v *TaskListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.editing {
		return v.renderEditForm()
	}

	var b strings.Builder

	b.WriteString(v.renderHeader())
	b.WriteString("\n")
	b.WriteString(v.renderStatsBar())
	b.WriteString("\n\n")

	if banner := v.store.LastError(); banner != "" {
		b.WriteString(v.styles.ErrorBanner.Render(banner))
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderTaskList())

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	isNarrow := contentWidth < 70

	searchStyle := s.Input
	if v.focus == FocusSearchInput {
		searchStyle = s.InputFocused
	}
	searchWidth := clamp(contentWidth-40, 10, 30)
	searchBox := searchStyle.Width(searchWidth).Render(v.searchInput.View())

	filterBtn := func(focus FocusArea, label, value string) string {
		style := s.Button
		if v.focus == focus {
			style = s.ButtonFocused
		}
		if isNarrow {
			return style.Render(value + " ▼")
		}
		return style.Render(label + ": " + value + " ▼")
	}

	statusBtn := filterBtn(FocusStatusFilter, "Status", v.filter.Status)
	priorityBtn := filterBtn(FocusPriorityFilter, "Priority", v.filter.Priority)
	categoryBtn := filterBtn(FocusCategoryFilter, "Category", v.filter.Category)

	title := s.Title.Render("Tasks") + "  " + v.renderTabs()

	var header string
	if isNarrow {
		header = lipgloss.JoinVertical(lipgloss.Left,
			searchBox,
			lipgloss.JoinHorizontal(lipgloss.Center, statusBtn, " ", priorityBtn, " ", categoryBtn),
		)
	} else {
		header = lipgloss.JoinHorizontal(lipgloss.Center,
			searchBox, "  ", statusBtn, " ", priorityBtn, " ", categoryBtn,
		)
	}

	dropdown := ""
	if v.dropdownOpen {
		dropdown = "\n" + v.renderDropdown()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, header+dropdown)
}

func (v *TaskListView) renderTabs() string {
	s := v.styles
	labels := []string{"1 list", "2 board", "3 calendar", "4 tags", "5 chat"}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == 0 {
			parts[i] = s.TabActive.Render(l)
		} else {
			parts[i] = s.Tab.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (v *TaskListView) renderStatsBar() string {
	s := v.styles
	stats := todo.Aggregate(v.store.Tasks(), time.Now())

	parts := []string{
		fmt.Sprintf("%d tasks", stats.Total),
		fmt.Sprintf("%d done (%d%%)", stats.Completed, stats.CompletionRate),
		fmt.Sprintf("%d in progress", stats.InProgress),
	}
	if stats.Overdue > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(styles.Current.Error).Render(
			fmt.Sprintf("%d overdue", stats.Overdue)))
	}
	if stats.HighPriority > 0 {
		parts = append(parts, fmt.Sprintf("%d high priority", stats.HighPriority))
	}

	return s.StatusBar.Render(strings.Join(parts, " • "))
}

func (v *TaskListView) renderDropdown() string {
	s := v.styles
	opts := v.dropdownOptions()

	var items []string
	for i, opt := range opts {
		itemStyle := s.ListItem
		if v.dropCursor == i {
			itemStyle = s.ListSelected
		}
		items = append(items, itemStyle.Render(opt))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, items...)
	return s.FilterBar.Render(content)
}

func (v *TaskListView) renderTaskList() string {
	s := v.styles
	tasks := v.visible()

	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	if len(tasks) == 0 {
		if v.filter.IsDefault() {
			return s.TitleMuted.Render("No tasks. Press 'n' to create one.")
		}
		return s.TitleMuted.Render("No tasks match the current filters. Esc clears them.")
	}

	// Each task item is 2 lines (title + meta) + 1 margin = 3 lines
	availableHeight := v.height - 12
	if availableHeight < 3 {
		availableHeight = 3
	}
	visibleItems := availableHeight / 3
	if visibleItems < 1 {
		visibleItems = 1
	}

	var items []string
	endIdx := min(v.scrollY+visibleItems, len(tasks))

	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(tasks[i], i == v.cursor && v.focus == FocusTaskList))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderTaskItem(task models.Task, selected bool) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	check := "[ ]"
	switch task.Status {
	case models.StatusDone:
		check = "[x]"
	case models.StatusInProgress:
		check = "[~]"
	case models.StatusCancelled:
		check = "[-]"
	}

	priorityStyle := lipgloss.NewStyle().Foreground(styles.PriorityColor(task.Priority))
	titleLine := check + " " + priorityStyle.Render("["+task.Priority.Label()+"]") + " " + task.Title

	// Meta line: status, due date, tags
	metaParts := []string{
		lipgloss.NewStyle().Foreground(styles.StatusColor(task.Status)).Render(task.Status.Label()),
	}
	if task.DueDate != nil {
		due := task.DueDate.Format(dueDateLayout)
		if task.Overdue(time.Now()) {
			due = lipgloss.NewStyle().Foreground(styles.Current.Error).Render(due + " (overdue)")
		}
		metaParts = append(metaParts, due)
	}
	for _, tag := range task.Tags {
		tagStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color))
		metaParts = append(metaParts, tagStyle.Render(tag.Name))
	}
	metaLine := strings.Join(metaParts, "  ")

	var titleStyle, metaStyle lipgloss.Style
	if selected {
		titleStyle = s.ListSelected.Width(width)
		metaStyle = s.ListSelected.Width(width)
	} else {
		titleStyle = s.ListItem.Width(width)
		metaStyle = s.ListItem.Width(width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(titleLine),
		metaStyle.Render(metaLine),
	) + "\n"
}

func (v *TaskListView) renderEditForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Task"
	if !v.editingNew {
		formTitle = "Edit Task"
	}

	titleStyle := s.Input
	descStyle := s.Input
	dueStyle := s.Input
	priorityStyle := s.Input
	tagsStyle := s.Input
	btnStyle := s.Button

	switch v.editFocusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		dueStyle = s.InputFocused
	case 3:
		priorityStyle = s.InputFocused
	case 4:
		tagsStyle = s.InputFocused
	case 5:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	priority := models.Priorities[v.editPriorityIdx]
	priorityLabel := lipgloss.NewStyle().
		Foreground(styles.PriorityColor(priority)).
		Render(priority.Label())
	prioritySelector := priorityStyle.Width(20).Render("◀ " + priorityLabel + " ▶")

	tagSelector := v.renderEditTagSelector(tagsStyle, inputWidth)

	rows := []string{
		s.Title.Render(formTitle),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.editTitle.View()),
		"",
		"Description:",
		descStyle.Render(v.editDesc.View()),
		"",
		"Due date (optional):",
		dueStyle.Width(16).Render(v.editDue.View()),
		"",
		"Priority:",
		prioritySelector,
		"",
		"Tags:",
		tagSelector,
		"",
		btnStyle.Render(" Save "),
	}
	if v.formErr != "" {
		rows = append(rows, "", s.ErrorBanner.Render(v.formErr))
	}
	rows = append(rows, "",
		s.TitleMuted.Render("Tab: next • ◀▶: priority • Space/↵: toggle tag • Ctrl+S: save • Esc: cancel"))

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

// renderEditTagSelector renders the inline tag selector for the edit form
func (v *TaskListView) renderEditTagSelector(containerStyle lipgloss.Style, width int) string {
	s := v.styles
	tags := v.tags.Tags()

	if len(tags) == 0 {
		return containerStyle.Width(width).Render(s.TitleMuted.Render("No tags yet"))
	}

	var items []string
	for i, tag := range tags {
		isSelected := false
		for _, id := range v.editTags {
			if id == tag.ID {
				isSelected = true
				break
			}
		}

		checkbox := "[ ]"
		if isSelected {
			checkbox = "[x]"
		}

		tagColor := lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color))
		itemText := checkbox + " " + tagColor.Render("●") + " " + tag.Name

		if v.editFocusIdx == 4 && i == v.editTagCursor {
			items = append(items, s.ListSelected.Render(itemText))
		} else {
			items = append(items, s.ListItem.Render(itemText))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, items...)
	return containerStyle.Width(width).Render(content)
}

func (v *TaskListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 60 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}

	return v.styles.Help.Render(
		fmt.Sprintf("%s edit • %s new • %s del • %s toggle • %s search • %s filter • %s refresh • %s views • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("space"),
			v.styles.HelpKey.Render("/"),
			v.styles.HelpKey.Render("f"),
			v.styles.HelpKey.Render("r"),
			v.styles.HelpKey.Render("1-5"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("↵/e") + "    edit task",
		s.HelpKey.Render("n") + "      new task",
		s.HelpKey.Render("d") + "      delete task",
		s.HelpKey.Render("space") + "  advance status",
		s.HelpKey.Render("/") + "      search",
		s.HelpKey.Render("f") + "      filter",
		s.HelpKey.Render("r") + "      refresh",
		s.HelpKey.Render("1-5") + "    switch view",
		s.HelpKey.Render("ctrl+d") + " sign out",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
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
