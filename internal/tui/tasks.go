package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusboard/internal/hub"
)

type taskFilter int

const (
	filterAll taskFilter = iota
	filterActive
	filterDone
)

var taskFilterNames = []string{"all", "active", "completed"}

type tasksModel struct {
	hub    *hub.Hub
	width  int
	height int

	tasks    []hub.Task
	projects []hub.Project
	cursor   int
	filter   taskFilter

	pendingFocus string // task id to select once data arrives

	formActive bool
	form       *huh.Form
	editingID  string // empty when adding

	// Form field pointers (survive value copies)
	formText     *string
	formProject  *string
	formDue      *string
	formCategory *string
	formPriority *string
}

func newTasksModel(h *hub.Hub) tasksModel {
	text, project, due, cat, prio := "", "", "", string(hub.CategoryNone), string(hub.PriorityNone)
	return tasksModel{
		hub:          h,
		formText:     &text,
		formProject:  &project,
		formDue:      &due,
		formCategory: &cat,
		formPriority: &prio,
	}
}

func (t *tasksModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type tasksDataMsg struct {
	tasks    []hub.Task
	projects []hub.Project
}

func (t tasksModel) refresh() tea.Cmd {
	tasks := t.hub.Tasks.All()
	projects := t.hub.Projects.All()
	return func() tea.Msg {
		return tasksDataMsg{tasks: tasks, projects: projects}
	}
}

func (t tasksModel) visible() []hub.Task {
	if t.filter == filterAll {
		return t.tasks
	}
	var out []hub.Task
	for _, task := range t.tasks {
		if task.Completed == (t.filter == filterDone) {
			out = append(out, task)
		}
	}
	return out
}

func (t tasksModel) selected() (hub.Task, bool) {
	v := t.visible()
	if t.cursor < 0 || t.cursor >= len(v) {
		return hub.Task{}, false
	}
	return v[t.cursor], true
}

// focus selects the task with id, clearing the filter so it is visible.
func (t tasksModel) focus(id string) tasksModel {
	t.filter = filterAll
	t.pendingFocus = id
	for i, task := range t.tasks {
		if task.ID == id {
			t.cursor = i
			t.pendingFocus = ""
		}
	}
	return t
}

func (t tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		t.tasks = msg.tasks
		t.projects = msg.projects
		if t.pendingFocus != "" {
			t = t.focus(t.pendingFocus)
		}
		t.cursor = clamp(t.cursor, 0, max(0, len(t.visible())-1))
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
		case key.Matches(msg, keys.Down):
			if t.cursor < len(t.visible())-1 {
				t.cursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if task, ok := t.selected(); ok {
				return t, tea.Batch(errCmd(t.hub.Tasks.Toggle(task.ID)), t.refresh())
			}
		case key.Matches(msg, keys.New):
			return t.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if task, ok := t.selected(); ok {
				return t.showForm(&task)
			}
		case key.Matches(msg, keys.Delete):
			if task, ok := t.selected(); ok {
				return t, tea.Batch(errCmd(t.hub.Tasks.Delete(task.ID)), t.refresh())
			}
		case key.Matches(msg, keys.Filter):
			t.filter = (t.filter + 1) % taskFilter(len(taskFilterNames))
			t.cursor = 0
		}
	}
	return t, nil
}

func (t tasksModel) showForm(task *hub.Task) (tasksModel, tea.Cmd) {
	if task == nil {
		*t.formText = ""
		*t.formProject = ""
		*t.formDue = ""
		*t.formCategory = string(hub.CategoryNone)
		*t.formPriority = string(hub.PriorityNone)
		t.editingID = ""
	} else {
		*t.formText = task.Text
		*t.formProject = ""
		if task.ProjectID != nil {
			*t.formProject = *task.ProjectID
		}
		*t.formDue = task.DueDate
		*t.formCategory = string(task.Category)
		*t.formPriority = string(task.Priority)
		t.editingID = task.ID
	}

	projectOptions := []huh.Option[string]{huh.NewOption("No project", "")}
	for _, p := range t.projects {
		projectOptions = append(projectOptions, huh.NewOption(p.Name, p.ID))
	}
	catOptions := make([]huh.Option[string], len(hub.Categories))
	for i, c := range hub.Categories {
		catOptions[i] = huh.NewOption(string(c), string(c))
	}
	prioOptions := make([]huh.Option[string], len(hub.Priorities))
	for i, p := range hub.Priorities {
		prioOptions[i] = huh.NewOption(string(p), string(p))
	}

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(t.formText),
			huh.NewSelect[string]().Title("Project").Options(projectOptions...).Value(t.formProject),
			huh.NewInput().Title("Due date (YYYY-MM-DD, optional)").Value(t.formDue).Validate(optionalDate),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(t.formCategory),
			huh.NewSelect[string]().Title("Priority").Options(prioOptions...).Value(t.formPriority),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		in := hub.TaskInput{
			Text:     strings.TrimSpace(*t.formText),
			DueDate:  strings.TrimSpace(*t.formDue),
			Category: hub.Category(*t.formCategory),
			Priority: hub.Priority(*t.formPriority),
		}
		if *t.formProject != "" {
			in.ProjectID = strPtr(*t.formProject)
		}

		var err error
		if t.editingID == "" {
			_, err = t.hub.Tasks.Add(in)
		} else {
			err = t.hub.Tasks.Update(t.editingID, in)
		}
		return t, tea.Batch(errCmd(err), t.refresh())
	}

	return t, cmd
}

func (t tasksModel) view() string {
	w := t.width - 4
	if t.formActive && t.form != nil {
		title := titleStyle.Render("New Task")
		if t.editingID != "" {
			title = titleStyle.Render("Edit Task")
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", t.form.View()))
	}

	done := 0
	for _, task := range t.tasks {
		if task.Completed {
			done++
		}
	}
	title := fmt.Sprintf("%s  %s  %s",
		titleStyle.Render("Tasks"),
		mutedStyle.Render(fmt.Sprintf("%d/%d done", done, len(t.tasks))),
		highlightStyle.Render("["+taskFilterNames[t.filter]+"]"),
	)

	visible := t.visible()
	if len(visible) == 0 {
		hint := "No tasks yet. Press n to add one."
		if len(t.tasks) > 0 {
			hint = "No tasks match this filter. Press v to change it."
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", mutedStyle.Render(hint)))
	}

	names := make(map[string]string, len(t.projects))
	for _, p := range t.projects {
		names[p.ID] = p.Name
	}
	today := t.hub.Today()

	rows := []string{title, ""}
	start, end := listWindow(len(visible), t.cursor, t.height-8)
	for i := start; i < end; i++ {
		rows = append(rows, t.renderRow(visible[i], i == t.cursor, names, today, w-6))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  r: edit  space: toggle  d: delete  v: filter"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t tasksModel) renderRow(task hub.Task, selected bool, names map[string]string, today string, w int) string {
	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}
	check := "[ ]"
	if task.Completed {
		check = successStyle.Render("[✓]")
		if !selected {
			style = doneItemStyle
		}
	}

	var meta []string
	if task.Category != hub.CategoryNone {
		meta = append(meta, categoryBadge(task.Category))
	}
	if b := priorityBadge(task.Priority); b != "" {
		meta = append(meta, b)
	}
	if task.ProjectID != nil {
		if name, ok := names[*task.ProjectID]; ok {
			meta = append(meta, mutedStyle.Render("#"+name))
		}
	}
	if task.DueDate != "" {
		due := "due " + task.DueDate
		switch {
		case task.Completed:
			meta = append(meta, mutedStyle.Render(due))
		case task.DueDate < today:
			meta = append(meta, errorStyle.Render(due))
		case task.DueDate == today:
			meta = append(meta, warningStyle.Render("due today"))
		default:
			meta = append(meta, mutedStyle.Render(due))
		}
	}

	text := truncate(task.Text, max(10, w/2))
	return fmt.Sprintf("%s%s %s  %s", cursor, check, style.Render(text), strings.Join(meta, " "))
}

// listWindow returns the [start, end) slice of an n-item list that keeps
// cursor visible within height rows.
func listWindow(n, cursor, height int) (int, int) {
	if height < 1 {
		height = 1
	}
	if n <= height {
		return 0, n
	}
	start := cursor - height/2
	start = clamp(start, 0, n-height)
	return start, start + height
}

func optionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := hub.ParseDate(s)
	return err
}
