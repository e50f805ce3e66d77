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

type projectsModel struct {
	hub    *hub.Hub
	width  int
	height int

	projects     []hub.Project
	tasks        []hub.Task
	cursor       int
	taskCursor   int
	viewingTasks bool // true = viewing tasks of selected project

	formActive bool
	form       *huh.Form
	formType   string // "project", "rename", "task"

	// Form field pointers (survive value copies)
	formName *string

	editingID string
}

func newProjectsModel(h *hub.Hub) projectsModel {
	name := ""
	return projectsModel{
		hub:      h,
		formName: &name,
	}
}

func (p *projectsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type projectsDataMsg struct {
	projects []hub.Project
	tasks    []hub.Task
}

func (p projectsModel) refresh() tea.Cmd {
	projects := p.hub.Projects.All()
	tasks := p.hub.Tasks.All()
	return func() tea.Msg {
		return projectsDataMsg{projects: projects, tasks: tasks}
	}
}

func (p projectsModel) current() (hub.Project, bool) {
	if p.cursor < 0 || p.cursor >= len(p.projects) {
		return hub.Project{}, false
	}
	return p.projects[p.cursor], true
}

// projectTasks returns the tasks assigned to the selected project.
func (p projectsModel) projectTasks() []hub.Task {
	proj, ok := p.current()
	if !ok {
		return nil
	}
	var out []hub.Task
	for _, t := range p.tasks {
		if t.ProjectID != nil && *t.ProjectID == proj.ID {
			out = append(out, t)
		}
	}
	return out
}

func (p projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case projectsDataMsg:
		p.projects = msg.projects
		p.tasks = msg.tasks
		p.cursor = clamp(p.cursor, 0, max(0, len(p.projects)-1))
		p.taskCursor = clamp(p.taskCursor, 0, max(0, len(p.projectTasks())-1))
		if len(p.projects) == 0 {
			p.viewingTasks = false
		}
		return p, nil

	case tea.KeyMsg:
		if p.viewingTasks {
			return p.updateTaskView(msg)
		}
		return p.updateProjectList(msg)
	}
	return p, nil
}

func (p projectsModel) updateProjectList(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.Down):
		if p.cursor < len(p.projects)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(p.projects) > 0 {
			p.viewingTasks = true
			p.taskCursor = 0
		}
	case key.Matches(msg, keys.New):
		return p.showNameForm("project", "")
	case key.Matches(msg, keys.Edit):
		if proj, ok := p.current(); ok {
			p.editingID = proj.ID
			return p.showNameForm("rename", proj.Name)
		}
	case key.Matches(msg, keys.Delete):
		if proj, ok := p.current(); ok {
			return p, tea.Batch(errCmd(p.hub.Projects.Delete(proj.ID)), p.refresh())
		}
	}
	return p, nil
}

func (p projectsModel) updateTaskView(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	tasks := p.projectTasks()
	switch {
	case key.Matches(msg, keys.Back):
		p.viewingTasks = false
	case key.Matches(msg, keys.Up):
		if p.taskCursor > 0 {
			p.taskCursor--
		}
	case key.Matches(msg, keys.Down):
		if p.taskCursor < len(tasks)-1 {
			p.taskCursor++
		}
	case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
		if p.taskCursor < len(tasks) {
			return p, tea.Batch(errCmd(p.hub.Tasks.Toggle(tasks[p.taskCursor].ID)), p.refresh())
		}
	case key.Matches(msg, keys.New):
		return p.showNameForm("task", "")
	case key.Matches(msg, keys.Delete):
		if p.taskCursor < len(tasks) {
			return p, tea.Batch(errCmd(p.hub.Tasks.Delete(tasks[p.taskCursor].ID)), p.refresh())
		}
	}
	return p, nil
}

func (p projectsModel) showNameForm(formType, initial string) (projectsModel, tea.Cmd) {
	*p.formName = initial
	p.formType = formType

	title := "Project Name"
	if formType == "task" {
		title = "Task"
	}
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Value(p.formName),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) updateForm(msg tea.Msg) (projectsModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		name := strings.TrimSpace(*p.formName)
		var err error
		switch p.formType {
		case "project":
			_, err = p.hub.Projects.Add(name)
		case "rename":
			err = p.hub.Projects.Rename(p.editingID, name)
		case "task":
			if proj, ok := p.current(); ok {
				_, err = p.hub.Tasks.Add(hub.TaskInput{Text: name, ProjectID: strPtr(proj.ID)})
			}
		}
		return p, tea.Batch(errCmd(err), p.refresh())
	}

	return p, cmd
}

func (p projectsModel) view() string {
	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Project")
		switch p.formType {
		case "rename":
			title = titleStyle.Render("Rename Project")
		case "task":
			title = titleStyle.Render("New Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(p.width - 4).Render(content)
	}

	if p.viewingTasks {
		return p.renderTaskView()
	}
	return p.renderProjectList()
}

func (p projectsModel) renderProjectList() string {
	w := p.width - 4
	title := titleStyle.Render("Projects")

	if len(p.projects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No projects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	stats := hub.ComputeStats(hub.Snapshot{Projects: p.projects, Tasks: p.tasks}, p.hub.Today())

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-26s %-22s %s", "Name", "Progress", "Done"))
	rows = append(rows, header)

	for i, pp := range stats.Projects {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		name := style.Render(fmt.Sprintf("%s%-24s", cursor, truncate(pp.Name, 24)))
		rows = append(rows, fmt.Sprintf("%s %s  %d/%d", name, renderBar(pp.Ratio, 20), pp.Completed, pp.Total))
	}
	if stats.UnassignedTasks > 0 {
		rows = append(rows, "", mutedStyle.Render(fmt.Sprintf("  %d tasks without a project", stats.UnassignedTasks)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  r: rename  d: delete  enter: tasks"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p projectsModel) renderTaskView() string {
	w := p.width - 4
	proj, _ := p.current()
	title := titleStyle.Render(fmt.Sprintf("%s · Tasks", proj.Name))

	tasks := p.projectTasks()
	if len(tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, task := range tasks {
		cursor := "  "
		style := normalItemStyle
		if i == p.taskCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		check := "[ ]"
		if task.Completed {
			check = successStyle.Render("[✓]")
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, check, style.Render(task.Text)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new task  space: toggle  d: delete  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
