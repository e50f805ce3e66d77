package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusboard/internal/hub"
)

const focusDays = 7

type dashboardModel struct {
	hub    *hub.Hub
	width  int
	height int

	today string
	stats hub.Stats
	chart barchart.Model
}

func newDashboardModel(h *hub.Hub) dashboardModel {
	return dashboardModel{
		hub:   h,
		chart: barchart.New(40, 8),
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.buildChart()
}

type dashboardDataMsg struct {
	today string
	stats hub.Stats
}

// refresh copies the state on the update loop and aggregates it off-loop.
func (d dashboardModel) refresh() tea.Cmd {
	snap := d.hub.Snapshot()
	today := d.hub.Today()
	return func() tea.Msg {
		return dashboardDataMsg{today: today, stats: hub.ComputeStats(snap, today)}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.today = msg.today
		d.stats = msg.stats
		d.buildChart()
		return d, nil
	}
	return d, nil
}

func (d dashboardModel) columnWidth() int {
	w := d.width - 4
	if d.width >= 100 {
		w = (d.width - 4) / 2
	}
	return w
}

func (d *dashboardModel) buildChart() {
	chartWidth := d.columnWidth() - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	d.chart = barchart.New(chartWidth, 8)

	if d.today == "" {
		return
	}
	var bars []barchart.BarData
	for _, day := range d.stats.LastDays(d.today, focusDays) {
		label := day.Date
		if t, err := time.Parse(hub.DateLayout, day.Date); err == nil {
			label = t.Format("Mon")
		}
		style := lipgloss.NewStyle().Foreground(colorAccent)
		if day.Date == d.today {
			style = lipgloss.NewStyle().Foreground(colorPrimary)
		}
		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: "focus", Value: float64(day.Minutes), Style: style}},
		})
	}
	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	w := d.columnWidth()
	tasks := d.renderTasksPanel(w)
	focus := d.renderFocusPanel(w)
	habits := d.renderHabitsPanel(w)
	projects := d.renderProjectsPanel(w)

	if d.width >= 100 {
		left := lipgloss.JoinVertical(lipgloss.Left, tasks, projects)
		right := lipgloss.JoinVertical(lipgloss.Left, focus, habits)
		return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}
	return lipgloss.JoinVertical(lipgloss.Left, tasks, focus, habits, projects)
}

func (d dashboardModel) renderTasksPanel(w int) string {
	st := d.stats
	title := titleStyle.Render("Tasks")
	if st.TotalTasks == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, mutedStyle.Render("No tasks yet. Press 2 to add some."),
		))
	}

	summary := fmt.Sprintf("%s of %d done  %s",
		highlightStyle.Render(fmt.Sprint(st.CompletedTasks)), st.TotalTasks, percent(st.CompletionRatio))
	bar := renderBar(st.CompletionRatio, min(30, w-10))

	var due []string
	if st.Overdue > 0 {
		due = append(due, errorStyle.Render(fmt.Sprintf("%d overdue", st.Overdue)))
	}
	if st.DueToday > 0 {
		due = append(due, warningStyle.Render(fmt.Sprintf("%d due today", st.DueToday)))
	}
	if len(due) == 0 {
		due = append(due, mutedStyle.Render("nothing due"))
	}

	var cats []string
	for _, c := range hub.Categories {
		if n := st.ByCategory[c]; n > 0 {
			cats = append(cats, fmt.Sprintf("%s %d", categoryBadge(c), n))
		}
	}
	var prios []string
	for _, p := range hub.Priorities {
		if n := st.ByPriority[p]; n > 0 {
			label := priorityBadge(p)
			if label == "" {
				label = mutedStyle.Render("no priority")
			}
			prios = append(prios, fmt.Sprintf("%s %d", label, n))
		}
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, summary, bar, "",
		strings.Join(due, "  "),
		strings.Join(cats, "  "),
		strings.Join(prios, "  "),
	))
}

func (d dashboardModel) renderFocusPanel(w int) string {
	st := d.stats
	title := titleStyle.Render("Focus")
	header := fmt.Sprintf("%s  today %s  ·  %d sessions, %s total",
		title,
		highlightStyle.Render(formatMinutes(st.MinutesToday)),
		st.SessionCount,
		formatMinutes(st.FocusMinutes),
	)
	if st.SessionCount == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header, mutedStyle.Render("No pomodoro sessions yet. Press 7 to start one."),
		))
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header, "", d.chart.View(), mutedStyle.Render("minutes per day, last 7 days"),
	))
}

func (d dashboardModel) renderHabitsPanel(w int) string {
	st := d.stats
	title := titleStyle.Render("Habits")
	if len(st.Habits) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, mutedStyle.Render("No habits tracked"),
		))
	}

	rows := []string{fmt.Sprintf("%s  best streak %s", title, highlightStyle.Render(fmt.Sprint(st.BestStreak)))}
	for _, h := range st.Habits {
		mark := mutedStyle.Render("○")
		if h.DoneToday {
			mark = successStyle.Render("●")
		}
		rows = append(rows, fmt.Sprintf("  %s %-20s %s", mark, truncate(h.Name, 20), accentStyle.Render(fmt.Sprintf("🔥 %d", h.Streak))))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderProjectsPanel(w int) string {
	st := d.stats
	title := titleStyle.Render("Projects")
	if len(st.Projects) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, mutedStyle.Render("No projects yet"),
		))
	}

	rows := []string{title}
	barWidth := clamp(w-40, 5, 20)
	for _, p := range st.Projects {
		rows = append(rows, fmt.Sprintf("  %-18s %s %d/%d",
			truncate(p.Name, 18), renderBar(p.Ratio, barWidth), p.Completed, p.Total))
	}
	if st.UnassignedTasks > 0 {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %d tasks without a project", st.UnassignedTasks)))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
