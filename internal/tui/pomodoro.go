package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusboard/internal/hub"
)

type pomodoroPhase int

const (
	pomodoroIdle pomodoroPhase = iota
	pomodoroWork
	pomodoroShortBreak
	pomodoroLongBreak
)

var phaseNames = map[pomodoroPhase]string{
	pomodoroIdle:       "IDLE",
	pomodoroWork:       "WORK",
	pomodoroShortBreak: "SHORT BREAK",
	pomodoroLongBreak:  "LONG BREAK",
}

type pomodoroModel struct {
	hub    *hub.Hub
	width  int
	height int

	phase     pomodoroPhase
	completed int // work phases finished in the current cycle
	settings  hub.Settings
	timer     timerModel

	settingsForm settingsModel
}

func newPomodoroModel(h *hub.Hub) pomodoroModel {
	return pomodoroModel{
		hub:          h,
		phase:        pomodoroIdle,
		settings:     h.Settings.Get(),
		timer:        newTimerModel(h.Now),
		settingsForm: newSettingsModel(h),
	}
}

func (p *pomodoroModel) setSize(w, h int) {
	p.width = w
	p.height = h
	p.settingsForm.setSize(w - 4)
}

func (p pomodoroModel) formActive() bool {
	return p.settingsForm.formActive
}

func (p pomodoroModel) active() bool {
	return p.phase != pomodoroIdle
}

func (p pomodoroModel) update(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	if p.settingsForm.formActive {
		var cmd tea.Cmd
		p.settingsForm, cmd = p.settingsForm.update(msg)
		return p, cmd
	}

	switch msg := msg.(type) {
	case tickMsg:
		if p.timer.tick() {
			return p.advancePhase()
		}
		return p, nil

	case settingsSavedMsg:
		p.settings = msg.settings
		return p, statusCmd("Pomodoro durations saved")

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if p.phase == pomodoroIdle {
				p.completed = 0
				p.settings = p.hub.Settings.Get()
				return p.startPhase(pomodoroWork), statusCmd("Focus!")
			}
		case key.Matches(msg, keys.Stop):
			if p.phase != pomodoroIdle {
				p.timer.stop()
				p.phase = pomodoroIdle
				p.completed = 0
				return p, statusCmd("Pomodoro stopped")
			}
		case key.Matches(msg, keys.Pause):
			p.timer.toggle()
		case key.Matches(msg, keys.Skip):
			if p.phase == pomodoroShortBreak || p.phase == pomodoroLongBreak {
				return p.advancePhase()
			}
		case key.Matches(msg, keys.Configure):
			if p.phase == pomodoroIdle {
				var cmd tea.Cmd
				p.settingsForm, cmd = p.settingsForm.open()
				return p, cmd
			}
			return p, statusCmd("Stop the timer before changing durations")
		}
	}
	return p, nil
}

func (p pomodoroModel) startPhase(phase pomodoroPhase) pomodoroModel {
	p.phase = phase
	var mins int
	switch phase {
	case pomodoroWork:
		mins = p.settings.WorkMinutes
	case pomodoroShortBreak:
		mins = p.settings.BreakMinutes
	case pomodoroLongBreak:
		mins = p.settings.LongBreakMinutes
	}
	p.timer.start(time.Duration(mins) * time.Minute)
	return p
}

// advancePhase moves to the next phase. Only a work phase that ran to zero
// is logged; skipping a break logs nothing.
func (p pomodoroModel) advancePhase() (pomodoroModel, tea.Cmd) {
	switch p.phase {
	case pomodoroWork:
		session := hub.PomodoroSession{Date: p.hub.Today(), Duration: p.settings.WorkMinutes}
		p.completed++
		p = p.startPhase(p.nextBreak())
		if err := p.hub.Sessions.Log(session); err != nil {
			return p, errCmd(err)
		}
		return p, tea.Batch(
			func() tea.Msg { return sessionLoggedMsg{session: session} },
			statusCmd("Break time! \a"),
		)

	case pomodoroShortBreak:
		return p.startPhase(pomodoroWork), statusCmd("Back to work \a")

	case pomodoroLongBreak:
		p.timer.stop()
		p.phase = pomodoroIdle
		p.completed = 0
		return p, statusCmd("Cycle complete \a")
	}
	return p, nil
}

func (p pomodoroModel) nextBreak() pomodoroPhase {
	if p.settings.SessionsBeforeLongBreak > 0 && p.completed%p.settings.SessionsBeforeLongBreak == 0 {
		return pomodoroLongBreak
	}
	return pomodoroShortBreak
}

func (p pomodoroModel) view() string {
	if p.settingsForm.formActive {
		return p.settingsForm.view()
	}

	w := p.width - 4
	title := titleStyle.Render("Pomodoro Timer")

	style := timerStyle
	switch p.phase {
	case pomodoroWork:
		style = accentStyle.Bold(true)
	case pomodoroShortBreak:
		style = successStyle.Bold(true)
	case pomodoroLongBreak:
		style = highlightStyle.Bold(true)
	}

	var clock, label, indicator string
	if p.phase == pomodoroIdle {
		clock = formatClock(time.Duration(p.settings.WorkMinutes) * time.Minute)
		label = mutedStyle.Render("Ready to start")
		indicator = mutedStyle.Render("Press s to begin")
	} else {
		clock = formatClock(p.timer.remaining())
		label = style.Render(phaseNames[p.phase])
		if p.timer.paused() {
			label = warningStyle.Render("⏸  PAUSED")
		}
		indicator = p.renderProgress()
	}
	timeDisplay := style.Width(w - 6).Align(lipgloss.Center).Render(clock)

	bar := ""
	if p.phase != pomodoroIdle {
		bar = renderBar(p.timer.progress(), min(40, w-10))
	}

	settings := mutedStyle.Render(fmt.Sprintf("work %dm · break %dm · long break %dm every %d",
		p.settings.WorkMinutes, p.settings.BreakMinutes, p.settings.LongBreakMinutes, p.settings.SessionsBeforeLongBreak))

	var controls string
	switch p.phase {
	case pomodoroIdle:
		controls = mutedStyle.Render("s: start  c: durations")
	case pomodoroWork:
		controls = mutedStyle.Render("space: pause/resume  x: stop")
	default:
		controls = mutedStyle.Render("space: pause/resume  b: skip break  x: stop")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title, "", timeDisplay, label, bar, "", indicator, "", settings, "", controls,
	)
	return panelStyle.Width(w).Render(content)
}

func (p pomodoroModel) renderProgress() string {
	n := p.settings.SessionsBeforeLongBreak
	var parts []string
	for i := 0; i < n; i++ {
		switch {
		case i < p.completed:
			parts = append(parts, successStyle.Render("●"))
		case i == p.completed && p.phase == pomodoroWork:
			parts = append(parts, accentStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  %d/%d", p.completed, n))
	return strings.Join(parts, " ") + counter
}

// renderBar draws a horizontal progress bar of width w for ratio r.
func renderBar(r float64, w int) string {
	if w <= 0 {
		return ""
	}
	filled := clamp(int(r*float64(w)+0.5), 0, w)
	return successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", w-filled))
}
