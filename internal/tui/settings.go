package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusboard/internal/hub"
)

// settingsModel is the pomodoro durations form shown on the Timer view.
type settingsModel struct {
	hub   *hub.Hub
	width int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	work      *string
	shortRest *string
	longRest  *string
	rounds    *string
}

type settingsSavedMsg struct {
	settings hub.Settings
}

func newSettingsModel(h *hub.Hub) settingsModel {
	w, s, l, r := "", "", "", ""
	return settingsModel{
		hub:       h,
		work:      &w,
		shortRest: &s,
		longRest:  &l,
		rounds:    &r,
	}
}

func (s *settingsModel) setSize(w int) {
	s.width = w
}

func (s settingsModel) open() (settingsModel, tea.Cmd) {
	cur := s.hub.Settings.Get()
	*s.work = strconv.Itoa(cur.WorkMinutes)
	*s.shortRest = strconv.Itoa(cur.BreakMinutes)
	*s.longRest = strconv.Itoa(cur.LongBreakMinutes)
	*s.rounds = strconv.Itoa(cur.SessionsBeforeLongBreak)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Work (min)").Value(s.work).Validate(positiveInt),
			huh.NewInput().Title("Short break (min)").Value(s.shortRest).Validate(positiveInt),
			huh.NewInput().Title("Long break (min)").Value(s.longRest).Validate(positiveInt),
			huh.NewInput().Title("Work sessions before long break").Value(s.rounds).Validate(positiveInt),
		).Title("Pomodoro"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if !s.formActive || s.form == nil {
		return s, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		next, err := s.values()
		if err == nil {
			err = s.hub.Settings.Set(next)
		}
		if err != nil {
			return s, errCmd(err)
		}
		return s, func() tea.Msg { return settingsSavedMsg{settings: next} }
	}

	return s, cmd
}

func (s settingsModel) values() (hub.Settings, error) {
	var out hub.Settings
	fields := []struct {
		raw string
		dst *int
	}{
		{*s.work, &out.WorkMinutes},
		{*s.shortRest, &out.BreakMinutes},
		{*s.longRest, &out.LongBreakMinutes},
		{*s.rounds, &out.SessionsBeforeLongBreak},
	}
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f.raw))
		if err != nil {
			return hub.Settings{}, fmt.Errorf("%q is not a number", f.raw)
		}
		*f.dst = n
	}
	return out, nil
}

func (s settingsModel) view() string {
	title := titleStyle.Render("Pomodoro Durations")
	return panelStyle.Width(s.width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
	)
}

func positiveInt(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return errors.New("enter a whole number above zero")
	}
	return nil
}
