package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusboard/internal/assistant"
)

var (
	userLabelStyle = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	botLabelStyle  = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
)

type assistantModel struct {
	ai     *assistant.Client
	width  int
	height int

	input   textinput.Model
	history []assistant.Message
	pending bool
	lastErr string
}

func newAssistantModel(ai *assistant.Client) assistantModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about your tasks, notes or habits"
	ti.Prompt = "› "
	ti.CharLimit = 2000
	return assistantModel{ai: ai, input: ti}
}

func (m *assistantModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// typing reports whether key presses belong to the input line.
func (m assistantModel) typing() bool {
	return m.input.Focused()
}

type assistantReplyMsg struct {
	text string
	err  error
}

func (m assistantModel) ask(history []assistant.Message) tea.Cmd {
	ai := m.ai
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), assistant.DefaultTimeout)
		defer cancel()
		text, err := ai.Reply(ctx, history)
		return assistantReplyMsg{text: text, err: err}
	}
}

func (m assistantModel) update(msg tea.Msg) (assistantModel, tea.Cmd) {
	switch msg := msg.(type) {
	case assistantReplyMsg:
		m.pending = false
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.lastErr = ""
		m.history = append(m.history, assistant.Message{Role: assistant.RoleAssistant, Text: msg.text})
		return m, nil

	case tea.KeyMsg:
		if !m.input.Focused() {
			switch {
			case key.Matches(msg, keys.Enter):
				return m, m.input.Focus()
			case key.Matches(msg, keys.Delete):
				if !m.pending {
					m.history = nil
					m.lastErr = ""
				}
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEsc:
			m.input.Blur()
			return m, nil
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.pending {
				return m, nil
			}
			if m.ai == nil || !m.ai.Enabled() {
				m.lastErr = assistant.ErrDisabled.Error()
				return m, nil
			}
			m.input.Reset()
			history := make([]assistant.Message, len(m.history), len(m.history)+1)
			copy(history, m.history)
			history = append(history, assistant.Message{Role: assistant.RoleUser, Text: text})
			m.history = history
			m.pending = true
			m.lastErr = ""
			return m, m.ask(history)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m assistantModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("AI Assistant")
	if m.ai == nil || !m.ai.Enabled() {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "",
			mutedStyle.Render("The assistant is disabled."),
			mutedStyle.Render("Set ANTHROPIC_API_KEY or assistant.api_key in the config file."),
		))
	}

	bodyW := max(10, w-4)
	var lines []string
	for _, msg := range m.history {
		label := userLabelStyle.Render("You")
		if msg.Role == assistant.RoleAssistant {
			label = botLabelStyle.Render("Assistant")
		}
		lines = append(lines, label)
		wrapped := lipgloss.NewStyle().Width(bodyW).Render(msg.Text)
		lines = append(lines, strings.Split(wrapped, "\n")...)
		lines = append(lines, "")
	}
	if m.pending {
		lines = append(lines, mutedStyle.Render("thinking…"))
	}
	if m.lastErr != "" {
		lines = append(lines, errorStyle.Render(truncate(m.lastErr, bodyW)))
	}
	if len(lines) == 0 {
		lines = append(lines, mutedStyle.Render("No messages yet."))
	}

	avail := max(1, m.height-9)
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}

	hint := "enter: type  d: clear"
	if m.input.Focused() {
		hint = "enter: send  esc: done typing"
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "",
		strings.Join(lines, "\n"),
		"",
		m.input.View(),
		mutedStyle.Render(hint),
	))
}
