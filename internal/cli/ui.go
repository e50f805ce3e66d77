package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/focusboard/internal/assistant"
	"github.com/sadopc/focusboard/internal/tui"
)

func runUI(e *env) error {
	ai := assistant.New(e.cfg.Assistant, e.log)
	app := tui.NewApp(e.hub, ai)
	p := tea.NewProgram(app, tea.WithAltScreen())

	e.log.Info("ui started", "assistant", ai.Enabled())
	_, err := p.Run()
	return err
}
