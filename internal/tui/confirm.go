package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/userdeck/internal/controller"
)

// confirmModal is the modal shown for a controller.Prompt. The focused
// action starts on the first non-destructive one.
type confirmModal struct {
	prompt controller.Prompt
	reply  chan<- controller.Choice
	cursor int
	keys   confirmKeyMap
	help   help.Model
}

func newConfirmModal(p controller.Prompt, reply chan<- controller.Choice) *confirmModal {
	if len(p.Actions) == 0 {
		p.Actions = []controller.Action{
			{Label: "Cancel", Choice: controller.ChoiceCancel},
			{Label: "OK", Choice: controller.ChoiceConfirm},
		}
	}
	cursor := 0
	for i, a := range p.Actions {
		if !a.Destructive {
			cursor = i
			break
		}
	}
	return &confirmModal{
		prompt: p,
		reply:  reply,
		cursor: cursor,
		keys:   newConfirmKeyMap(),
		help:   help.New(),
	}
}

// update handles a key and returns nil once the modal is answered.
func (m *confirmModal) update(msg tea.KeyMsg) *confirmModal {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.cursor = (m.cursor - 1 + len(m.prompt.Actions)) % len(m.prompt.Actions)
	case key.Matches(msg, m.keys.Right):
		m.cursor = (m.cursor + 1) % len(m.prompt.Actions)
	case key.Matches(msg, m.keys.Choose):
		m.answer(m.prompt.Actions[m.cursor].Choice)
		return nil
	case key.Matches(msg, m.keys.Dismiss):
		m.answer(controller.ChoiceCancel)
		return nil
	}
	return m
}

// answer never blocks: reply is buffered and answered once.
func (m *confirmModal) answer(c controller.Choice) {
	select {
	case m.reply <- c:
	default:
	}
}

func (m *confirmModal) view(width int) string {
	buttons := make([]string, 0, len(m.prompt.Actions))
	for i, a := range m.prompt.Actions {
		style := ButtonStyle
		switch {
		case i == m.cursor && a.Destructive:
			style = DestructiveButtonStyle
		case i == m.cursor:
			style = SelectedButtonStyle
		}
		buttons = append(buttons, style.MarginRight(1).Render(a.Label))
	}

	title := lipgloss.NewStyle().Foreground(WarningColor).Bold(true).Render("⚠ " + m.prompt.Title)
	body := lipgloss.NewStyle().Width(width - 6).Render(m.prompt.Message)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		body,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, buttons...),
		"",
		m.help.View(m.keys),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(WarningColor).
		Padding(1, 2).
		Width(width).
		Render(content)
}
