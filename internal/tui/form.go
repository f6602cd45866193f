package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/userdeck/internal/messages"
)

// formScreen stands in for the edit flow. userID is empty when creating.
type formScreen struct {
	userID  string
	catalog *messages.Catalog
	keys    formKeyMap
}

func newFormScreen(userID string, catalog *messages.Catalog) *formScreen {
	return &formScreen{userID: userID, catalog: catalog, keys: newFormKeyMap()}
}

func (s *formScreen) Init() tea.Cmd {
	return nil
}

func (s *formScreen) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, s.keys.Back) {
		return func() tea.Msg { return backMsg{} }
	}
	return nil
}

func (s *formScreen) View(width, height int) string {
	title := s.catalog.Text(messages.FormTitle, nil)
	if s.userID != "" {
		title += " #" + s.userID
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderTitle(title),
		"",
		RenderSubtitle(s.catalog.Text(messages.FormUnavailable, nil)),
	)
}

func (s *formScreen) Help() help.KeyMap {
	return s.keys
}

func (s *formScreen) Capturing() bool {
	return false
}

func (s *formScreen) Close() {}
