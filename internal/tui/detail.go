package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/userdeck/internal/controller"
	"github.com/muurk/userdeck/internal/messages"
	"github.com/muurk/userdeck/internal/users"
)

type detailLoadedMsg struct {
	screen int
}

func (m detailLoadedMsg) owner() int { return m.screen }

type detailDeleteDoneMsg struct {
	screen  int
	outcome controller.DeleteOutcome
}

func (m detailDeleteDoneMsg) owner() int { return m.screen }

// detailScreen shows one user. A successful delete navigates back through
// the controller, which pops this screen.
type detailScreen struct {
	id      int
	ctx     context.Context
	ctrl    *controller.DetailController
	catalog *messages.Catalog

	viewport viewport.Model
	spinner  spinner.Model
	keys     detailKeyMap
}

func newDetailScreen(ctx context.Context, rawID string, deps controller.Deps, catalog *messages.Catalog) *detailScreen {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return &detailScreen{
		ctx:      ctx,
		ctrl:     controller.NewDetailController(ctx, rawID, deps),
		catalog:  catalog,
		viewport: viewport.New(0, 0),
		spinner:  s,
		keys:     newDetailKeyMap(),
	}
}

func (s *detailScreen) setID(id int) {
	s.id = id
}

func (s *detailScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.load())
}

func (s *detailScreen) load() tea.Cmd {
	id := s.id
	return func() tea.Msg {
		s.ctrl.Load(s.ctx)
		return detailLoadedMsg{screen: id}
	}
}

func (s *detailScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.viewport.Width = msg.Width - 8
		s.viewport.Height = msg.Height - 12
		s.refresh()
		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd

	case detailLoadedMsg:
		s.refresh()
		s.viewport.GotoTop()
		return nil

	case detailDeleteDoneMsg:
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Back):
			return s.run(s.ctrl.Back)
		case key.Matches(msg, s.keys.Edit):
			return s.run(s.ctrl.RequestEdit)
		case key.Matches(msg, s.keys.Delete):
			return s.delete()
		case key.Matches(msg, s.keys.Retry):
			if _, ok := s.ctrl.State().(controller.NotFound); ok {
				return s.load()
			}
			return nil
		}
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return cmd
}

func (s *detailScreen) run(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

func (s *detailScreen) delete() tea.Cmd {
	if s.ctrl.Deleting() {
		return nil
	}
	id := s.id
	return func() tea.Msg {
		return detailDeleteDoneMsg{screen: id, outcome: s.ctrl.RequestDelete(s.ctx)}
	}
}

func (s *detailScreen) refresh() {
	if u, ok := s.ctrl.User(); ok {
		s.viewport.SetContent(s.renderUser(u))
	}
}

func (s *detailScreen) renderUser(u users.User) string {
	section := func(titleID string, rows ...[2]string) string {
		lines := []string{SectionTitleStyle.Render(s.catalog.Text(titleID, nil))}
		for _, r := range rows {
			if r[1] == "" {
				continue
			}
			lines = append(lines, LabelStyle.Render(r[0])+ValueStyle.Render(r[1]))
		}
		if len(lines) == 1 {
			return ""
		}
		return strings.Join(lines, "\n")
	}

	var geo string
	if g := u.Address.Geo; g != nil {
		geo = g.Lat + ", " + g.Lng
	}
	var company users.Company
	if u.Company != nil {
		company = *u.Company
	}

	parts := []string{
		lipgloss.NewStyle().Foreground(TextColor).Bold(true).Render(u.Summary()),
		section(messages.UserSectionContact,
			[2]string{"Phone", u.Phone},
			[2]string{"Website", u.Website},
			[2]string{"Email", u.Email},
		),
		section(messages.UserSectionAddress,
			[2]string{"Street", u.Address.FormatAddress()},
			[2]string{"Geo", geo},
		),
		section(messages.UserSectionCompany,
			[2]string{"Name", company.Name},
			[2]string{"Motto", company.CatchPhrase},
			[2]string{"Business", company.BS},
		),
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}

func (s *detailScreen) View(width, height int) string {
	title := RenderTitle(s.catalog.Text(messages.UserTitle, nil))

	var body string
	switch st := s.ctrl.State().(type) {
	case controller.Idle, controller.Loading:
		body = StatusStyle.Render(s.spinner.View() + " " + s.catalog.Text(messages.UserLoading, nil))

	case controller.NotFound:
		body = StatusStyle.Render(ErrorTextStyle.Render("✗ " + st.Message))

	default:
		body = lipgloss.NewStyle().PaddingLeft(2).Render(s.viewport.View())
		if s.ctrl.Deleting() {
			deleting := lipgloss.NewStyle().Foreground(WarningColor).Bold(true).
				Render(s.spinner.View() + " " + s.catalog.Text(messages.UserDeleting, nil))
			body = lipgloss.JoinVertical(lipgloss.Left, StatusStyle.Render(deleting), "", body)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body)
}

func (s *detailScreen) Help() help.KeyMap {
	return s.keys
}

func (s *detailScreen) Capturing() bool {
	return false
}

func (s *detailScreen) Close() {
	s.ctrl.Close()
}
