package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/userdeck/internal/controller"
	"github.com/muurk/userdeck/internal/messages"
	"github.com/muurk/userdeck/internal/users"
)

type listLoadedMsg struct {
	screen int
}

func (m listLoadedMsg) owner() int { return m.screen }

type listDeleteDoneMsg struct {
	screen  int
	outcome controller.DeleteOutcome
}

func (m listDeleteDoneMsg) owner() int { return m.screen }

// userItem wraps a User for use with bubbles/list
type userItem struct {
	user users.User
}

func (i userItem) FilterValue() string {
	return i.user.Name + " " + i.user.Username + " " + i.user.Email
}

func (i userItem) Title() string {
	return i.user.Label()
}

func (i userItem) Description() string {
	parts := []string{}
	if i.user.Username != "" {
		parts = append(parts, "@"+i.user.Username)
	}
	if i.user.Email != "" {
		parts = append(parts, i.user.Email)
	}
	return strings.Join(parts, " • ")
}

// listScreen shows every user and deletes rows in place.
type listScreen struct {
	id      int
	ctx     context.Context
	ctrl    *controller.ListController
	catalog *messages.Catalog

	list    list.Model
	spinner spinner.Model
	keys    listKeyMap

	// deleting counts delete requests still running.
	deleting int
}

func newListScreen(ctx context.Context, deps controller.Deps, catalog *messages.Catalog) *listScreen {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(HighlightColor).
		BorderForeground(HighlightColor)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		BorderForeground(HighlightColor)

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	return &listScreen{
		ctx:     ctx,
		ctrl:    controller.NewListController(ctx, deps),
		catalog: catalog,
		list:    l,
		spinner: s,
		keys:    newListKeyMap(),
	}
}

func (s *listScreen) setID(id int) {
	s.id = id
}

func (s *listScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.load(s.ctrl.Load))
}

func (s *listScreen) load(fn func(context.Context) controller.State) tea.Cmd {
	id := s.id
	return func() tea.Msg {
		fn(s.ctx)
		return listLoadedMsg{screen: id}
	}
}

func (s *listScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Title, status line and container chrome.
		s.list.SetSize(msg.Width-6, msg.Height-12)
		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd

	case listLoadedMsg:
		return s.sync()

	case listDeleteDoneMsg:
		s.deleting--
		return s.sync()

	case tea.KeyMsg:
		if s.Capturing() {
			break
		}
		switch {
		case key.Matches(msg, s.keys.Quit):
			return tea.Quit
		case key.Matches(msg, s.keys.Refresh):
			return s.load(s.ctrl.Refresh)
		case key.Matches(msg, s.keys.New):
			return s.run(s.ctrl.Create)
		}

		// Rows are hidden behind the spinner until the list is Loaded again.
		if u, ok := s.selected(); ok && s.loaded() {
			switch {
			case key.Matches(msg, s.keys.Open):
				return s.run(func() { s.ctrl.Open(u.ID) })
			case key.Matches(msg, s.keys.Edit):
				return s.run(func() { s.ctrl.Edit(u.ID) })
			case key.Matches(msg, s.keys.Delete):
				return s.delete(u.ID)
			}
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return cmd
}

// run calls a navigating controller method off the event loop.
func (s *listScreen) run(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

func (s *listScreen) delete(userID int) tea.Cmd {
	s.deleting++
	id := s.id
	return func() tea.Msg {
		return listDeleteDoneMsg{screen: id, outcome: s.ctrl.RequestDelete(s.ctx, userID)}
	}
}

// sync copies the controller's records into the list widget, keeping the
// cursor on the same row where possible.
func (s *listScreen) sync() tea.Cmd {
	records := s.ctrl.Users()
	items := make([]list.Item, len(records))
	for i, u := range records {
		items[i] = userItem{user: u}
	}
	index := s.list.Index()
	cmd := s.list.SetItems(items)
	if index >= len(items) {
		index = len(items) - 1
	}
	if index >= 0 {
		s.list.Select(index)
	}
	return cmd
}

func (s *listScreen) loaded() bool {
	_, ok := controller.Value[[]users.User](s.ctrl.State())
	return ok
}

func (s *listScreen) selected() (users.User, bool) {
	item, ok := s.list.SelectedItem().(userItem)
	if !ok {
		return users.User{}, false
	}
	return item.user, true
}

func (s *listScreen) View(width, height int) string {
	title := RenderTitle(s.catalog.Text(messages.UsersTitle, nil))

	var body string
	switch st := s.ctrl.State().(type) {
	case controller.Idle, controller.Loading:
		body = StatusStyle.Render(s.spinner.View() + " " + s.catalog.Text(messages.UsersLoading, nil))

	case controller.Failed:
		body = lipgloss.JoinVertical(lipgloss.Left,
			StatusStyle.Render(ErrorTextStyle.Render("✗ "+st.Message)),
			"",
			RenderSubtitle(s.catalog.Text(messages.UsersRetry, nil)),
		)

	case controller.Loaded[[]users.User]:
		status := s.catalog.Count(messages.UsersCount, len(st.Value))
		if s.deleting > 0 {
			status += "  " + s.spinner.View()
		}
		if len(st.Value) == 0 {
			body = lipgloss.JoinVertical(lipgloss.Left,
				RenderSubtitle(status),
				"",
				StatusStyle.Render(s.catalog.Text(messages.UsersEmpty, nil)),
			)
			break
		}
		body = lipgloss.JoinVertical(lipgloss.Left, RenderSubtitle(status), "", s.list.View())

	default:
		body = StatusStyle.Render(fmt.Sprintf("%v", st))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body)
}

func (s *listScreen) Help() help.KeyMap {
	return s.keys
}

func (s *listScreen) Capturing() bool {
	return s.list.FilterState() == list.Filtering
}

func (s *listScreen) Close() {
	s.ctrl.Close()
}
