package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/userdeck/internal/controller"
	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/messages"
)

// ToastDuration is how long a notice stays on screen.
const ToastDuration = 3 * time.Second

// screen is one entry of the navigation stack. Screens are pointers and
// mutate in Update.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	Help() help.KeyMap
	// Capturing reports whether the screen wants every key (e.g. while
	// typing a filter), so global keys must not fire.
	Capturing() bool
	Close()
}

// addressed is implemented by results of a screen's own commands. The app
// delivers them only to the screen that started the command.
type addressed interface {
	owner() int
}

type toastExpiredMsg struct {
	seq int
}

type toast struct {
	notice controller.Notice
	seq    int
}

// App is the root model: a navigation stack of screens plus the modal
// confirmation and toast overlays the controllers drive through a Bridge.
type App struct {
	ctx     context.Context
	deps    controller.Deps
	catalog *messages.Catalog
	api     string
	log     *zap.Logger

	stack  []screen
	ids    []int
	nextID int

	confirm  *confirmModal
	toast    *toast
	toastSeq int

	Width  int
	Height int
	Help   help.Model
}

// NewApp creates the app with the user list as its root screen. Controller
// collaborators other than the gateway are the bridge.
func NewApp(ctx context.Context, opts Options, bridge *Bridge) *App {
	if opts.Messages == nil {
		opts.Messages = messages.Default()
	}
	app := &App{
		ctx: ctx,
		deps: controller.Deps{
			Gateway:   opts.Gateway,
			Confirmer: bridge,
			Notifier:  bridge,
			Navigator: bridge,
			Messages:  opts.Messages,
		},
		catalog: opts.Messages,
		api:     opts.APIBaseURL,
		log:     logging.Named("tui"),
		Width:   80,
		Height:  24,
		Help:    help.New(),
	}
	app.push(app.newScreen(controller.Route{Target: controller.TargetUsers}))
	return app
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if top := a.top(); top != nil {
		return top.Init()
	}
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.Width = msg.Width
		a.Height = msg.Height
		a.Help.Width = msg.Width
		return a, a.broadcast(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, a.quit()
		}
		if a.confirm != nil {
			a.confirm = a.confirm.update(msg)
			return a, nil
		}
		top := a.top()
		if top == nil {
			return a, tea.Quit
		}
		if msg.String() == "?" && !top.Capturing() {
			a.Help.ShowAll = !a.Help.ShowAll
			return a, nil
		}
		return a, top.Update(msg)

	case confirmRequestMsg:
		if a.confirm != nil {
			// One modal at a time.
			msg.reply <- controller.ChoiceCancel
			return a, nil
		}
		a.confirm = newConfirmModal(msg.prompt, msg.reply)
		return a, nil

	case noticeMsg:
		a.toastSeq++
		a.toast = &toast{notice: msg.notice, seq: a.toastSeq}
		seq := a.toastSeq
		return a, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
			return toastExpiredMsg{seq: seq}
		})

	case toastExpiredMsg:
		if a.toast != nil && a.toast.seq == msg.seq {
			a.toast = nil
		}
		return a, nil

	case navigateMsg:
		return a, a.navigate(msg.route)

	case backMsg:
		return a, a.back()

	case spinner.TickMsg:
		// Each spinner ignores ticks that are not its own.
		return a, a.broadcast(msg)

	case addressed:
		for i, id := range a.ids {
			if id == msg.owner() {
				return a, a.stack[i].Update(msg)
			}
		}
		a.log.Debug("Dropping result for closed screen", zap.Int("screen", msg.owner()))
		return a, nil
	}

	if top := a.top(); top != nil {
		return a, top.Update(msg)
	}
	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	if a.confirm != nil {
		return RenderModal(a.confirm.view(SafeModalWidth(ModalWidth, a.Width)), a.Width, a.Height)
	}

	top := a.top()
	if top == nil {
		return ""
	}

	footer := a.Help.View(top.Help())

	innerWidth := a.Width - 4
	content := top.View(innerWidth, a.Height)
	if a.toast != nil {
		content = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.PlaceHorizontal(innerWidth, lipgloss.Right, renderToast(a.toast.notice)),
			content,
		)
	}

	return RenderApplicationContainer(BuildHeaderContent(a.api), content, footer, a.Width, a.Height)
}

// Depth returns the number of screens on the stack.
func (a *App) Depth() int {
	return len(a.stack)
}

// Close tears down every screen. Late results from their commands are
// dropped by the controllers.
func (a *App) Close() {
	for len(a.stack) > 0 {
		a.pop()
	}
	if a.confirm != nil {
		a.confirm.answer(controller.ChoiceCancel)
		a.confirm = nil
	}
}

func (a *App) quit() tea.Cmd {
	a.Close()
	return tea.Quit
}

func (a *App) top() screen {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1]
}

func (a *App) push(s screen) {
	a.nextID++
	a.stack = append(a.stack, s)
	a.ids = append(a.ids, a.nextID)
	if owned, ok := s.(interface{ setID(int) }); ok {
		owned.setID(a.nextID)
	}
}

func (a *App) pop() {
	n := len(a.stack) - 1
	a.stack[n].Close()
	a.stack = a.stack[:n]
	a.ids = a.ids[:n]
}

func (a *App) newScreen(r controller.Route) screen {
	switch r.Target {
	case controller.TargetUser:
		return newDetailScreen(a.ctx, r.ID, a.deps, a.catalog)
	case controller.TargetUserForm:
		return newFormScreen(r.ID, a.catalog)
	default:
		return newListScreen(a.ctx, a.deps, a.catalog)
	}
}

func (a *App) navigate(r controller.Route) tea.Cmd {
	a.log.Debug("Navigate", zap.String("target", string(r.Target)), zap.String("id", r.ID))

	if r.Target == controller.TargetUsers {
		// The list is the root; unwind to it.
		for len(a.stack) > 1 {
			a.pop()
		}
		if len(a.stack) == 1 {
			return nil
		}
	}

	s := a.newScreen(r)
	a.push(s)
	size := tea.WindowSizeMsg{Width: a.Width, Height: a.Height}
	return tea.Batch(s.Update(size), s.Init())
}

func (a *App) back() tea.Cmd {
	if len(a.stack) > 0 {
		a.pop()
	}
	if len(a.stack) == 0 {
		return tea.Quit
	}
	return nil
}

func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.stack))
	for _, s := range a.stack {
		cmds = append(cmds, s.Update(msg))
	}
	return tea.Batch(cmds...)
}

func renderToast(n controller.Notice) string {
	color, marker := PrimaryColor, "•"
	switch n.Level {
	case controller.LevelSuccess:
		color, marker = SecondaryColor, "✓"
	case controller.LevelError:
		color, marker = ErrorColor, "✗"
	}

	title := lipgloss.NewStyle().Foreground(color).Bold(true).Render(marker + " " + n.Title)
	body := strings.TrimSpace(n.Message)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(ToastWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}
