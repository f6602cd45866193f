package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/userdeck/internal/urls"
	"github.com/muurk/userdeck/internal/version"
)

// AppName is shown in the container header.
const AppName = "USERDECK"

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 60
	ModalWidth       = 56
	ToastWidth       = 44
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5555") // Red

	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = PrimaryColor
	HighlightColor = SecondaryColor
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0, 0, 2)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true).
			PaddingLeft(2)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	StatusStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				MarginTop(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Width(12)

	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	ButtonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Foreground(SubtleColor).
			Padding(0, 2)

	SelectedButtonStyle = ButtonStyle.
				BorderForeground(HighlightColor).
				Foreground(HighlightColor).
				Bold(true)

	DestructiveButtonStyle = ButtonStyle.
				BorderForeground(ErrorColor).
				Foreground(ErrorColor).
				Bold(true)
)

// RenderTitle renders a screen title
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSubtitle renders a subtitle
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// BuildHeaderContent creates header content with app name, version and the
// API the app is talking to.
func BuildHeaderContent(api string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + version.Version)

	if api == "" {
		api = urls.ProjectHome
	}
	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(api)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps every screen: header, content and a
// footer with context help, filling the terminal.
func RenderApplicationContainer(header, content, footer string, width, height int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	styledHeader := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1).
		Render(header)

	styledFooter := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1).
		Foreground(SubtleColor).
		Render(footer)

	// Content takes whatever the header and footer leave.
	contentHeight := height - 2 - lipgloss.Height(styledHeader) - lipgloss.Height(styledFooter)
	if contentHeight < 1 {
		contentHeight = 1
	}
	styledContent := lipgloss.NewStyle().
		Width(width - 4).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	inner := lipgloss.JoinVertical(lipgloss.Left, styledHeader, styledContent, styledFooter)

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(width - 2).
		Render(inner)
}

// RenderModal centers modal content over a dimmed background.
func RenderModal(modal string, width, height int) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("240")),
	)
}

// SafeModalWidth keeps a modal inside the terminal.
func SafeModalWidth(requested, terminalWidth int) int {
	maxWidth := terminalWidth - 4
	if maxWidth < 40 {
		maxWidth = 40
	}
	if requested < maxWidth {
		return requested
	}
	return maxWidth
}
