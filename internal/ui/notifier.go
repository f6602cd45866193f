package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/userdeck/internal/controller"
)

// Notifier prints controller notices as single styled lines. It satisfies
// controller.Notifier.
type Notifier struct {
	printer *Printer
}

// NewNotifier prints through p.
func NewNotifier(p *Printer) *Notifier {
	return &Notifier{printer: p}
}

// Notify implements controller.Notifier
func (n *Notifier) Notify(notice controller.Notice) {
	n.printer.Println(RenderNotice(notice))
}

// RenderNotice renders "✓ Title: message" colored by level.
func RenderNotice(notice controller.Notice) string {
	marker, style := "•", lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)
	switch notice.Level {
	case controller.LevelSuccess:
		marker, style = SuccessMarker, SuccessTitleStyle
	case controller.LevelError:
		marker, style = FailureMarker, ErrorTitleStyle
	}

	line := "  " + style.Render(marker+" "+notice.Title)
	if notice.Message != "" {
		line += style.Render(":") + " " + ResultValueStyle.Render(notice.Message)
	}
	return line
}
