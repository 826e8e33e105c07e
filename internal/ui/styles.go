package ui

import (
	"github.com/charmbracelet/lipgloss"

	"maru/internal/task"
)

type styles struct {
	Title      lipgloss.Style
	Stats      lipgloss.Style
	PaneHeader lipgloss.Style
	Selected   lipgloss.Style
	Done       lipgloss.Style
	Overdue    lipgloss.Style
	Help       lipgloss.Style
	Info       lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
}

// newStyles builds the palette for the persisted theme flag.
func newStyles(dark bool) styles {
	s := styles{
		Title:      lipgloss.NewStyle().Bold(true),
		PaneHeader: lipgloss.NewStyle().Bold(true).Underline(true),
		Selected:   lipgloss.NewStyle().Bold(true),
		Overdue:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Success:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
	if dark {
		s.Title = s.Title.Foreground(lipgloss.Color("212"))
		s.Stats = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		s.PaneHeader = s.PaneHeader.Foreground(lipgloss.Color("111"))
		s.Selected = s.Selected.Foreground(lipgloss.Color("229"))
		s.Done = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		s.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	} else {
		s.Title = s.Title.Foreground(lipgloss.Color("53"))
		s.Stats = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
		s.PaneHeader = s.PaneHeader.Foreground(lipgloss.Color("26"))
		s.Selected = s.Selected.Foreground(lipgloss.Color("17"))
		s.Done = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Strikethrough(true)
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
		s.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("25"))
	}
	return s
}

func (s styles) forSeverity(sev task.Severity) lipgloss.Style {
	switch sev {
	case task.SeveritySuccess:
		return s.Success
	case task.SeverityWarning:
		return s.Warning
	case task.SeverityError:
		return s.Error
	default:
		return s.Info
	}
}
