package tui

import "github.com/charmbracelet/lipgloss"

// Theme bundles the lipgloss styles for the day grid.
type Theme struct {
	Title       lipgloss.Style
	HourGutter  lipgloss.Style
	EmptySlot   lipgloss.Style
	TaskBlock   lipgloss.Style
	DragBlock   lipgloss.Style
	EventBlock  lipgloss.Style
	NowLine     lipgloss.Style
	Banner      lipgloss.Style
	Unscheduled lipgloss.Style
	Help        lipgloss.Style
	Error       lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		HourGutter:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		EmptySlot:   lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		TaskBlock:   lipgloss.NewStyle().Background(lipgloss.Color("25")).Foreground(lipgloss.Color("231")),
		DragBlock:   lipgloss.NewStyle().Background(lipgloss.Color("93")).Foreground(lipgloss.Color("231")),
		EventBlock:  lipgloss.NewStyle().Background(lipgloss.Color("237")).Foreground(lipgloss.Color("250")),
		NowLine:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Banner:      lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("179")),
		Unscheduled: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
