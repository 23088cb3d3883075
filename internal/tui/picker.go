package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nvoskov/teamplan/internal/models"
)

// pickerState is the empty-slot task picker: the viewer's open tasks,
// narrowed by a filter input, capped upstream by the planner.
type pickerState struct {
	input      textinput.Model
	candidates []models.Task
	cursor     int
}

func newPickerState(candidates []models.Task) pickerState {
	input := textinput.New()
	input.Placeholder = "filter tasks"
	input.CharLimit = 60
	return pickerState{input: input, candidates: candidates}
}

func (p pickerState) focusCmd() tea.Cmd {
	return p.input.Focus()
}

// visible applies the filter text as a case-insensitive substring match.
func (p pickerState) visible() []models.Task {
	filter := strings.ToLower(strings.TrimSpace(p.input.Value()))
	if filter == "" {
		return p.candidates
	}
	var out []models.Task
	for _, t := range p.candidates {
		if strings.Contains(strings.ToLower(t.Title), filter) {
			out = append(out, t)
		}
	}
	return out
}

func (p pickerState) selected() (models.Task, bool) {
	visible := p.visible()
	if len(visible) == 0 || p.cursor >= len(visible) {
		return models.Task{}, false
	}
	return visible[p.cursor], true
}

func (p pickerState) update(msg tea.Msg) (pickerState, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		case "down", "ctrl+n":
			if p.cursor < len(p.visible())-1 {
				p.cursor++
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.cursor >= len(p.visible()) {
		p.cursor = 0
	}
	return p, cmd
}
