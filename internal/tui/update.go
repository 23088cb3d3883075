package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nvoskov/teamplan/internal/planner"
)

// gridTop is the terminal row where slot 0 starts: title row plus banner
// row.
const gridTop = 2

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case sessionLoadedMsg:
		m.session = msg.session
		m.tasks = msg.tasks
		m.recompose()
		return m, nil

	case eventsLoadedMsg:
		m.calExpired = msg.expired
		if msg.err != nil {
			m.errText = "calendar unavailable"
			return m, nil
		}
		if m.session != nil {
			m.session.SetEvents(msg.events)
			m.recompose()
		}
		return m, nil

	case nowTickMsg:
		if msg.gen != m.tickGen {
			// A tick from a torn-down view; ignore it.
			return m, nil
		}
		m.now = msg.at
		m.recompose()
		return m, m.tickCmd()

	case errMsg:
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	if m.mode == viewPicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m MainModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case viewPicker:
		return m.updatePickerKey(msg)
	case viewDetail:
		if msg.String() == "esc" || msg.String() == "q" {
			m.mode = viewGrid
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "left", "h":
		return m.switchDate(-1)
	case "right", "l":
		return m.switchDate(1)
	case "r":
		return m, m.loadEventsCmd()
	}
	return m, nil
}

// switchDate tears down the current view: the tick generation is bumped so
// in-flight now ticks cannot touch the replacement.
func (m MainModel) switchDate(days int) (tea.Model, tea.Cmd) {
	t, err := time.Parse("2006-01-02", m.date)
	if err != nil {
		return m, nil
	}
	m.date = t.AddDate(0, 0, days).Format("2006-01-02")
	m.session = nil
	m.tickGen++
	return m, tea.Batch(m.loadSessionCmd(), m.loadEventsCmd(), m.tickCmd())
}

func (m MainModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != viewGrid || m.session == nil {
		return m, nil
	}
	gridY := msg.Y - gridTop

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if entry, ok := m.entryAt(gridY); ok && entry.Kind == planner.EntryTask {
			mode := planner.DragMove
			if gridY == entry.Top+entry.Height-1 {
				mode = planner.DragResize
			}
			m.drag.PointerDown(entry.TaskID, mode, msg.X, gridY, entry.Top, entry.Height)
			return m, nil
		}
		if gridY >= 0 && gridY < m.geom.GridHeight() && m.session.IsOwnDay() {
			m.pickerSlot = gridY / m.geom.SlotHeight
			return m.openPicker()
		}
		return m, nil

	case tea.MouseActionMotion:
		m.drag.PointerMove(msg.X, gridY)
		return m, nil

	case tea.MouseActionRelease:
		outcome := m.drag.PointerUp()
		switch outcome.Kind {
		case planner.OutcomeClick:
			return m.openDetail(outcome.TaskID)
		case planner.OutcomeCommit:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := m.session.CommitGesture(ctx, m.geom, outcome); err != nil {
				m.errText = err.Error()
			}
			m.recompose()
		}
		return m, nil
	}
	return m, nil
}

// entryAt finds the topmost task entry covering a grid row.
func (m MainModel) entryAt(gridY int) (planner.Entry, bool) {
	for _, e := range m.sched.Entries {
		if e.Kind != planner.EntryTask {
			continue
		}
		if gridY >= e.Top && gridY < e.Top+e.Height {
			return e, true
		}
	}
	return planner.Entry{}, false
}

func (m MainModel) openPicker() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	candidates, err := planner.PickerCandidates(ctx, m.store, m.viewer)
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}
	m.picker = newPickerState(candidates)
	m.mode = viewPicker
	return m, m.picker.focusCmd()
}

func (m MainModel) updatePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = viewGrid
		return m, nil
	case "enter":
		task, ok := m.picker.selected()
		if !ok {
			return m, nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.session.PickTask(ctx, task.ID, m.pickerSlot); err != nil {
			m.errText = err.Error()
		}
		if _, known := m.tasks[task.ID]; !known {
			m.tasks[task.ID] = task
		}
		m.mode = viewGrid
		m.recompose()
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.update(msg)
	return m, cmd
}

func (m MainModel) openDetail(taskID string) (tea.Model, tea.Cmd) {
	task, ok := m.tasks[taskID]
	if !ok {
		return m, nil
	}
	m.detail = newDetailState(task)
	m.mode = viewDetail
	return m, nil
}
