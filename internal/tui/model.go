// Package tui is the terminal presentation adapter for the day planner.
// Geometry and scheduling rules live in internal/planner; this package
// paints schedule snapshots and forwards pointer events.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nvoskov/teamplan/internal/calendar"
	"github.com/nvoskov/teamplan/internal/config"
	"github.com/nvoskov/teamplan/internal/models"
	"github.com/nvoskov/teamplan/internal/planner"
	"github.com/nvoskov/teamplan/internal/store"
	"github.com/nvoskov/teamplan/internal/timegrid"
)

// viewMode selects the active surface.
type viewMode int

const (
	viewGrid viewMode = iota
	viewPicker
	viewDetail
)

// MainModel is the root bubbletea model.
type MainModel struct {
	store    *store.Store
	calendar calendar.Service
	theme    Theme
	geom     timegrid.Geometry

	viewer  string
	date    string
	session *planner.DaySession
	tasks   map[string]models.Task
	sched   planner.Schedule

	drag       *planner.DragController
	mode       viewMode
	picker     pickerState
	detail     detailState
	pickerSlot int

	width, height int
	now           time.Time
	// tickGen invalidates now-indicator ticks from a replaced view: a tick
	// carrying a stale generation is dropped instead of writing into the
	// new view.
	tickGen int

	errText    string
	calExpired bool
}

// NewMainModel builds the root model for a viewer's own day.
func NewMainModel(st *store.Store, cal calendar.Service, viewer string) MainModel {
	geom := timegrid.Geometry{SlotHeight: config.GridSlotHeight}
	return MainModel{
		store:    st,
		calendar: cal,
		theme:    DefaultTheme(),
		geom:     geom,
		viewer:   viewer,
		date:     time.Now().Format("2006-01-02"),
		drag:     planner.NewDragController(geom),
		tasks:    make(map[string]models.Task),
		now:      time.Now(),
	}
}

// Messages.
type sessionLoadedMsg struct {
	session *planner.DaySession
	tasks   map[string]models.Task
}
type eventsLoadedMsg struct {
	events  []models.CalendarEvent
	expired bool
	err     error
}
type nowTickMsg struct {
	gen int
	at  time.Time
}
type errMsg struct{ err error }

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(m.loadSessionCmd(), m.loadEventsCmd(), m.tickCmd())
}

func (m MainModel) loadSessionCmd() tea.Cmd {
	st, viewer, date := m.store, m.viewer, m.date
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		session, err := planner.LoadDaySession(ctx, st, viewer, viewer, date)
		if err != nil {
			return errMsg{err}
		}
		all, err := st.ListTasks(ctx)
		if err != nil {
			return errMsg{err}
		}
		tasks := make(map[string]models.Task, len(all))
		for _, t := range all {
			tasks[t.ID] = t
		}
		return sessionLoadedMsg{session: session, tasks: tasks}
	}
}

func (m MainModel) loadEventsCmd() tea.Cmd {
	cal, date := m.calendar, m.date
	if cal == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		events, err := cal.EventsForDate(ctx, date)
		if err == calendar.ErrAuthExpired {
			return eventsLoadedMsg{expired: true}
		}
		if err != nil {
			return eventsLoadedMsg{err: err}
		}
		return eventsLoadedMsg{events: events}
	}
}

func (m MainModel) tickCmd() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(config.NowTickSeconds*time.Second, func(at time.Time) tea.Msg {
		return nowTickMsg{gen: gen, at: at}
	})
}

func (m *MainModel) recompose() {
	if m.session == nil {
		return
	}
	m.sched = planner.Compose(m.session, m.tasks, m.geom, m.now)
}
