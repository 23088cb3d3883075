package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/golang/mock/gomock"
	"github.com/nvoskov/teamplan/internal/calendar"
	"github.com/nvoskov/teamplan/internal/models"
	"github.com/nvoskov/teamplan/internal/store"
)

func setupTestStore(t *testing.T, ctx context.Context) *store.Store {
	t.Helper()
	st, err := store.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Logf("store close failed: %v", err)
		}
	})
	return st
}

func TestSessionLoadedComposesView(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t, ctx)

	task, err := st.CreateTask(ctx, store.TaskSeed{Title: "Homepage redesign", Assignees: []string{"anna"}})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	today := time.Now().Format("2006-01-02")
	err = st.SaveFocus(ctx, "anna", today, []string{task.ID},
		[]models.TimeBlock{{TaskID: task.ID, Start: "10:00", End: "11:00"}})
	if err != nil {
		t.Fatalf("SaveFocus failed: %v", err)
	}

	m := NewMainModel(st, nil, "anna")
	msg := m.loadSessionCmd()()
	loaded, ok := msg.(sessionLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want sessionLoadedMsg", msg)
	}
	updated, _ := m.Update(loaded)
	m = updated.(MainModel)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Homepage redesign 10:00-11:00") {
		t.Fatalf("scheduled block missing from view:\n%s", view)
	}
	if !strings.Contains(view, "09:00") {
		t.Fatalf("hour gutter missing from view:\n%s", view)
	}
}

func TestUnscheduledTasksListed(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t, ctx)

	task, err := st.CreateTask(ctx, store.TaskSeed{Title: "Floating work", Assignees: []string{"anna"}})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	today := time.Now().Format("2006-01-02")
	if err := st.SaveFocus(ctx, "anna", today, []string{task.ID}, nil); err != nil {
		t.Fatalf("SaveFocus failed: %v", err)
	}

	m := NewMainModel(st, nil, "anna")
	updated, _ := m.Update(m.loadSessionCmd()())
	m = updated.(MainModel)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Unscheduled:") || !strings.Contains(view, "Floating work") {
		t.Fatalf("unscheduled pool missing from view:\n%s", view)
	}
}

func TestAuthExpiredShowsReconnectBanner(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t, ctx)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cal := NewMockService(ctrl)
	cal.EXPECT().EventsForDate(gomock.Any(), gomock.Any()).Return(nil, calendar.ErrAuthExpired)

	m := NewMainModel(st, cal, "anna")
	updated, _ := m.Update(m.loadSessionCmd()())
	m = updated.(MainModel)

	msg := m.loadEventsCmd()()
	events, ok := msg.(eventsLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want eventsLoadedMsg", msg)
	}
	if !events.expired {
		t.Fatalf("expired auth not flagged: %+v", events)
	}
	updated, _ = m.Update(events)
	m = updated.(MainModel)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "calendar needs reconnect") {
		t.Fatalf("reconnect banner missing from view:\n%s", view)
	}
}

func TestEventsAttachToSession(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t, ctx)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cal := NewMockService(ctrl)
	cal.EXPECT().EventsForDate(gomock.Any(), gomock.Any()).Return([]models.CalendarEvent{
		{
			Summary: "Design sync",
			Start:   time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC),
			End:     time.Date(2026, 2, 15, 10, 30, 0, 0, time.UTC),
		},
	}, nil)

	m := NewMainModel(st, cal, "anna")
	updated, _ := m.Update(m.loadSessionCmd()())
	m = updated.(MainModel)
	updated, _ = m.Update(m.loadEventsCmd()())
	m = updated.(MainModel)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Design sync") {
		t.Fatalf("calendar event missing from view:\n%s", view)
	}
}

func TestStaleNowTickDropped(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t, ctx)

	m := NewMainModel(st, nil, "anna")
	updated, _ := m.Update(m.loadSessionCmd()())
	m = updated.(MainModel)

	// Switching the date tears the view down and bumps the generation.
	updated, _ = m.updateKey(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(MainModel)

	// A tick from the previous view must be dropped without rescheduling.
	updated, cmd := m.Update(nowTickMsg{gen: 0, at: time.Now()})
	m = updated.(MainModel)
	if cmd != nil {
		t.Fatalf("stale tick rescheduled itself")
	}

	// A current-generation tick keeps the loop alive.
	_, cmd = m.Update(nowTickMsg{gen: m.tickGen, at: time.Now()})
	if cmd == nil {
		t.Fatalf("fresh tick did not reschedule")
	}
}

func TestPickerFilterAndSelection(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", Title: "Homepage redesign", Priority: models.PriorityHigh},
		{ID: "t2", Title: "Deploy staging", Priority: models.PriorityMedium},
	}
	p := newPickerState(tasks)

	if got := p.visible(); len(got) != 2 {
		t.Fatalf("unfiltered picker: got %d, want 2", len(got))
	}

	p.input.SetValue("deploy")
	visible := p.visible()
	if len(visible) != 1 || visible[0].ID != "t2" {
		t.Fatalf("filter wrong: %+v", visible)
	}
	selected, ok := p.selected()
	if !ok || selected.ID != "t2" {
		t.Fatalf("selection wrong: %+v", selected)
	}

	p.input.SetValue("zzz")
	if _, ok := p.selected(); ok {
		t.Fatalf("selection from an empty filter result")
	}
}
