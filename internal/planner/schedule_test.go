package planner

import (
	"testing"
	"time"

	"github.com/nvoskov/teamplan/internal/models"
	"github.com/nvoskov/teamplan/internal/testutil"
)

func TestComposePositionsTaskBlocks(t *testing.T) {
	session := &DaySession{
		Viewer:     "anna",
		Owner:      "anna",
		Date:       "2026-02-15",
		TaskIDs:    []string{"t1", "t2"},
		TimeBlocks: []models.TimeBlock{{TaskID: "t1", Start: "10:00", End: "11:00"}},
	}
	tasks := map[string]models.Task{
		"t1": testutil.NewTask("t1").WithTitle("Scheduled").Build(),
		"t2": testutil.NewTask("t2").WithTitle("Pending").Build(),
	}

	noon := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	sched := Compose(session, tasks, testGeom(), noon)

	if len(sched.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(sched.Entries))
	}
	e := sched.Entries[0]
	if e.Kind != EntryTask || e.Top != 4 || e.Height != 4 {
		t.Fatalf("entry geometry wrong: %+v", e)
	}
	if len(sched.Unscheduled) != 1 || sched.Unscheduled[0].ID != "t2" {
		t.Fatalf("unscheduled pool wrong: %+v", sched.Unscheduled)
	}
	if !sched.NowVisible || sched.NowY != 12 {
		t.Fatalf("now line wrong: visible=%v y=%d", sched.NowVisible, sched.NowY)
	}
}

func TestComposeSkipsUnresolvedBlocks(t *testing.T) {
	session := &DaySession{
		Viewer:     "anna",
		Owner:      "anna",
		Date:       "2026-02-15",
		TaskIDs:    []string{"ghost"},
		TimeBlocks: []models.TimeBlock{{TaskID: "ghost", Start: "10:00", End: "11:00"}},
	}

	sched := Compose(session, map[string]models.Task{}, testGeom(), time.Now())
	if len(sched.Entries) != 0 {
		t.Fatalf("unresolved block must be skipped: %+v", sched.Entries)
	}
	if len(sched.Unscheduled) != 0 {
		t.Fatalf("unresolved task must not surface in the pool: %+v", sched.Unscheduled)
	}
}

func TestComposeClipsEventsAndLiftsBanners(t *testing.T) {
	session := &DaySession{Viewer: "anna", Owner: "anna", Date: "2026-02-15"}
	session.SetEvents([]models.CalendarEvent{
		{
			Summary: "Early sync",
			Start:   time.Date(2026, 2, 15, 8, 30, 0, 0, time.UTC),
			End:     time.Date(2026, 2, 15, 9, 30, 0, 0, time.UTC),
		},
		{Summary: "Offsite", AllDay: true},
	})

	sched := Compose(session, map[string]models.Task{}, testGeom(), time.Date(2026, 2, 15, 20, 0, 0, 0, time.UTC))

	if len(sched.Banners) != 1 || sched.Banners[0] != "Offsite" {
		t.Fatalf("banners wrong: %+v", sched.Banners)
	}
	if len(sched.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(sched.Entries))
	}
	e := sched.Entries[0]
	if e.Kind != EntryEvent || e.Top != 0 || e.Height != 2 {
		t.Fatalf("event must be clipped to the window: %+v", e)
	}
	if sched.NowVisible {
		t.Fatalf("20:00 is outside the window, now line should hide")
	}
}

func TestComposeSortsEntriesByTop(t *testing.T) {
	session := &DaySession{
		Viewer:  "anna",
		Owner:   "anna",
		Date:    "2026-02-15",
		TaskIDs: []string{"t1", "t2"},
		TimeBlocks: []models.TimeBlock{
			{TaskID: "t1", Start: "15:00", End: "16:00"},
			{TaskID: "t2", Start: "09:30", End: "10:00"},
		},
	}
	tasks := map[string]models.Task{
		"t1": testutil.NewTask("t1").Build(),
		"t2": testutil.NewTask("t2").Build(),
	}

	sched := Compose(session, tasks, testGeom(), time.Now())
	if len(sched.Entries) != 2 || sched.Entries[0].TaskID != "t2" {
		t.Fatalf("entries not sorted by position: %+v", sched.Entries)
	}
}
