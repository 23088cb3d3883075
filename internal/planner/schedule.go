package planner

import (
	"sort"
	"time"

	"github.com/nvoskov/teamplan/internal/models"
	"github.com/nvoskov/teamplan/internal/timegrid"
	"github.com/nvoskov/teamplan/internal/util"
)

// EntryKind distinguishes mutable task blocks from read-only events.
type EntryKind int

const (
	EntryTask EntryKind = iota
	EntryEvent
)

// Entry is one positioned interval on the rendered grid.
type Entry struct {
	Kind   EntryKind
	TaskID string
	Title  string
	Start  string
	End    string
	Top    int
	Height int

	// Event-only decoration.
	HangoutLink   string
	AttendeeCount int
}

// Schedule is the renderable composition of one day. It is a pure value;
// the presentation layer only paints it.
type Schedule struct {
	Entries     []Entry
	Banners     []string // all-day event summaries
	Unscheduled []models.Task
	NowY        int
	NowVisible  bool
}

// Compose builds the schedule for a session snapshot. Task blocks are
// positioned at their true geometry (in-window by construction, never
// clipped); calendar events are clipped to the visible window; blocks whose
// task cannot be resolved are skipped silently.
func Compose(s *DaySession, tasks map[string]models.Task, geom timegrid.Geometry, now time.Time) Schedule {
	var sched Schedule
	gridHeight := geom.GridHeight()

	scheduled := make(map[string]bool)
	for _, b := range s.TimeBlocks {
		task, ok := tasks[b.TaskID]
		if !ok {
			continue
		}
		scheduled[b.TaskID] = true
		top, err1 := timegrid.TimeToSlotOffset(b.Start)
		span, err2 := timegrid.SlotSpan(b.Start, b.End)
		if err1 != nil || err2 != nil {
			continue
		}
		sched.Entries = append(sched.Entries, Entry{
			Kind:   EntryTask,
			TaskID: b.TaskID,
			Title:  task.Title,
			Start:  b.Start,
			End:    b.End,
			Top:    geom.OffsetToY(top),
			Height: geom.OffsetToY(span),
		})
	}

	for _, ev := range s.Events {
		if ev.AllDay {
			sched.Banners = append(sched.Banners, ev.Summary)
			continue
		}
		startMin := ev.Start.Hour()*60 + ev.Start.Minute()
		endMin := ev.End.Hour()*60 + ev.End.Minute()
		top := geom.OffsetToY(timegrid.MinutesToSlotOffset(startMin))
		height := geom.OffsetToY(timegrid.MinutesToSlotOffset(endMin)) - top
		top, height = timegrid.ClipToWindow(top, height, gridHeight)
		sched.Entries = append(sched.Entries, Entry{
			Kind:          EntryEvent,
			Title:         ev.Summary,
			Start:         timegrid.FormatClock(startMin),
			End:           timegrid.FormatClock(endMin),
			Top:           top,
			Height:        height,
			HangoutLink:   ev.HangoutLink,
			AttendeeCount: ev.AttendeeCount,
		})
	}

	sort.SliceStable(sched.Entries, func(i, j int) bool {
		return sched.Entries[i].Top < sched.Entries[j].Top
	})

	for _, id := range s.TaskIDs {
		if scheduled[id] {
			continue
		}
		if task, ok := tasks[id]; ok {
			sched.Unscheduled = append(sched.Unscheduled, task)
		}
	}

	offset, visible := timegrid.NowOffset(now)
	sched.NowVisible = visible
	if visible {
		sched.NowY = util.Clamp(geom.OffsetToY(offset), 0, gridHeight)
	}
	return sched
}
