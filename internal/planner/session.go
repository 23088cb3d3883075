// Package planner composes the day grid: persisted time blocks, read-only
// calendar events, and the unscheduled pool, plus the drag state machine
// that turns pointer gestures into persisted intervals.
//
// All mutable view state lives in an explicit DaySession owned by the
// caller; a render is a pure function of its snapshot.
package planner

import (
	"context"

	"github.com/nvoskov/teamplan/internal/models"
	"github.com/nvoskov/teamplan/internal/store"
	"github.com/nvoskov/teamplan/internal/util"
)

// DaySession holds the schedule state for one (user, date) view.
type DaySession struct {
	store *store.Store

	Viewer string // who is looking
	Owner  string // whose day it is
	Date   string // "YYYY-MM-DD"

	TaskIDs    []string
	TimeBlocks []models.TimeBlock
	Events     []models.CalendarEvent
}

// IsOwnDay reports whether the viewer owns the displayed day. Only the
// owner's loads prune and only the owner may mutate.
func (s *DaySession) IsOwnDay() bool { return s.Viewer == s.Owner }

// LoadDaySession loads the focus record for (owner, date). When the viewer
// owns the day, stale references (deleted or done tasks) are pruned and the
// pruned record persisted; other viewers see the record as-is.
func LoadDaySession(ctx context.Context, st *store.Store, viewer, owner, date string) (*DaySession, error) {
	focus, err := st.LoadFocus(ctx, owner, date)
	if err != nil {
		return nil, err
	}
	if viewer == owner {
		focus, err = st.PruneFocus(ctx, focus)
		if err != nil {
			return nil, err
		}
	}
	return &DaySession{
		store:      st,
		Viewer:     viewer,
		Owner:      owner,
		Date:       date,
		TaskIDs:    focus.TaskIDs,
		TimeBlocks: focus.TimeBlocks,
	}, nil
}

// SetEvents attaches the externally fetched calendar events for render.
// They are never persisted.
func (s *DaySession) SetEvents(events []models.CalendarEvent) {
	s.Events = events
}

// blockFor returns the index of the task's block, or -1.
func (s *DaySession) blockFor(taskID string) int {
	for i, b := range s.TimeBlocks {
		if b.TaskID == taskID {
			return i
		}
	}
	return -1
}

// setBlock replaces or inserts the single block for a task, enforcing
// at-most-one-block-per-task, and ensures the task is planned.
func (s *DaySession) setBlock(taskID, start, end string) {
	block := models.TimeBlock{TaskID: taskID, Start: start, End: end}
	if i := s.blockFor(taskID); i >= 0 {
		s.TimeBlocks[i] = block
	} else {
		s.TimeBlocks = append(s.TimeBlocks, block)
	}
	if !util.ContainsString(s.TaskIDs, taskID) {
		s.TaskIDs = append(s.TaskIDs, taskID)
	}
}

// persist writes the full focus record back. Callers serialize their own
// gestures; cross-session writers race with last-save-wins semantics.
func (s *DaySession) persist(ctx context.Context) error {
	return s.store.SaveFocus(ctx, s.Owner, s.Date, s.TaskIDs, s.TimeBlocks)
}
