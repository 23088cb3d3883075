package planner

import (
	"context"
	"fmt"

	"github.com/nvoskov/teamplan/internal/config"
	"github.com/nvoskov/teamplan/internal/models"
	"github.com/nvoskov/teamplan/internal/store"
	"github.com/nvoskov/teamplan/internal/timegrid"
	"github.com/nvoskov/teamplan/internal/util"
)

// ErrNotOwner guards mutations against a viewer editing someone else's day.
var ErrNotOwner = fmt.Errorf("cannot modify another person's day")

// DropTask schedules a task dropped at vertical position y, with the
// default two-slot duration. An existing block for the task is replaced,
// never duplicated.
func (s *DaySession) DropTask(ctx context.Context, geom timegrid.Geometry, taskID string, y int) error {
	if !s.IsOwnDay() {
		return ErrNotOwner
	}
	slot := geom.YToSlot(y)
	return s.placeDefault(ctx, taskID, slot)
}

// PickTask schedules a task into the clicked slot plus the next one,
// identical semantics to DropTask.
func (s *DaySession) PickTask(ctx context.Context, taskID string, slotIdx int) error {
	if !s.IsOwnDay() {
		return ErrNotOwner
	}
	slot := util.Clamp(slotIdx, 0, config.SlotsPerDay-config.DefaultBlockSlots)
	return s.placeDefault(ctx, taskID, slot)
}

func (s *DaySession) placeDefault(ctx context.Context, taskID string, slot int) error {
	start := timegrid.SlotOffsetToTime(slot)
	end := timegrid.SlotOffsetToTime(slot + config.DefaultBlockSlots)
	s.setBlock(taskID, start, end)
	return s.persist(ctx)
}

// CommitGesture applies a finished drag or resize: the final geometry is
// converted back to wall-clock strings and persisted.
func (s *DaySession) CommitGesture(ctx context.Context, geom timegrid.Geometry, out Outcome) error {
	if out.Kind != OutcomeCommit {
		return nil
	}
	if !s.IsOwnDay() {
		return ErrNotOwner
	}
	i := s.blockFor(out.TaskID)
	if i < 0 {
		return nil
	}
	topSlots := out.Top / geom.SlotHeight
	heightSlots := out.Height / geom.SlotHeight
	if heightSlots < 1 {
		heightSlots = 1
	}
	start := timegrid.SlotOffsetToTime(topSlots)
	end := timegrid.SlotOffsetToTime(topSlots + heightSlots)
	s.TimeBlocks[i] = models.TimeBlock{TaskID: out.TaskID, Start: start, End: end}
	return s.persist(ctx)
}

// Unschedule removes a task's block but keeps the task planned for the day.
func (s *DaySession) Unschedule(ctx context.Context, taskID string) error {
	if !s.IsOwnDay() {
		return ErrNotOwner
	}
	i := s.blockFor(taskID)
	if i < 0 {
		return nil
	}
	s.TimeBlocks = append(s.TimeBlocks[:i], s.TimeBlocks[i+1:]...)
	return s.persist(ctx)
}

// PlanTask adds a task to the day's list without scheduling it.
func (s *DaySession) PlanTask(ctx context.Context, taskID string) error {
	if !s.IsOwnDay() {
		return ErrNotOwner
	}
	if util.ContainsString(s.TaskIDs, taskID) {
		return nil
	}
	s.TaskIDs = append(s.TaskIDs, taskID)
	return s.persist(ctx)
}

// UnplanTask removes a task from the day entirely: its block and its place
// in the planned list.
func (s *DaySession) UnplanTask(ctx context.Context, taskID string) error {
	if !s.IsOwnDay() {
		return ErrNotOwner
	}
	if i := s.blockFor(taskID); i >= 0 {
		s.TimeBlocks = append(s.TimeBlocks[:i], s.TimeBlocks[i+1:]...)
	}
	s.TaskIDs = util.RemoveString(s.TaskIDs, taskID)
	return s.persist(ctx)
}

// PickerCandidates returns the tasks offered by the empty-slot picker: the
// viewer's open tasks excluding backlog, capped at the configured limit.
// No further ranking is applied.
func PickerCandidates(ctx context.Context, st *store.Store, viewer string) ([]models.Task, error) {
	tasks, err := st.TasksForAssignee(ctx, viewer)
	if err != nil {
		return nil, err
	}
	out := make([]models.Task, 0, config.PickerTaskLimit)
	for _, t := range tasks {
		if t.Status == models.StatusDone || t.Status == models.StatusBacklog {
			continue
		}
		out = append(out, t)
		if len(out) == config.PickerTaskLimit {
			break
		}
	}
	return out, nil
}
