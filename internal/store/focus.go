package store

import (
	"context"
	"sort"

	"github.com/nvoskov/teamplan/internal/models"
)

func focusKey(userID, date string) string {
	return userID + "_" + date
}

// LoadFocus returns the DailyFocus for a (user, date). A missing record is
// an empty day, never an error.
func (s *Store) LoadFocus(ctx context.Context, userID, date string) (models.DailyFocus, error) {
	var focus models.DailyFocus
	err := s.Get(ctx, ColFocus, focusKey(userID, date), &focus)
	if IsNotFound(err) {
		return models.DailyFocus{UserID: userID, Date: date}, nil
	}
	if err != nil {
		return models.DailyFocus{}, err
	}
	return focus, nil
}

// SaveFocus upserts the full record: both fields are replaced wholesale,
// last writer wins. There is no optimistic concurrency control; with one
// person editing one day, races are rare and an overwrite is acceptable.
func (s *Store) SaveFocus(ctx context.Context, userID, date string, taskIDs []string, blocks []models.TimeBlock) error {
	focus := models.DailyFocus{
		UserID:     userID,
		Date:       date,
		TaskIDs:    taskIDs,
		TimeBlocks: blocks,
	}
	return s.Put(ctx, ColFocus, focusKey(userID, date), focus)
}

// LoadFocusRange returns every DailyFocus whose date falls within
// [dateStart, dateEnd] inclusive, across all users, sorted by (date, user).
// Lexicographic comparison is correct for zero-padded ISO dates.
func (s *Store) LoadFocusRange(ctx context.Context, dateStart, dateEnd string) ([]models.DailyFocus, error) {
	docs, err := s.Run(ctx, NewQuery(ColFocus).
		Where("date", OpGte, dateStart).
		Where("date", OpLte, dateEnd))
	if err != nil {
		return nil, err
	}
	records := make([]models.DailyFocus, 0, len(docs))
	for _, doc := range docs {
		var focus models.DailyFocus
		if err := decodeInto(doc, &focus); err != nil {
			return nil, wrapErr("decode", ColFocus, doc.ID, err)
		}
		records = append(records, focus)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].UserID < records[j].UserID
	})
	return records, nil
}

// PruneFocus removes task references whose task is missing or done and
// persists the result. Called only when the owner loads their own day;
// viewing someone else's day must not mutate their record. Returns the
// pruned focus.
func (s *Store) PruneFocus(ctx context.Context, focus models.DailyFocus) (models.DailyFocus, error) {
	keep := func(taskID string) bool {
		task, err := s.GetTask(ctx, taskID)
		if IsNotFound(err) {
			return false
		}
		if err != nil {
			// Transient failure: keep the reference rather than drop data.
			return true
		}
		return task.Status != models.StatusDone
	}

	alive := make(map[string]bool)
	changed := false

	taskIDs := focus.TaskIDs[:0:0]
	for _, id := range focus.TaskIDs {
		if keep(id) {
			alive[id] = true
			taskIDs = append(taskIDs, id)
		} else {
			changed = true
		}
	}
	blocks := focus.TimeBlocks[:0:0]
	for _, b := range focus.TimeBlocks {
		if alive[b.TaskID] {
			blocks = append(blocks, b)
		} else {
			changed = true
		}
	}

	if !changed {
		return focus, nil
	}
	focus.TaskIDs = taskIDs
	focus.TimeBlocks = blocks
	if err := s.SaveFocus(ctx, focus.UserID, focus.Date, focus.TaskIDs, focus.TimeBlocks); err != nil {
		return focus, err
	}
	return focus, nil
}
