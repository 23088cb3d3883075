package store

import (
	"context"
	"time"

	"github.com/nvoskov/teamplan/internal/models"
)

// PutStandup records a member's standup for a date, replacing any earlier
// submission that day.
func (s *Store) PutStandup(ctx context.Context, standup models.Standup) error {
	if standup.CreatedAt.IsZero() {
		standup.CreatedAt = time.Now()
	}
	return s.Put(ctx, ColStandups, standup.UserID+"_"+standup.Date, standup)
}

// StandupsForDate returns every standup submitted for a date.
func (s *Store) StandupsForDate(ctx context.Context, date string) ([]models.Standup, error) {
	docs, err := s.Run(ctx, NewQuery(ColStandups).WhereEq("date", date))
	if err != nil {
		return nil, err
	}
	standups := make([]models.Standup, 0, len(docs))
	for _, doc := range docs {
		var st models.Standup
		if err := decodeInto(doc, &st); err != nil {
			return nil, wrapErr("decode", ColStandups, doc.ID, err)
		}
		standups = append(standups, st)
	}
	return standups, nil
}
