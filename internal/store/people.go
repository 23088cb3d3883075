package store

import (
	"context"
	"strings"

	"github.com/nvoskov/teamplan/internal/models"
)

// PutPerson upserts a team member keyed by their short handle.
func (s *Store) PutPerson(ctx context.Context, p models.Person) error {
	return s.Put(ctx, ColPeople, p.Key, p)
}

// GetPerson fetches one member by key.
func (s *Store) GetPerson(ctx context.Context, key string) (models.Person, error) {
	var p models.Person
	err := s.Get(ctx, ColPeople, key, &p)
	return p, err
}

// SeedPeople upserts the directory from a roster string: comma-separated
// key:display name:email:slack-id entries, trailing fields optional.
// Existing entries are overwritten, so the roster is the source of truth.
func (s *Store) SeedPeople(ctx context.Context, roster string) error {
	for _, entry := range strings.Split(roster, ",") {
		fields := strings.Split(strings.TrimSpace(entry), ":")
		if fields[0] == "" {
			continue
		}
		p := models.Person{Key: fields[0]}
		if len(fields) > 1 {
			p.DisplayName = fields[1]
		}
		if len(fields) > 2 {
			p.Email = fields[2]
		}
		if len(fields) > 3 {
			p.SlackUserID = fields[3]
		}
		if err := s.PutPerson(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// ListPeople returns the whole team directory.
func (s *Store) ListPeople(ctx context.Context) ([]models.Person, error) {
	docs, err := s.Run(ctx, NewQuery(ColPeople))
	if err != nil {
		return nil, err
	}
	people := make([]models.Person, 0, len(docs))
	for _, doc := range docs {
		var p models.Person
		if err := decodeInto(doc, &p); err != nil {
			return nil, wrapErr("decode", ColPeople, doc.ID, err)
		}
		people = append(people, p)
	}
	return people, nil
}
