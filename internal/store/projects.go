package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/nvoskov/teamplan/internal/models"
)

// CreateProject inserts a new project. An empty clientID means "no client".
func (s *Store) CreateProject(ctx context.Context, name, clientID string) (models.Project, error) {
	project := models.Project{ID: uuid.NewString(), Name: name, ClientID: clientID}
	if err := s.Put(ctx, ColProjects, project.ID, project); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// GetProject fetches one project by id.
func (s *Store) GetProject(ctx context.Context, id string) (models.Project, error) {
	var p models.Project
	err := s.Get(ctx, ColProjects, id, &p)
	return p, err
}

// ProjectsForClient returns the projects belonging to a client.
func (s *Store) ProjectsForClient(ctx context.Context, clientID string) ([]models.Project, error) {
	docs, err := s.Run(ctx, NewQuery(ColProjects).WhereEq("clientId", clientID))
	if err != nil {
		return nil, err
	}
	projects := make([]models.Project, 0, len(docs))
	for _, doc := range docs {
		var p models.Project
		if err := decodeInto(doc, &p); err != nil {
			return nil, wrapErr("decode", ColProjects, doc.ID, err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}
