package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nvoskov/teamplan/internal/models"
	"github.com/nvoskov/teamplan/internal/util"
)

// TaskSeed carries the optional fields a new task can be created with.
type TaskSeed struct {
	Title       string
	Description string
	Priority    models.Priority
	Assignees   []string
	ClientID    string
	ProjectID   string
	Deadline    *string
}

// CreateTask inserts a new task in status todo and returns it.
func (s *Store) CreateTask(ctx context.Context, seed TaskSeed) (models.Task, error) {
	now := time.Now()
	priority := seed.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	task := models.Task{
		ID:          uuid.NewString(),
		Title:       seed.Title,
		Description: seed.Description,
		Status:      models.StatusTodo,
		Priority:    priority,
		Assignees:   seed.Assignees,
		ClientID:    seed.ClientID,
		ProjectID:   seed.ProjectID,
		Deadline:    seed.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Put(ctx, ColTasks, task.ID, task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// GetTask fetches one task by id.
func (s *Store) GetTask(ctx context.Context, id string) (models.Task, error) {
	var t models.Task
	err := s.Get(ctx, ColTasks, id, &t)
	return t, err
}

// ListTasks returns every task.
func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	return s.queryTasks(ctx, NewQuery(ColTasks))
}

// TasksForAssignee returns tasks assigned to the given member key.
func (s *Store) TasksForAssignee(ctx context.Context, memberKey string) ([]models.Task, error) {
	return s.queryTasks(ctx, NewQuery(ColTasks).Where("assignees", OpContains, memberKey))
}

// TasksForClient returns tasks tagged directly with the client.
func (s *Store) TasksForClient(ctx context.Context, clientID string) ([]models.Task, error) {
	return s.queryTasks(ctx, NewQuery(ColTasks).WhereEq("clientId", clientID))
}

// TasksForProject returns tasks belonging to the project.
func (s *Store) TasksForProject(ctx context.Context, projectID string) ([]models.Task, error) {
	return s.queryTasks(ctx, NewQuery(ColTasks).WhereEq("projectId", projectID))
}

func (s *Store) queryTasks(ctx context.Context, q *Query) ([]models.Task, error) {
	docs, err := s.Run(ctx, q)
	if err != nil {
		return nil, err
	}
	tasks := make([]models.Task, 0, len(docs))
	for _, doc := range docs {
		var t models.Task
		if err := decodeInto(doc, &t); err != nil {
			return nil, wrapErr("decode", ColTasks, doc.ID, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// SetTaskStatus transitions a task, maintaining the closure invariant:
// CompletedAt is set exactly when the task enters done and cleared when it
// leaves it.
func (s *Store) SetTaskStatus(ctx context.Context, id string, status models.TaskStatus) (models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if task.Status == status {
		return task, nil
	}
	task.Status = status
	task.UpdatedAt = time.Now()
	if status == models.StatusDone {
		task.CompletedAt = util.Ptr(time.Now())
	} else {
		task.CompletedAt = nil
	}
	if err := s.Put(ctx, ColTasks, id, task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// AssignTask adds a member to the task's assignee set.
func (s *Store) AssignTask(ctx context.Context, id, memberKey string) (models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if !util.ContainsString(task.Assignees, memberKey) {
		task.Assignees = append(task.Assignees, memberKey)
		task.UpdatedAt = time.Now()
		if err := s.Put(ctx, ColTasks, id, task); err != nil {
			return models.Task{}, err
		}
	}
	return task, nil
}

// AddTaskNote appends to the task's notes log.
func (s *Store) AddTaskNote(ctx context.Context, id, text, author string) (models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	task.Notes = append(task.Notes, models.Note{Text: text, Author: author, At: time.Now()})
	task.UpdatedAt = time.Now()
	if err := s.Put(ctx, ColTasks, id, task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// DeleteTask removes a task. Focus records referencing it are pruned
// lazily on their owner's next load.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.Delete(ctx, ColTasks, id)
}
