package testutil

import (
	"time"

	"github.com/nvoskov/teamplan/internal/models"
)

// TaskBuilder provides a fluent API for creating test tasks.
type TaskBuilder struct {
	task models.Task
}

func NewTask(id string) *TaskBuilder {
	return &TaskBuilder{
		task: models.Task{
			ID:        id,
			Title:     "Test Task",
			Status:    models.StatusTodo,
			Priority:  models.PriorityMedium,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
}

func (b *TaskBuilder) WithTitle(title string) *TaskBuilder {
	b.task.Title = title
	return b
}

func (b *TaskBuilder) WithStatus(s models.TaskStatus) *TaskBuilder {
	b.task.Status = s
	return b
}

func (b *TaskBuilder) WithAssignees(keys ...string) *TaskBuilder {
	b.task.Assignees = keys
	return b
}

func (b *TaskBuilder) WithClient(clientID string) *TaskBuilder {
	b.task.ClientID = clientID
	return b
}

func (b *TaskBuilder) WithProject(projectID string) *TaskBuilder {
	b.task.ProjectID = projectID
	return b
}

func (b *TaskBuilder) Build() models.Task {
	return b.task
}

// FocusBuilder provides a fluent API for creating DailyFocus records.
type FocusBuilder struct {
	focus models.DailyFocus
}

func NewFocus(userID, date string) *FocusBuilder {
	return &FocusBuilder{focus: models.DailyFocus{UserID: userID, Date: date}}
}

func (b *FocusBuilder) WithTasks(ids ...string) *FocusBuilder {
	b.focus.TaskIDs = ids
	return b
}

func (b *FocusBuilder) WithBlock(taskID, start, end string) *FocusBuilder {
	if !contains(b.focus.TaskIDs, taskID) {
		b.focus.TaskIDs = append(b.focus.TaskIDs, taskID)
	}
	b.focus.TimeBlocks = append(b.focus.TimeBlocks, models.TimeBlock{TaskID: taskID, Start: start, End: end})
	return b
}

func (b *FocusBuilder) Build() models.DailyFocus {
	return b.focus
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
