// Package models defines the persistent record types shared by the store,
// the planner, the timesheet generator, and the command interpreter.
package models

import "time"

// TaskStatus enumerates the board columns a task can sit in.
type TaskStatus string

const (
	StatusBacklog    TaskStatus = "backlog"
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
)

// Priority enumerates task urgency levels.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Note is one entry in a task's free-text log.
type Note struct {
	Text   string    `json:"text"`
	Author string    `json:"author"`
	At     time.Time `json:"at"`
}

// Task represents a single unit of work on the board.
// CompletedAt is non-nil exactly when Status is done.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	Assignees   []string   `json:"assignees,omitempty"`
	ClientID    string     `json:"clientId,omitempty"`
	ProjectID   string     `json:"projectId,omitempty"`
	Deadline    *string    `json:"deadline,omitempty"` // "YYYY-MM-DD"
	Notes       []Note     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// IsOpen reports whether the task can still be scheduled or assigned.
func (t Task) IsOpen() bool {
	return t.Status != StatusDone
}

// TimeBlock assigns one task to a wall-clock interval within a day.
// Start and End are "HH:MM" strings on the 15-minute grid.
type TimeBlock struct {
	TaskID string `json:"taskId"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// DailyFocus is the per-user, per-date planning record. Every TaskID
// referenced by a TimeBlock must also appear in TaskIDs; the reverse is
// not required (a planned task may be unscheduled).
type DailyFocus struct {
	UserID     string      `json:"userId"`
	Date       string      `json:"date"` // "YYYY-MM-DD"
	TaskIDs    []string    `json:"taskIds"`
	TimeBlocks []TimeBlock `json:"timeBlocks"`
}

// RateChange records one retired hourly rate. History is append-only.
type RateChange struct {
	Rate           float64 `json:"rate"`
	EffectiveFrom  string  `json:"effectiveFrom"`
	EffectiveUntil string  `json:"effectiveUntil"`
}

// Client represents a billable customer.
type Client struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	LogoURL           string       `json:"logoUrl,omitempty"`
	HourlyRate        float64      `json:"hourlyRate"`
	RateEffectiveFrom string       `json:"rateEffectiveFrom,omitempty"`
	RateHistory       []RateChange `json:"rateHistory,omitempty"`
}

// Project groups tasks, optionally under a client.
type Project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ClientID string `json:"clientId,omitempty"` // empty means "no client"
}

// Person is a team member addressable from chat commands.
type Person struct {
	Key         string `json:"key"` // short handle, e.g. "anna"
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	SlackUserID string `json:"slackUserId,omitempty"`
}

// CalendarEvent is externally sourced and never persisted.
type CalendarEvent struct {
	ID            string
	Summary       string
	Start         time.Time
	End           time.Time
	AllDay        bool
	HangoutLink   string
	AttendeeCount int
}

// Standup captures one member's daily standup sections.
type Standup struct {
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Yesterday string    `json:"yesterday,omitempty"`
	Today     string    `json:"today,omitempty"`
	Blockers  string    `json:"blockers,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
