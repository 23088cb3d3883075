// Package calendar provides read-only access to external calendar events.
// Events are fetched live for rendering and never persisted.
package calendar

import (
	"context"
	"errors"

	"github.com/nvoskov/teamplan/internal/models"
)

// ErrAuthExpired signals that the access token was rejected. It is
// distinct from an empty result and from transient failures: the caller
// degrades to a "needs reconnect" state and must re-prompt; there is no
// silent refresh.
var ErrAuthExpired = errors.New("calendar authorization expired")

// Service is the calendar read capability.
//
//go:generate mockgen -source=calendar.go -destination=../tui/mock_calendar_test.go -package=tui
type Service interface {
	// EventsForDate returns the events overlapping the given "YYYY-MM-DD"
	// date.
	EventsForDate(ctx context.Context, date string) ([]models.CalendarEvent, error)
}
