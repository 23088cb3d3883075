// Package timesheet turns accumulated time blocks into per-task billable
// totals for a client and month.
package timesheet

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nvoskov/teamplan/internal/models"
	"github.com/nvoskov/teamplan/internal/store"
	"github.com/nvoskov/teamplan/internal/timegrid"
)

// LineItem is one task's aggregated duration within a timesheet.
type LineItem struct {
	TaskID       string
	Title        string
	TotalMinutes int
	Amount       float64
}

// DetailRow is one raw block retained for the breakdown, sorted by
// (date, start).
type DetailRow struct {
	Date    string
	Start   string
	End     string
	UserID  string
	TaskID  string
	Minutes int
}

// Timesheet is the generated billable summary.
type Timesheet struct {
	ClientID     string
	ClientName   string
	Month        string // "YYYY-MM"
	HourlyRate   float64
	LineItems    []LineItem
	Details      []DetailRow
	TotalMinutes int
	Subtotal     float64
}

// MonthRange returns the first and last day of a "YYYY-MM" month as ISO
// dates, the last day computed as day zero of the following month.
func MonthRange(month string) (string, string, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", fmt.Errorf("invalid month %q: %w", month, err)
	}
	first := t.Format("2006-01-02")
	last := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	return first, last, nil
}

// BillableTaskIDs returns the ids attributable to the client: tasks tagged
// with it directly, union tasks whose project belongs to it. Duplicates
// collapse by id.
func BillableTaskIDs(ctx context.Context, st *store.Store, clientID string) (map[string]models.Task, error) {
	billable := make(map[string]models.Task)

	direct, err := st.TasksForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for _, t := range direct {
		billable[t.ID] = t
	}

	projects, err := st.ProjectsForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		tasks, err := st.TasksForProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			billable[t.ID] = t
		}
	}
	return billable, nil
}

// Generate scans every focus record in the month and totals block durations
// for the client's billable tasks. Durations are integer minutes; a
// zero-duration block contributes 0 but its task still appears. The
// client's current hourly rate is applied to the whole month; rate history
// is not consulted for mid-month changes.
func Generate(ctx context.Context, st *store.Store, clientID, month string) (Timesheet, error) {
	client, err := st.GetClient(ctx, clientID)
	if err != nil {
		return Timesheet{}, err
	}

	billable, err := BillableTaskIDs(ctx, st, clientID)
	if err != nil {
		return Timesheet{}, err
	}

	first, last, err := MonthRange(month)
	if err != nil {
		return Timesheet{}, err
	}
	records, err := st.LoadFocusRange(ctx, first, last)
	if err != nil {
		return Timesheet{}, err
	}

	totals := make(map[string]int)
	var details []DetailRow
	for _, rec := range records {
		for _, b := range rec.TimeBlocks {
			if _, ok := billable[b.TaskID]; !ok {
				continue
			}
			minutes, err := timegrid.DurationMinutes(b.Start, b.End)
			if err != nil {
				continue
			}
			totals[b.TaskID] += minutes
			details = append(details, DetailRow{
				Date:    rec.Date,
				Start:   b.Start,
				End:     b.End,
				UserID:  rec.UserID,
				TaskID:  b.TaskID,
				Minutes: minutes,
			})
		}
	}

	sort.Slice(details, func(i, j int) bool {
		if details[i].Date != details[j].Date {
			return details[i].Date < details[j].Date
		}
		return details[i].Start < details[j].Start
	})

	sheet := Timesheet{
		ClientID:   clientID,
		ClientName: client.Name,
		Month:      month,
		HourlyRate: client.HourlyRate,
		Details:    details,
	}
	for taskID, minutes := range totals {
		item := LineItem{
			TaskID:       taskID,
			Title:        billable[taskID].Title,
			TotalMinutes: minutes,
			Amount:       float64(minutes) / 60 * client.HourlyRate,
		}
		sheet.LineItems = append(sheet.LineItems, item)
		sheet.TotalMinutes += minutes
	}

	// Largest time commitment first; ties broken by title for stable output.
	sort.Slice(sheet.LineItems, func(i, j int) bool {
		if sheet.LineItems[i].TotalMinutes != sheet.LineItems[j].TotalMinutes {
			return sheet.LineItems[i].TotalMinutes > sheet.LineItems[j].TotalMinutes
		}
		return sheet.LineItems[i].Title < sheet.LineItems[j].Title
	})

	sheet.Subtotal = float64(sheet.TotalMinutes) / 60 * client.HourlyRate
	return sheet, nil
}

// FormatMinutes renders integer minutes as "Hh MMm" for display.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
