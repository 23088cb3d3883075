package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/nvoskov/teamplan/internal/config"
	"github.com/nvoskov/teamplan/internal/planner"
	"github.com/nvoskov/teamplan/internal/timegrid"
)

func (m MainModel) View() string {
	switch m.mode {
	case viewPicker:
		return m.viewPicker()
	case viewDetail:
		return m.detail.view()
	}
	return m.viewGrid()
}

func (m MainModel) viewGrid() string {
	width := m.width
	if width < config.GridMinWidth {
		width = config.GridMinWidth
	}
	laneWidth := width - config.GridHourWidth

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("Day plan · %s · %s", m.viewer, m.date)))
	b.WriteString("\n")
	b.WriteString(m.bannerLine())
	b.WriteString("\n")

	rows := m.gridRows(laneWidth)
	for _, row := range rows {
		b.WriteString(row)
		b.WriteString("\n")
	}

	if len(m.sched.Unscheduled) > 0 {
		b.WriteString(m.theme.Unscheduled.Render("Unscheduled:"))
		b.WriteString("\n")
		for _, t := range m.sched.Unscheduled {
			b.WriteString(m.theme.Unscheduled.Render("  · " + t.Title))
			b.WriteString("\n")
		}
	}
	if m.errText != "" {
		b.WriteString(m.theme.Error.Render(m.errText))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Help.Render("←/→ day · click empty slot to plan · drag to move · q quit"))
	return b.String()
}

func (m MainModel) bannerLine() string {
	if m.calExpired {
		return m.theme.Error.Render("calendar needs reconnect")
	}
	if len(m.sched.Banners) > 0 {
		return m.theme.Banner.Render("All day: " + strings.Join(m.sched.Banners, " · "))
	}
	return ""
}

// gridRows paints one string per slot row: hour gutter, then whichever
// entry covers the row, with the active drag candidate drawn instead of
// its persisted geometry.
func (m MainModel) gridRows(laneWidth int) []string {
	height := m.geom.GridHeight()
	rows := make([]string, height)

	type cell struct {
		text  string
		kind  planner.EntryKind
		drag  bool
		isNow bool
	}
	cells := make([]*cell, height)

	for _, e := range m.sched.Entries {
		top, h := e.Top, e.Height
		if m.drag.Active() && e.Kind == planner.EntryTask && e.TaskID == m.drag.TaskID() {
			top, h = m.drag.Candidate()
		}
		for y := top; y < top+h && y < height; y++ {
			if y < 0 {
				continue
			}
			label := ""
			if y == top {
				label = fmt.Sprintf("%s %s-%s", e.Title, e.Start, e.End)
			}
			// Task blocks draw over events on shared rows.
			if cells[y] != nil && cells[y].kind == planner.EntryTask && e.Kind == planner.EntryEvent {
				continue
			}
			cells[y] = &cell{
				text: label,
				kind: e.Kind,
				drag: m.drag.Active() && e.TaskID == m.drag.TaskID(),
			}
		}
	}

	for y := 0; y < height; y++ {
		gutter := strings.Repeat(" ", config.GridHourWidth)
		offset := y / m.geom.SlotHeight
		if offset*config.SlotMinutes%60 == 0 && y%m.geom.SlotHeight == 0 {
			gutter = m.theme.HourGutter.Render(fmt.Sprintf("%-*s", config.GridHourWidth, timegrid.SlotOffsetToTime(offset)))
		}

		var lane string
		switch {
		case cells[y] != nil && cells[y].drag:
			lane = m.theme.DragBlock.Render(padTo(cells[y].text, laneWidth))
		case cells[y] != nil && cells[y].kind == planner.EntryTask:
			lane = m.theme.TaskBlock.Render(padTo(cells[y].text, laneWidth))
		case cells[y] != nil:
			lane = m.theme.EventBlock.Render(padTo(cells[y].text, laneWidth))
		case m.sched.NowVisible && y == m.sched.NowY:
			lane = m.theme.NowLine.Render(strings.Repeat("─", laneWidth))
		default:
			lane = m.theme.EmptySlot.Render(padTo("", laneWidth))
		}
		rows[y] = gutter + lane
	}
	return rows
}

// padTo truncates or pads a cell label to the lane width, ANSI-aware.
func padTo(text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = ansi.Truncate(text, width, "…")
	gap := width - ansi.StringWidth(text)
	if gap > 0 {
		text += strings.Repeat(" ", gap)
	}
	return text
}

func (m MainModel) viewPicker() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("Schedule at %s", timegrid.SlotOffsetToTime(m.pickerSlot))))
	b.WriteString("\n\n")
	b.WriteString(m.picker.input.View())
	b.WriteString("\n\n")
	visible := m.picker.visible()
	if len(visible) == 0 {
		b.WriteString(m.theme.Help.Render("no matching tasks"))
		b.WriteString("\n")
	}
	for i, t := range visible {
		cursor := "  "
		if i == m.picker.cursor {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s [%s]\n", cursor, t.Title, t.Priority))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render("enter to schedule · esc to cancel"))
	return b.String()
}
