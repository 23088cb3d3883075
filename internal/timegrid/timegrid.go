// Package timegrid implements the fixed-resolution day timeline: wall-clock
// strings, slot offsets, and pixel geometry for the visible window
// [09:00, 19:00) in 15-minute slots.
//
// Internally everything is integer minutes since midnight; the "HH:MM"
// string form exists only at the boundary.
package timegrid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nvoskov/teamplan/internal/config"
)

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock string %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock string %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock string %q", clock)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock out of range %q", clock)
	}
	return h*60 + m, nil
}

// FormatClock converts minutes since midnight to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// TimeToSlotOffset returns the slot index of a wall-clock time relative to
// the day start, floored. Times outside the window yield negative or
// >= SlotsPerDay values; callers use that to detect "now" off-grid.
func TimeToSlotOffset(clock string) (int, error) {
	minutes, err := ParseClock(clock)
	if err != nil {
		return 0, err
	}
	return MinutesToSlotOffset(minutes), nil
}

// MinutesToSlotOffset is TimeToSlotOffset for an already-parsed time.
func MinutesToSlotOffset(minutesSinceMidnight int) int {
	delta := minutesSinceMidnight - config.DayStartMinutes
	if delta < 0 {
		// Floor division for negative offsets.
		return -((-delta + config.SlotMinutes - 1) / config.SlotMinutes)
	}
	return delta / config.SlotMinutes
}

// SlotOffsetToTime is the inverse of TimeToSlotOffset. The offset is not
// clamped here; callers clamp to [0, SlotsPerDay] first.
func SlotOffsetToTime(offset int) string {
	return FormatClock(config.DayStartMinutes + offset*config.SlotMinutes)
}

// SnapToSlot rounds a raw (possibly fractional, in pixels-per-slot units)
// offset to the nearest slot boundary. Drags snap to the closest boundary,
// not the one below.
func SnapToSlot(raw float64) int {
	if raw < 0 {
		return -int(-raw + 0.5)
	}
	return int(raw + 0.5)
}

// DurationMinutes returns end minus start in minutes. Negative results
// (an end numerically before its start) are returned as-is; intervals are
// not interpreted as crossing midnight.
func DurationMinutes(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}

// SlotSpan returns the number of slots an interval covers, rounding any
// partial slot up.
func SlotSpan(start, end string) (int, error) {
	d, err := DurationMinutes(start, end)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, nil
	}
	return (d + config.SlotMinutes - 1) / config.SlotMinutes, nil
}
