package timegrid

import (
	"time"

	"github.com/nvoskov/teamplan/internal/config"
)

// Geometry converts between slot offsets and vertical positions for one
// rendered grid. SlotHeight is in the presentation unit (pixels in a
// browser, rows in a terminal).
type Geometry struct {
	SlotHeight int
}

// GridHeight returns the total height of the visible window.
func (g Geometry) GridHeight() int {
	return config.SlotsPerDay * g.SlotHeight
}

// OffsetToY returns the top position of a slot offset.
func (g Geometry) OffsetToY(offset int) int {
	return offset * g.SlotHeight
}

// YToRawOffset converts a vertical position to a fractional slot offset.
func (g Geometry) YToRawOffset(y int) float64 {
	return float64(y) / float64(g.SlotHeight)
}

// YToSlot converts a drop position to a slot index, floored and clamped so
// a default-size block starting there always fits inside the window.
func (g Geometry) YToSlot(y int) int {
	slot := y / g.SlotHeight
	max := config.SlotsPerDay - config.DefaultBlockSlots
	if slot < 0 {
		return 0
	}
	if slot > max {
		return max
	}
	return slot
}

// NowOffset returns the slot offset of the given instant and whether it
// falls inside the visible window. Callers hide the indicator when the
// second return is false.
func NowOffset(now time.Time) (int, bool) {
	minutes := now.Hour()*60 + now.Minute()
	offset := MinutesToSlotOffset(minutes)
	return offset, offset >= 0 && offset < config.SlotsPerDay
}

// ClipToWindow clamps an interval expressed in vertical units to
// [0, gridHeight]. Calendar events are clipped; task blocks never need it.
func ClipToWindow(top, height, gridHeight int) (int, int) {
	if top < 0 {
		height += top
		top = 0
	}
	if top > gridHeight {
		top = gridHeight
	}
	if height < 0 {
		height = 0
	}
	if top+height > gridHeight {
		height = gridHeight - top
	}
	return top, height
}
