package planner

import (
	"github.com/nvoskov/teamplan/internal/config"
	"github.com/nvoskov/teamplan/internal/timegrid"
)

// DragMode distinguishes moving a block from resizing its bottom edge.
type DragMode int

const (
	DragMove DragMode = iota
	DragResize
)

// dragPhase is the per-gesture state: idle until pointer-down, pending
// until the displacement threshold is crossed, then dragging or resizing.
type dragPhase int

const (
	phaseIdle dragPhase = iota
	phasePending
	phaseActive
)

// OutcomeKind classifies what a pointer-up means.
type OutcomeKind int

const (
	// OutcomeNone: pointer-up with no gesture in progress.
	OutcomeNone OutcomeKind = iota
	// OutcomeClick: the threshold was never crossed; the caller treats the
	// press as a plain click (open task details). Nothing is persisted.
	OutcomeClick
	// OutcomeCommit: a drag or resize finished; Top/Height carry the final
	// snapped geometry to persist.
	OutcomeCommit
)

// Outcome is the result of a pointer-up.
type Outcome struct {
	Kind   OutcomeKind
	TaskID string
	Mode   DragMode
	Top    int
	Height int
}

// DragController runs the idle → pending → dragging/resizing state machine
// for one grid. It is pure geometry: persistence happens in the session
// when a commit outcome is applied.
type DragController struct {
	geom timegrid.Geometry

	phase  dragPhase
	mode   DragMode
	taskID string

	downX, downY int
	origTop      int
	origHeight   int

	curTop    int
	curHeight int
}

func NewDragController(geom timegrid.Geometry) *DragController {
	return &DragController{geom: geom}
}

// Active reports whether a drag or resize is in progress (threshold
// crossed).
func (d *DragController) Active() bool { return d.phase == phaseActive }

// Pending reports whether a press is waiting to be disambiguated.
func (d *DragController) Pending() bool { return d.phase == phasePending }

// Candidate returns the current candidate geometry while active.
func (d *DragController) Candidate() (top, height int) {
	return d.curTop, d.curHeight
}

// TaskID returns the task under the gesture, or "" when idle.
func (d *DragController) TaskID() string {
	if d.phase == phaseIdle {
		return ""
	}
	return d.taskID
}

// PointerDown enters the pending state for a block with the given current
// geometry.
func (d *DragController) PointerDown(taskID string, mode DragMode, x, y, top, height int) {
	d.phase = phasePending
	d.mode = mode
	d.taskID = taskID
	d.downX, d.downY = x, y
	d.origTop, d.origHeight = top, height
	d.curTop, d.curHeight = top, height
}

// PointerMove recomputes the candidate geometry. The gesture only becomes
// active once total displacement exceeds the click threshold.
func (d *DragController) PointerMove(x, y int) {
	if d.phase == phaseIdle {
		return
	}
	if d.phase == phasePending {
		dx, dy := x-d.downX, y-d.downY
		if dx*dx+dy*dy < config.DragThresholdPx*config.DragThresholdPx {
			return
		}
		d.phase = phaseActive
	}

	gridHeight := d.geom.GridHeight()
	slot := d.geom.SlotHeight
	delta := y - d.downY

	switch d.mode {
	case DragMove:
		raw := d.geom.YToRawOffset(d.origTop + delta)
		top := d.geom.OffsetToY(timegrid.SnapToSlot(raw))
		if top < 0 {
			top = 0
		}
		if top > gridHeight-slot {
			top = gridHeight - slot
		}
		d.curTop = top
		d.curHeight = d.origHeight
	case DragResize:
		raw := d.geom.YToRawOffset(d.origHeight + delta)
		height := d.geom.OffsetToY(timegrid.SnapToSlot(raw))
		if height < slot {
			height = slot
		}
		if d.curTop+height > gridHeight {
			height = gridHeight - d.curTop
		}
		d.curHeight = height
	}
}

// PointerUp ends the gesture. From pending it is a click and nothing
// changed; from active it commits the last computed geometry. Once a drag
// has started there is no cancel: release always commits.
func (d *DragController) PointerUp() Outcome {
	defer d.reset()
	switch d.phase {
	case phasePending:
		return Outcome{Kind: OutcomeClick, TaskID: d.taskID}
	case phaseActive:
		return Outcome{
			Kind:   OutcomeCommit,
			TaskID: d.taskID,
			Mode:   d.mode,
			Top:    d.curTop,
			Height: d.curHeight,
		}
	}
	return Outcome{Kind: OutcomeNone}
}

func (d *DragController) reset() {
	d.phase = phaseIdle
	d.taskID = ""
}
