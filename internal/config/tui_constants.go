package config

// TUI layout constants.
const (
	GridSlotHeight  = 1  // one terminal row per slot
	GridHourWidth   = 6  // "09:00 " gutter
	GridMinWidth    = 40
	DetailPaneWidth = 44
	NowTickSeconds  = 30
)
