package config

import "time"

// Day grid geometry. The visible window is [09:00, 19:00) in 15-minute
// slots; all slot indices are relative to DayStartMinutes.
const (
	DayStartMinutes = 9 * 60
	DayEndMinutes   = 19 * 60
	SlotMinutes     = 15
	SlotsPerDay     = (DayEndMinutes - DayStartMinutes) / SlotMinutes
)

// Planner interaction tuning.
const (
	DragThresholdPx   = 4 // below this a press/release is a click
	DefaultBlockSlots = 2 // 30 minutes for drop/pick placements
	PickerTaskLimit   = 15
	DisambiguateLimit = 5
)

// Notification coalescing.
const (
	NotifyQuietDelay = 2 * time.Second
)

// Chat request verification.
const (
	SignatureVersion  = "v0"
	SignatureMaxSkew  = 5 * time.Minute
	SlackPostEndpoint = "https://slack.com/api/chat.postMessage"
)

// Database/application settings.
const (
	AppName    = "teamplan"
	DBFileName = "teamplan.db"
)
