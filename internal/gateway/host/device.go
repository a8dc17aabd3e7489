package host

import (
	"maps"
	"slices"
	"time"

	"jarvis/internal/intent"
)

// SnoozeInterval is how far a snoozed alarm moves.
const SnoozeInterval = 10 * time.Minute

// Alarm is a scheduled alarm on the simulated device.
type Alarm struct {
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Label  string `json:"label"`
}

// Timer is a running countdown on the simulated device.
type Timer struct {
	Label  string    `json:"label"`
	EndsAt time.Time `json:"ends_at"`
}

// Device is the simulated device state the host keeps for actions that have
// no real platform behind them.
type Device struct {
	Flashlight  bool                       `json:"flashlight"`
	Toggles     map[intent.ToggleKind]bool `json:"toggles"`
	Alarms      []Alarm                    `json:"alarms"`
	Timers      []Timer                    `json:"timers"`
	Recording   bool                       `json:"recording"`
	Screenshots int                        `json:"screenshots"`
	Opened      []string                   `json:"opened"`
}

func (d Device) clone() Device {
	d.Toggles = maps.Clone(d.Toggles)
	d.Alarms = slices.Clone(d.Alarms)
	d.Timers = slices.Clone(d.Timers)
	d.Opened = slices.Clone(d.Opened)
	return d
}
