package battery

import (
	"time"
)

// Status is the charging state reported with a sample.
type Status int

const (
	Unknown Status = iota
	Charging
	Discharging
	NotCharging
	Full
)

var statusNames = map[Status]string{
	Unknown:     "Unknown",
	Charging:    "Charging",
	Discharging: "Discharging",
	NotCharging: "NotCharging",
	Full:        "Full",
}

// String returns the human-readable form used in logs and status lines.
func (s Status) String() string {
	if s == NotCharging {
		return "Not charging"
	}
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// MarshalText encodes the status tag used in the persisted history document.
func (s Status) MarshalText() ([]byte, error) {
	if name, ok := statusNames[s]; ok {
		return []byte(name), nil
	}
	return []byte("Unknown"), nil
}

// UnmarshalText is tolerant: an unrecognized tag decodes as Unknown
// rather than failing the whole document.
func (s *Status) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if string(text) == name {
			*s = status
			return nil
		}
	}
	*s = Unknown
	return nil
}

// Sample is a single point-in-time battery reading. Immutable once
// created; containers that need to outlive the rolling history hold
// their own copies.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	// Capacity is the charge percentage, 0-100.
	Capacity float64 `json:"capacity"`
	// PowerWatts is signed: positive while charging, negative while
	// discharging, zero otherwise.
	PowerWatts   float64 `json:"power_watts"`
	Status       Status  `json:"status"`
	EnergyWh     float64 `json:"energy_now_wh"`
	EnergyFullWh float64 `json:"energy_full_wh"`
	VoltageV     float64 `json:"voltage_now_v"`
}

// Source produces point-in-time battery readings on demand.
// A failed read means the sensor is unavailable for this tick only;
// callers skip the tick and try again on the next one.
type Source interface {
	Read() (Sample, error)
}
