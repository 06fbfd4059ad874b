package battery

import (
	"time"

	hw "github.com/distatus/battery"

	"codeberg.org/halden/battrack/internal/errors"
	"codeberg.org/halden/battrack/internal/logger"
)

// systemSource reads the first battery exposed by the OS through the
// distatus/battery library.
type systemSource struct {
	index int
}

// NewSystemSource probes for battery hardware. Finding none is fatal to
// startup: the monitor has nothing to monitor.
func NewSystemSource() (Source, error) {
	errFactory := errors.New()

	batteries, err := hw.GetAll()
	if len(batteries) == 0 {
		if err != nil {
			return nil, errFactory.Wrap(errors.ErrNoBattery, err)
		}
		return nil, errFactory.New(errors.ErrNoBattery)
	}
	if err != nil {
		// Partial errors with at least one battery present are a
		// per-read concern, not a startup failure
		logger.Debug().Err(err).Msg("Battery probe returned partial errors")
	}

	return &systemSource{index: 0}, nil
}

func (s *systemSource) Read() (Sample, error) {
	errFactory := errors.New()

	bat, err := hw.Get(s.index)
	if err != nil {
		partial, ok := err.(hw.ErrPartial)
		if !ok {
			return Sample{}, errFactory.Wrap(errors.ErrSensorUnavailable, err)
		}
		// Tolerate missing voltage or charge-rate readings; state and
		// charge levels are required for a usable sample
		if partial.State != nil || partial.Current != nil || partial.Full != nil {
			return Sample{}, errFactory.Wrap(errors.ErrSensorUnavailable, err)
		}
	}

	return fromSystem(bat, time.Now()), nil
}

// fromSystem converts a distatus reading into a Sample. The library
// reports charge amounts in mWh and charge rate in mW; the charge rate
// is unsigned, so the sign convention is applied from the status.
func fromSystem(bat *hw.Battery, now time.Time) Sample {
	status := fromSystemState(bat.State)

	var capacity float64
	if bat.Full > 0 {
		capacity = bat.Current / bat.Full * 100
	}
	if capacity < 0 {
		capacity = 0
	} else if capacity > 100 {
		capacity = 100
	}

	power := bat.ChargeRate / 1000
	switch status {
	case Charging:
		// already positive
	case Discharging:
		power = -power
	default:
		power = 0
	}

	return Sample{
		Timestamp:    now,
		Capacity:     capacity,
		PowerWatts:   power,
		Status:       status,
		EnergyWh:     bat.Current / 1000,
		EnergyFullWh: bat.Full / 1000,
		VoltageV:     bat.Voltage,
	}
}

func fromSystemState(state hw.State) Status {
	switch state {
	case hw.Charging:
		return Charging
	case hw.Discharging:
		return Discharging
	case hw.Full:
		return Full
	case hw.Empty:
		return Discharging
	default:
		return Unknown
	}
}
