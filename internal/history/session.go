package history

import (
	"time"

	"codeberg.org/halden/battrack/internal/battery"
)

const (
	// CompletionThreshold is the capacity a charge run must reach at
	// least once to be retained as a completed session.
	CompletionThreshold = 90.0

	// SessionRetention is how many completed sessions are kept.
	SessionRetention = 2
)

// ChargeSession is one contiguous run of Charging-status samples, from
// the sample that started the charge to the last Charging sample seen.
// It holds its own sample copies so it survives eviction from the
// rolling history.
type ChargeSession struct {
	StartTime     time.Time        `json:"start_time"`
	EndTime       *time.Time       `json:"end_time"`
	StartCapacity float64          `json:"start_capacity"`
	EndCapacity   float64          `json:"end_capacity"`
	Samples       []battery.Sample `json:"samples"`
	Completed     bool             `json:"completed"`

	// reachedThreshold is monotonic: once the charge touches the
	// completion threshold it stays eligible even if capacity later
	// reads lower. Never persisted; only sealed sessions are.
	reachedThreshold bool
}

// Duration is the time span covered by the session's samples.
func (s *ChargeSession) Duration() time.Duration {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// Tracker is the charge-session state machine. It is Idle when no
// charge is in progress and Active while accumulating one.
type Tracker struct {
	active    *ChargeSession
	completed []ChargeSession
}

// Observe feeds one sample through the state machine. Every sample's
// status is taken at face value; there is no flicker debounce, so a
// single non-Charging reading ends the run it interrupts.
func (t *Tracker) Observe(sample battery.Sample) {
	if sample.Status == battery.Charging {
		if t.active == nil {
			t.active = &ChargeSession{
				StartTime:     sample.Timestamp,
				StartCapacity: sample.Capacity,
				EndCapacity:   sample.Capacity,
				Samples:       []battery.Sample{sample},
			}
		} else {
			t.active.EndCapacity = sample.Capacity
			t.active.Samples = append(t.active.Samples, sample)
		}
		if sample.Capacity >= CompletionThreshold {
			t.active.reachedThreshold = true
		}
		return
	}

	if t.active == nil {
		return
	}

	// Status left Charging: seal the run if it reached the threshold,
	// otherwise drop it. Either way the commit is atomic; a session is
	// never visible in the completed list before this point.
	session := t.active
	t.active = nil

	if !session.reachedThreshold {
		return
	}

	last := session.Samples[len(session.Samples)-1].Timestamp
	session.EndTime = &last
	session.Completed = true

	t.completed = append(t.completed, *session)
	if len(t.completed) > SessionRetention {
		t.completed = t.completed[len(t.completed)-SessionRetention:]
	}
}

// Active returns the in-progress session, or nil when idle.
func (t *Tracker) Active() *ChargeSession {
	return t.active
}

// CompletedSessions returns the retained sessions, oldest first.
func (t *Tracker) CompletedSessions() []ChargeSession {
	return t.completed
}

// restore seeds the completed list from a loaded history document,
// enforcing the retention bound on whatever was read back.
func (t *Tracker) restore(sessions []ChargeSession) {
	if len(sessions) > SessionRetention {
		sessions = sessions[len(sessions)-SessionRetention:]
	}
	t.completed = sessions
}
