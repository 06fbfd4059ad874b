package history_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/halden/battrack/internal/battery"
	"codeberg.org/halden/battrack/internal/history"
)

var sessionBase = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func sampleAt(tick int, status battery.Status, capacity float64) battery.Sample {
	return battery.Sample{
		Timestamp: sessionBase.Add(time.Duration(tick) * 5 * time.Second),
		Capacity:  capacity,
		Status:    status,
	}
}

func TestSessionCompletedWhenThresholdReached(t *testing.T) {
	var tracker history.Tracker

	feed := []battery.Sample{
		sampleAt(0, battery.Discharging, 50),
		sampleAt(1, battery.Charging, 60),
		sampleAt(2, battery.Charging, 75),
		sampleAt(3, battery.Charging, 91),
		sampleAt(4, battery.Discharging, 85),
	}
	for _, s := range feed {
		tracker.Observe(s)
	}

	sessions := tracker.CompletedSessions()
	require.Len(t, sessions, 1)
	assert.Nil(t, tracker.Active())

	session := sessions[0]
	assert.True(t, session.Completed)
	assert.Len(t, session.Samples, 3, "session spans exactly the Charging samples")
	assert.Equal(t, feed[1].Timestamp, session.StartTime)
	require.NotNil(t, session.EndTime)
	assert.Equal(t, feed[3].Timestamp, *session.EndTime, "end time is the last Charging sample")
	assert.Equal(t, 60.0, session.StartCapacity)
	assert.Equal(t, 91.0, session.EndCapacity)
}

func TestSessionDiscardedBelowThreshold(t *testing.T) {
	var tracker history.Tracker

	for _, s := range []battery.Sample{
		sampleAt(0, battery.Charging, 40),
		sampleAt(1, battery.Charging, 70),
		sampleAt(2, battery.Discharging, 65),
	} {
		tracker.Observe(s)
	}

	assert.Empty(t, tracker.CompletedSessions(), "never reached 90%")
	assert.Nil(t, tracker.Active())
}

func TestThresholdIsMonotonic(t *testing.T) {
	var tracker history.Tracker

	// Capacity dips back under the threshold before the charge ends;
	// the session must still commit
	for _, s := range []battery.Sample{
		sampleAt(0, battery.Charging, 89),
		sampleAt(1, battery.Charging, 90),
		sampleAt(2, battery.Charging, 88),
		sampleAt(3, battery.Full, 88),
	} {
		tracker.Observe(s)
	}

	require.Len(t, tracker.CompletedSessions(), 1)
}

func TestSessionRetentionBound(t *testing.T) {
	var tracker history.Tracker

	completeOne := func(tick int) time.Time {
		start := sampleAt(tick, battery.Charging, 95)
		tracker.Observe(start)
		tracker.Observe(sampleAt(tick+1, battery.Discharging, 94))
		return start.Timestamp
	}

	first := completeOne(0)
	second := completeOne(10)
	third := completeOne(20)

	sessions := tracker.CompletedSessions()
	require.Len(t, sessions, history.SessionRetention)
	assert.Equal(t, second, sessions[0].StartTime, "oldest of the previous two was dropped")
	assert.Equal(t, third, sessions[1].StartTime, "list stays ordered oldest to newest")
	assert.NotEqual(t, first, sessions[0].StartTime)
}

func TestStatusFlickerSplitsSessions(t *testing.T) {
	var tracker history.Tracker

	// One erroneous Discharging sample between two Charging runs is
	// taken at face value: it ends the first run and a new one starts
	for _, s := range []battery.Sample{
		sampleAt(0, battery.Charging, 91),
		sampleAt(1, battery.Discharging, 91),
		sampleAt(2, battery.Charging, 92),
		sampleAt(3, battery.Full, 93),
	} {
		tracker.Observe(s)
	}

	assert.Len(t, tracker.CompletedSessions(), 2)
}

func TestActiveSessionNotCommittedEarly(t *testing.T) {
	var tracker history.Tracker

	tracker.Observe(sampleAt(0, battery.Charging, 95))

	require.NotNil(t, tracker.Active())
	assert.Empty(t, tracker.CompletedSessions(), "commit happens only when status leaves Charging")
}
