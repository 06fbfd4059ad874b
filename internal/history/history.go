// Package history holds the bounded rolling sample store, its session
// tracker and the persisted history document.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"codeberg.org/halden/battrack/internal/battery"
	"codeberg.org/halden/battrack/internal/chart"
	"codeberg.org/halden/battrack/internal/errors"
	"codeberg.org/halden/battrack/internal/logger"
)

const (
	// SampleCap bounds the rolling history. At the 5s sampling
	// interval this covers a little over two days of recording.
	SampleCap = 40000

	// AutosaveEvery is the number of recorded samples between
	// interval-based persists.
	AutosaveEvery = 60

	defaultDirPerm  = 0o755
	defaultFilePerm = 0o644
)

// Store is the append-only rolling sample history plus its session
// tracker. It is owned by a single control flow; no method is safe for
// concurrent use.
type Store struct {
	path      string
	samples   []battery.Sample
	tracker   Tracker
	sinceSave int
}

// document is the persisted shape: the rolling samples and the retained
// completed sessions. The active session and viewport state are
// deliberately absent.
type document struct {
	Samples        []battery.Sample `json:"samples"`
	ChargeSessions []ChargeSession  `json:"charge_sessions"`
}

// NewStore returns an empty store persisting to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reconstructs a store from the document at path. Missing or
// unparsable storage is not an error: monitoring must start even with
// no usable prior history, so those cases return an empty store.
func Load(path string) *Store {
	store := NewStore(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("Could not read history, starting empty")
		}
		return store
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Could not parse history, starting empty")
		return store
	}

	store.samples = doc.Samples
	if len(store.samples) > SampleCap {
		store.samples = store.samples[len(store.samples)-SampleCap:]
	}
	store.tracker.restore(doc.ChargeSessions)

	logger.Debug().
		Int("samples", len(store.samples)).
		Int("sessions", len(doc.ChargeSessions)).
		Str("path", path).
		Msg("History loaded")

	return store
}

// RecordSample appends a sample, evicts the oldest past the cap,
// forwards the sample to the session tracker and advances the autosave
// counter. Pure in-memory mutation; it cannot fail.
func (st *Store) RecordSample(sample battery.Sample) {
	st.tracker.Observe(sample)

	st.samples = append(st.samples, sample)
	if len(st.samples) > SampleCap {
		st.samples = st.samples[len(st.samples)-SampleCap:]
	}

	st.sinceSave++
}

// MaybeAutosave persists the store once enough samples have accumulated
// since the last save. Reports whether a save was attempted.
func (st *Store) MaybeAutosave() bool {
	if st.sinceSave < AutosaveEvery {
		return false
	}
	st.SaveNow()
	return true
}

// SaveNow persists the store immediately. Persistence failure is
// non-fatal: the in-memory state stays authoritative and the next
// autosave supersedes this one, so failures are logged and swallowed.
func (st *Store) SaveNow() {
	st.sinceSave = 0

	if err := st.save(); err != nil {
		logger.Warn().Err(err).Str("path", st.path).Msg("History save failed")
		return
	}

	logger.Debug().Int("samples", len(st.samples)).Str("path", st.path).Msg("History saved")
}

func (st *Store) save() error {
	errFactory := errors.New()

	doc := document{
		Samples:        st.samples,
		ChargeSessions: st.tracker.CompletedSessions(),
	}

	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return errFactory.Wrap(errors.ErrHistoryEncode, err)
	}

	if err := os.MkdirAll(filepath.Dir(st.path), defaultDirPerm); err != nil {
		return errFactory.Wrap(errors.ErrHistoryWrite, err)
	}
	if err := os.WriteFile(st.path, data, defaultFilePerm); err != nil {
		return errFactory.Wrap(errors.ErrHistoryWrite, err)
	}

	return nil
}

// Samples returns the rolling history, oldest first. The returned slice
// is the store's own; callers must not mutate it.
func (st *Store) Samples() []battery.Sample {
	return st.samples
}

// Len returns the number of retained samples.
func (st *Store) Len() int {
	return len(st.samples)
}

// LastSample returns the most recent sample, or nil when empty.
func (st *Store) LastSample() *battery.Sample {
	if len(st.samples) == 0 {
		return nil
	}
	return &st.samples[len(st.samples)-1]
}

// CompletedSessions returns the retained completed sessions, oldest
// first, at most SessionRetention of them.
func (st *Store) CompletedSessions() []ChargeSession {
	return st.tracker.CompletedSessions()
}

// ActiveSession returns the in-progress charge session, if any.
func (st *Store) ActiveSession() *ChargeSession {
	return st.tracker.Active()
}

// VisibleSamples returns the subrange of the rolling history the
// viewport currently selects.
func (st *Store) VisibleSamples(vp *chart.Viewport) []battery.Sample {
	lo, hi := vp.Clamp(len(st.samples))
	return st.samples[lo:hi]
}
