// Package app wires the sample source, history store, telemetry
// archive and chart viewports into one explicitly-passed context
// struct. All state here is owned by a single control flow: the
// monitor loop drives Tick/Shutdown, user input drives the view and
// viewport methods, and nothing is accessed concurrently.
package app

import (
	"context"

	"codeberg.org/halden/battrack/internal/battery"
	"codeberg.org/halden/battrack/internal/chart"
	"codeberg.org/halden/battrack/internal/history"
	"codeberg.org/halden/battrack/internal/logger"
	"codeberg.org/halden/battrack/internal/telemetry"
)

// App is the application context.
type App struct {
	source    battery.Source
	store     *history.Store
	collector telemetry.Collector

	view       chart.View
	historyVP  chart.Viewport
	sessionVP  chart.Viewport
	lastSample *battery.Sample
}

func New(source battery.Source, store *history.Store, collector telemetry.Collector) *App {
	return &App{
		source:    source,
		store:     store,
		collector: collector,
		view:      chart.DashboardView(),
	}
}

// Tick performs one sampling step: read a sample, record it, archive
// it, and autosave if due. A failed read skips the tick and keeps all
// prior state; the next tick is the retry.
func (a *App) Tick(ctx context.Context) {
	sample, err := a.source.Read()
	if err != nil {
		logger.Debug().Err(err).Msg("Sample unavailable, skipping tick")
		return
	}

	a.lastSample = &sample
	a.store.RecordSample(sample)

	if a.store.MaybeAutosave() {
		logger.Debug().Msg("Autosave triggered")
	}

	if err := a.collector.Record(ctx, &sample); err != nil {
		// Same policy as history persistence: never let storage
		// trouble interrupt sampling
		logger.Warn().Err(err).Msg("Telemetry record failed")
	}

	logger.Info().
		Float64("capacity", sample.Capacity).
		Float64("power_watts", sample.PowerWatts).
		Float64("voltage_v", sample.VoltageV).
		Str("status", sample.Status.String()).
		Msg("")
}

// Shutdown is the guaranteed-flush path: a forced save plus archive
// close, run exactly once when the loop stops.
func (a *App) Shutdown() {
	a.store.SaveNow()

	if err := a.collector.Close(); err != nil {
		logger.Warn().Err(err).Msg("Telemetry close failed")
	}
}

// Store exposes the history store to the renderer collaborator.
func (a *App) Store() *history.Store {
	return a.store
}

// LastSample returns the most recent successful reading, if any.
func (a *App) LastSample() *battery.Sample {
	return a.lastSample
}

// View returns the current renderer view.
func (a *App) View() chart.View {
	return a.view
}

func (a *App) SwitchToDashboard() {
	a.view = chart.DashboardView()
}

func (a *App) SwitchToHistory() {
	a.view = chart.HistoryChartView()
	a.historyVP.FitToData(a.store.Len())
}

// SwitchToSession switches to a session detail view if the index
// refers to a retained session; out-of-range indices are ignored.
func (a *App) SwitchToSession(index int) {
	sessions := a.store.CompletedSessions()
	if index < 0 || index >= len(sessions) {
		return
	}
	a.view = chart.SessionDetailView(index)
	a.sessionVP.FitToData(len(sessions[index].Samples))
}

// ActiveViewport returns the viewport owned by the current view.
// The session detail view has its own, so zooming a session does not
// disturb the history chart.
func (a *App) ActiveViewport() *chart.Viewport {
	if a.view.Kind == chart.SessionDetail {
		return &a.sessionVP
	}
	return &a.historyVP
}

func (a *App) ZoomIn()  { a.ActiveViewport().ZoomIn(a.dataLen()) }
func (a *App) ZoomOut() { a.ActiveViewport().ZoomOut(a.dataLen()) }

func (a *App) PanLeft()  { a.ActiveViewport().PanLeft(a.dataLen()) }
func (a *App) PanRight() { a.ActiveViewport().PanRight(a.dataLen()) }

// FitToData resets the active viewport to the full range of the data
// behind the current view.
func (a *App) FitToData() {
	a.ActiveViewport().FitToData(a.dataLen())
}

// CurrentWindow reports the active viewport's clamped window.
func (a *App) CurrentWindow() chart.Window {
	return a.ActiveViewport().CurrentWindow(a.dataLen())
}

// VisibleSamples returns the slice of samples the current view's
// viewport selects. Bounds are recomputed against the live data length
// on every call, never cached.
func (a *App) VisibleSamples() []battery.Sample {
	if a.view.Kind == chart.SessionDetail {
		sessions := a.store.CompletedSessions()
		if a.view.Session >= len(sessions) {
			return nil
		}
		samples := sessions[a.view.Session].Samples
		lo, hi := a.sessionVP.Clamp(len(samples))
		return samples[lo:hi]
	}
	return a.store.VisibleSamples(&a.historyVP)
}

func (a *App) dataLen() int {
	if a.view.Kind == chart.SessionDetail {
		sessions := a.store.CompletedSessions()
		if a.view.Session >= len(sessions) {
			return 0
		}
		return len(sessions[a.view.Session].Samples)
	}
	return a.store.Len()
}
