package telemetry

import (
	"context"

	"codeberg.org/halden/battrack/internal/battery"
)

// Collector is the long-term archive for samples. Unlike the rolling
// history it is append-only and unbounded; it exists so analysis can
// reach past the history cap.
type Collector interface {
	Record(ctx context.Context, sample *battery.Sample) error
	Close() error
}

// Repository defines the storage backend for archived samples.
type Repository interface {
	Record(sample *battery.Sample) error
	Close() error
}
