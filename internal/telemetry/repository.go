package telemetry

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/halden/battrack/internal/battery"
	"codeberg.org/halden/battrack/internal/errors"
	"codeberg.org/halden/battrack/internal/logger"
)

type sqliteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	logger.Debug().Str("path", cfg.DBPath).Msg("Initializing telemetry repository")

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal=WAL")
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteRepository{
		db: db,
	}, nil
}

func (r *sqliteRepository) Record(sample *battery.Sample) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	errFactory := errors.New()

	_, err := r.db.Exec(`
        INSERT INTO samples (
            timestamp, capacity, power_watts,
            voltage_v, energy_wh, energy_full_wh, status
        ) VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(timestamp) DO UPDATE SET
            capacity = excluded.capacity,
            power_watts = excluded.power_watts,
            voltage_v = excluded.voltage_v,
            energy_wh = excluded.energy_wh,
            energy_full_wh = excluded.energy_full_wh,
            status = excluded.status
    `,
		sample.Timestamp.Unix(),
		sample.Capacity,
		sample.PowerWatts,
		sample.VoltageV,
		sample.EnergyWh,
		sample.EnergyFullWh,
		sample.Status.String(),
	)
	if err != nil {
		return errFactory.Wrap(ErrStorageAccess, err)
	}

	return nil
}

func (r *sqliteRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}
	return nil
}
