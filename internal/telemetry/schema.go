package telemetry

import (
	"database/sql"

	"codeberg.org/halden/battrack/internal/errors"
)

// initSchema initializes the database schema for archived samples
func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS samples (
            timestamp INTEGER PRIMARY KEY,
            capacity REAL,
            power_watts REAL,
            voltage_v REAL,
            energy_wh REAL,
            energy_full_wh REAL,
            status TEXT
        )
    `)
	if err != nil {
		return errors.New().Wrap(ErrStorageInit, err)
	}

	return nil
}
