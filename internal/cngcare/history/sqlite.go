package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Afox1/cngcare/internal/cngcare/core"
	"github.com/Afox1/cngcare/internal/cngcare/core/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	vehicle TEXT NOT NULL,
	generated_at TEXT NOT NULL,
	maintenance_status TEXT NOT NULL,
	maintenance_message TEXT NOT NULL,
	predicted_km INTEGER NOT NULL,
	risk_tier TEXT NOT NULL,
	risk_score INTEGER NOT NULL,
	risk_message TEXT NOT NULL,
	logged INTEGER NOT NULL,
	archive_url TEXT
);
CREATE INDEX IF NOT EXISTS idx_reports_vehicle ON reports(vehicle, generated_at);
`

var _ core.ReportHistory = (*DB)(nil)

// DB records generated reports in a SQLite file.
type DB struct {
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL lets the history listing read while a report is being recorded.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Record stores rec and returns its ID.
func (d *DB) Record(ctx context.Context, rec *model.ReportRecord) (int64, error) {
	res, err := d.db.ExecContext(ctx, `
		INSERT INTO reports (vehicle, generated_at, maintenance_status, maintenance_message,
			predicted_km, risk_tier, risk_score, risk_message, logged, archive_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.Vehicle, rec.GeneratedAt.UTC().Format(time.RFC3339Nano), rec.MaintenanceStatus, rec.MaintenanceMessage,
		rec.PredictedKm, rec.RiskTier, rec.RiskScore, rec.RiskMessage, rec.Logged, nullString(rec.ArchiveURL))
	if err != nil {
		return 0, fmt.Errorf("failed to record report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	rec.ID = id
	return id, nil
}

// ListByVehicle returns up to limit reports of vehicle, newest first.
func (d *DB) ListByVehicle(ctx context.Context, vehicle string, limit int) ([]model.ReportRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, vehicle, generated_at, maintenance_status, maintenance_message,
			predicted_km, risk_tier, risk_score, risk_message, logged, archive_url
		FROM reports
		WHERE vehicle = ?
		ORDER BY generated_at DESC, id DESC
		LIMIT ?
	`, vehicle, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.ReportRecord{}
	for rows.Next() {
		var r model.ReportRecord
		var generatedAt string
		var archiveURL sql.NullString

		err := rows.Scan(&r.ID, &r.Vehicle, &generatedAt, &r.MaintenanceStatus, &r.MaintenanceMessage,
			&r.PredictedKm, &r.RiskTier, &r.RiskScore, &r.RiskMessage, &r.Logged, &archiveURL)
		if err != nil {
			return nil, err
		}

		r.GeneratedAt, err = time.Parse(time.RFC3339Nano, generatedAt)
		if err != nil {
			return nil, fmt.Errorf("report %d: bad timestamp %q: %w", r.ID, generatedAt, err)
		}
		r.ArchiveURL = archiveURL.String

		records = append(records, r)
	}
	return records, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
