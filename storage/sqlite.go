package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"tripstats/domain/business/runsummary"
	"tripstats/utils"
)

const stageName = "storage"

// schemaSQL is embedded at compile time from schema.sql
//
//go:embed schema.sql
var schemaSQL string

var knownTables = []string{"runs", "hourly_trips", "month_hour_trips", "monthly_trips", "month_weekday_trips", "hour_distance"}

// Store wraps a SQLite database holding the aggregates of every run
type Store struct {
	conn *sql.DB
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[stage: %s][method: %s][status: ERROR] %s: %s", stageName, method, message, err.Error())
	}
	return fmt.Sprintf("[stage: %s][method: %s][status: OK] %s", stageName, method, message)
}

// Connect opens a SQLite database with WAL mode and foreign keys enabled
func Connect(dbPath string) (*Store, error) {
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOpeningDatabase, err)
	}

	// single writer
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %s", ErrOpeningDatabase, err)
	}

	log.Debug(getLogMessage("Connect", fmt.Sprintf("connected to %s", dbPath), nil))
	return &Store{conn: conn}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// EnsureSchema creates the tables if they don't exist
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("%w: %s", ErrSchema, err)
	}
	return nil
}

// SaveRun writes the run and its aggregate rows in a single transaction
func (s *Store) SaveRun(ctx context.Context, summary *runsummary.RunSummary) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSavingRun, err)
	}
	defer tx.Rollback()

	report := summary.Report
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, generated_at, input_files, total_rows, kept_rows, dropped_rows,
			invalid_timestamp, missing_field, invalid_coordinate, month_out_of_range, distinct_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.GetRunID(),
		summary.GeneratedAt.UTC().Format(time.RFC3339),
		strings.Join(summary.InputFiles, ","),
		report.TotalRows, report.KeptRows, report.DroppedRows,
		report.InvalidTimestamp, report.MissingField, report.InvalidCoordinate, report.MonthOutOfRange, report.DistinctDays,
	)
	if err != nil {
		log.Error(getLogMessage("SaveRun", "error inserting run", err))
		return fmt.Errorf("%w: %s", ErrSavingRun, err)
	}

	runID := summary.GetRunID()
	inserts := []struct {
		table string
		query string
		rows  int
		args  func(idx int) []any
	}{
		{
			table: "hourly_trips",
			query: `INSERT INTO hourly_trips (run_id, hour, total) VALUES (?, ?, ?)`,
			rows:  len(summary.Hourly),
			args: func(idx int) []any {
				row := summary.Hourly[idx]
				return []any{runID, int(row.Hour), row.Total}
			},
		},
		{
			table: "month_hour_trips",
			query: `INSERT INTO month_hour_trips (run_id, month, month_num, hour, total, hour_group) VALUES (?, ?, ?, ?, ?, ?)`,
			rows:  len(summary.MonthHour),
			args: func(idx int) []any {
				row := summary.MonthHour[idx]
				return []any{runID, row.Month.String(), int(row.Month), int(row.Hour), row.Total, string(row.HourGroup)}
			},
		},
		{
			table: "monthly_trips",
			query: `INSERT INTO monthly_trips (run_id, month, month_num, total) VALUES (?, ?, ?, ?)`,
			rows:  len(summary.Monthly),
			args: func(idx int) []any {
				row := summary.Monthly[idx]
				return []any{runID, row.Month.String(), int(row.Month), row.Total}
			},
		},
		{
			table: "month_weekday_trips",
			query: `INSERT INTO month_weekday_trips (run_id, month_num, weekday, weekday_num, total) VALUES (?, ?, ?, ?, ?)`,
			rows:  len(summary.MonthWeekday),
			args: func(idx int) []any {
				row := summary.MonthWeekday[idx]
				return []any{runID, int(row.Month), row.Weekday.String(), int(row.Weekday), row.Total}
			},
		},
		{
			table: "hour_distance",
			query: `INSERT INTO hour_distance (run_id, hour, trips, avg_distance_km) VALUES (?, ?, ?, ?)`,
			rows:  len(summary.HourDistance),
			args: func(idx int) []any {
				row := summary.HourDistance[idx]
				return []any{runID, int(row.Hour), row.Trips, row.AvgDistanceKm}
			},
		},
	}

	for _, insert := range inserts {
		if err := insertRows(ctx, tx, insert.query, insert.rows, insert.args); err != nil {
			log.Error(getLogMessage("SaveRun", fmt.Sprintf("error inserting into %s", insert.table), err))
			return fmt.Errorf("%w: %s: %s", ErrSavingRun, insert.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %s", ErrSavingRun, err)
	}

	log.Info(getLogMessage("SaveRun", fmt.Sprintf("run %s saved: %d hourly rows, %d month-hour rows", runID, len(summary.Hourly), len(summary.MonthHour)), nil))
	return nil
}

// insertRows runs query once per row inside tx
func insertRows(ctx context.Context, tx *sql.Tx, query string, rows int, args func(idx int) []any) error {
	if rows == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for idx := 0; idx < rows; idx++ {
		if _, err := stmt.ExecContext(ctx, args(idx)...); err != nil {
			return fmt.Errorf("row %d: %w", idx, err)
		}
	}
	return nil
}

// CountRows returns the number of rows of a table, optionally restricted to a run
func (s *Store) CountRows(ctx context.Context, table string, runID string) (int, error) {
	if !utils.ContainsString(table, knownTables) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	query := "SELECT COUNT(*) FROM " + table
	var args []any
	if runID != "" {
		query += " WHERE run_id = ?"
		args = append(args, runID)
	}

	var count int
	if err := s.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SumTotals returns the sum of the totals of a run in an aggregate table
func (s *Store) SumTotals(ctx context.Context, table string, runID string) (int, error) {
	if table == "runs" || table == "hour_distance" || !utils.ContainsString(table, knownTables) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	var total int
	err := s.conn.QueryRowContext(ctx, "SELECT COALESCE(SUM(total), 0) FROM "+table+" WHERE run_id = ?", runID).Scan(&total)
	return total, err
}
