package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"artistpulse/internal/model"
)

// SQLiteStore keeps business records in a SQLite table.
type SQLiteStore struct{ db *sql.DB }

func OpenSQLite(path string) (*SQLiteStore, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// each pooled connection would otherwise get its own empty database
		d.SetMaxOpenConns(1)
	} else if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = d.Close()
		return nil, err
	}
	s := &SQLiteStore{db: d}
	if err := s.migrate(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS business_records (
	  user_id TEXT PRIMARY KEY,
	  user_role TEXT NOT NULL DEFAULT '',
	  ingested_releases INTEGER NOT NULL DEFAULT 0,
	  income_last_year REAL NOT NULL DEFAULT 0,
	  updated_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
	);
	`)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, userID string) (model.BusinessRecord, bool, error) {
	rec := model.BusinessRecord{UserID: userID}
	err := s.db.QueryRowContext(ctx,
		`SELECT user_role, ingested_releases, income_last_year FROM business_records WHERE user_id=?`, userID).
		Scan(&rec.Role, &rec.IngestedReleaseCount, &rec.IncomeLastYear)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BusinessRecord{}, false, nil
	}
	if err != nil {
		return model.BusinessRecord{}, false, fmt.Errorf("warehouse: get %s: %w", userID, err)
	}
	return rec, true, nil
}

// Put inserts or replaces a record.
func (s *SQLiteStore) Put(ctx context.Context, rec model.BusinessRecord) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO business_records(user_id, user_role, ingested_releases, income_last_year)
	VALUES(?,?,?,?)
	ON CONFLICT(user_id) DO UPDATE SET
	  user_role=excluded.user_role,
	  ingested_releases=excluded.ingested_releases,
	  income_last_year=excluded.income_last_year,
	  updated_at=strftime('%s','now')`,
		rec.UserID, rec.Role, rec.IngestedReleaseCount, rec.IncomeLastYear)
	return err
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM business_records`).Scan(&n)
	return n, err
}
