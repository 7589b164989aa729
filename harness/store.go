// store.go — SQLite result store for soak runs.
//
// Every scenario run lands as one row, so regressions across profiles and
// revisions can be diffed with plain SQL. The store is strictly off the hot
// path: rows are written after a scenario completes, never during it.

package harness

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const runSchema = `
CREATE TABLE IF NOT EXISTS soak_runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at  TEXT    NOT NULL,
	profile     TEXT    NOT NULL,
	scenario    TEXT    NOT NULL,
	iterations  INTEGER NOT NULL,
	failures    INTEGER NOT NULL,
	barriers    INTEGER NOT NULL,
	elapsed_ns  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS soak_runs_profile ON soak_runs(profile, scenario);
`

// OpenResultDB opens (creating if needed) the result database and ensures
// the schema exists.
func OpenResultDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(runSchema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InsertResult records one completed scenario run.
func InsertResult(db *sql.DB, startedAt time.Time, r Result) error {
	_, err := db.Exec(
		`INSERT INTO soak_runs
		 (started_at, profile, scenario, iterations, failures, barriers, elapsed_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		startedAt.UTC().Format(time.RFC3339),
		r.Profile, r.Scenario, r.Iterations, r.Failures,
		int64(r.Barriers), r.Elapsed.Nanoseconds(),
	)
	return err
}
