package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		// Namespaced JSON blobs: energy snapshot, reward-mode descriptor,
		// last-seen date marker. Each key has exactly one writer.
		`CREATE TABLE IF NOT EXISTS state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Trailing daily energy history. One row per calendar date,
		// write-once: a date already archived is never overwritten.
		`CREATE TABLE IF NOT EXISTS energy_history (
			date TEXT PRIMARY KEY,
			xp   INTEGER NOT NULL
		)`,

		// Celebrated milestones, per notifier namespace. A row here means
		// the milestone never fires again.
		`CREATE TABLE IF NOT EXISTS seen_milestones (
			namespace TEXT NOT NULL,
			milestone TEXT NOT NULL,
			seen_at   TEXT NOT NULL,
			PRIMARY KEY (namespace, milestone)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_history_date ON energy_history(date)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
