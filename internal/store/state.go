// Package store provides SQLite persistence for focuspulse gamification state.
package store

import (
	"database/sql"
	"encoding/json"
	"time"
)

// State keys. Each key is owned by exactly one component; readers elsewhere
// treat the value as a snapshot.
const (
	KeyEnergySnapshot = "energy.snapshot"
	KeyRewardMode     = "energy.reward_mode"
	KeyLastSeenDate   = "energy.last_seen_date"
)

// Notifier namespaces for the seen_milestones table.
const (
	NamespaceLevel  = "level"
	NamespaceAvatar = "avatar"
)

// HistoryEntry is one archived day of energy.
type HistoryEntry struct {
	Date string `json:"date"`
	XP   int    `json:"xp"`
}

// historyCap bounds the trailing history to the most recent entries.
const historyCap = 14

// GetJSON loads the value stored under key into v. It returns false when the
// key is absent. A stored value that fails to unmarshal is treated as absent,
// never as an error.
func (db *DB) GetJSON(key string, v any) (bool, error) {
	var raw string
	err := db.conn.QueryRow("SELECT value FROM state WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		// Corrupted state resets to defaults rather than failing.
		return false, nil
	}
	return true, nil
}

// PutJSON stores v under key, replacing any previous value.
func (db *DB) PutJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(
		"INSERT INTO state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, string(raw),
	)
	return err
}

// DeleteKey removes a state key. Deleting an absent key is a no-op.
func (db *DB) DeleteKey(key string) error {
	_, err := db.conn.Exec("DELETE FROM state WHERE key = ?", key)
	return err
}

// ArchiveDay records the final energy value for a date. A date already in the
// history is never overwritten. The history is pruned to the most recent
// entries after a successful insert.
func (db *DB) ArchiveDay(date string, xp int) error {
	if _, err := db.conn.Exec(
		"INSERT OR IGNORE INTO energy_history (date, xp) VALUES (?, ?)",
		date, xp,
	); err != nil {
		return err
	}
	_, err := db.conn.Exec(
		`DELETE FROM energy_history WHERE date NOT IN
		 (SELECT date FROM energy_history ORDER BY date DESC LIMIT ?)`,
		historyCap,
	)
	return err
}

// RecentHistory returns up to limit archived days, most recent first.
func (db *DB) RecentHistory(limit int) ([]HistoryEntry, error) {
	rows, err := db.conn.Query(
		"SELECT date, xp FROM energy_history ORDER BY date DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.Date, &e.XP); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MarkMilestoneSeen records a milestone as celebrated within a namespace.
// It returns true when the milestone was newly recorded, false when it had
// already been seen.
func (db *DB) MarkMilestoneSeen(namespace, milestone string) (bool, error) {
	result, err := db.conn.Exec(
		"INSERT OR IGNORE INTO seen_milestones (namespace, milestone, seen_at) VALUES (?, ?, ?)",
		namespace, milestone, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsMilestoneSeen reports whether a milestone was already celebrated.
func (db *DB) IsMilestoneSeen(namespace, milestone string) (bool, error) {
	var one int
	err := db.conn.QueryRow(
		"SELECT 1 FROM seen_milestones WHERE namespace = ? AND milestone = ?",
		namespace, milestone,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SeenMilestones returns all celebrated milestone ids in a namespace.
func (db *DB) SeenMilestones(namespace string) ([]string, error) {
	rows, err := db.conn.Query(
		"SELECT milestone FROM seen_milestones WHERE namespace = ?", namespace,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
