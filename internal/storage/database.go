package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
// A single connection is kept open so that ":memory:" databases persist for
// the life of the DB.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Entry is one recorded UI event.
type Entry struct {
	ID         int64
	Session    string
	Action     string
	CardID     sql.NullInt64 // unset for events without a card, e.g. quotes
	Detail     string
	RecordedAt time.Time
}

// InsertEntry appends e to the activity log and returns its ID. A zero
// RecordedAt is replaced with the current time.
func (db *DB) InsertEntry(e Entry) (int64, error) {
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
	res, err := db.conn.Exec(`
		INSERT INTO activity (session, action, card_id, detail, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		e.Session,
		e.Action,
		e.CardID,
		e.Detail,
		e.RecordedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert %s entry: %w", e.Action, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for %s entry: %w", e.Action, err)
	}
	return id, nil
}

// RecentEntries returns up to limit entries, newest first.
func (db *DB) RecentEntries(limit int) ([]Entry, error) {
	rows, err := db.conn.Query(`
		SELECT id, session, action, card_id, detail, recorded_at
		FROM activity
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID,
			&e.Session,
			&e.Action,
			&e.CardID,
			&e.Detail,
			&e.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity rows: %w", err)
	}
	return entries, nil
}

// CountActions tallies the entries recorded for a session by action.
func (db *DB) CountActions(session string) (map[string]int, error) {
	rows, err := db.conn.Query(`
		SELECT action, COUNT(*)
		FROM activity WHERE session = ?
		GROUP BY action
	`, session)
	if err != nil {
		return nil, fmt.Errorf("failed to count actions for session %s: %w", session, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			action string
			n      int
		)
		if err := rows.Scan(&action, &n); err != nil {
			return nil, fmt.Errorf("failed to scan action count: %w", err)
		}
		counts[action] = n
	}
	return counts, rows.Err()
}
