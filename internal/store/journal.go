package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// JournalEntry is one applied action.
type JournalEntry struct {
	ID         string `json:"id"`
	AtUnixMs   int64  `json:"at_unix_ms"`
	ActionType string `json:"type"`
	// Action is the JSON encoding of the action.
	Action string `json:"action"`
}

// Journal is an append-only log of applied actions kept next to a board file.
type Journal struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// JournalPath returns the journal location for a board file.
func JournalPath(boardPath string) string {
	return strings.TrimSuffix(boardPath, ".json") + ".journal.sqlite"
}

func OpenJournal(ctx context.Context, path string) (*Journal, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("journal: missing path")
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the server and CLI share one journal.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS actions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		at_unixms INTEGER NOT NULL,
		type TEXT NOT NULL,
		action_json TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db, path: path, now: time.Now}, nil
}

func (j *Journal) Path() string { return j.path }

// Append records an applied action and returns the stored entry.
func (j *Journal) Append(ctx context.Context, actionType string, actionJSON []byte) (JournalEntry, error) {
	e := JournalEntry{
		ID:         uuid.NewString(),
		AtUnixMs:   j.now().UnixMilli(),
		ActionType: actionType,
		Action:     string(actionJSON),
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO actions (id, at_unixms, type, action_json) VALUES (?, ?, ?, ?)`,
		e.ID, e.AtUnixMs, e.ActionType, e.Action,
	)
	if err != nil {
		return JournalEntry{}, err
	}
	return e, nil
}

// Tail returns the newest n entries, oldest first. n <= 0 returns every entry.
func (j *Journal) Tail(ctx context.Context, n int) ([]JournalEntry, error) {
	q := `SELECT id, at_unixms, type, action_json FROM actions ORDER BY seq DESC`
	args := []any{}
	if n > 0 {
		q += ` LIMIT ?`
		args = append(args, n)
	}
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []JournalEntry{}
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.AtUnixMs, &e.ActionType, &e.Action); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, k := 0, len(out)-1; i < k; i, k = i+1, k-1 {
		out[i], out[k] = out[k], out[i]
	}
	return out, nil
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}
