package state

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct{ *sql.DB }

func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{DB: db}, nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,

		// Feed items already learned, keyed by GUID so ingestion is idempotent.
		`CREATE TABLE IF NOT EXISTS feed_items (
			guid TEXT PRIMARY KEY,
			feed TEXT NOT NULL,
			title TEXT,
			learned_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_feed_items_feed ON feed_items(feed);`,

		// Everything the bot has said or heard (kind: said|heard|random|greeting).
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			kind TEXT NOT NULL,
			text TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_kind ON messages(kind);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// SeenFeedItem reports whether the GUID was already ingested.
func (d *DB) SeenFeedItem(guid string) bool {
	var g string
	_ = d.QueryRow(`SELECT guid FROM feed_items WHERE guid=?`, guid).Scan(&g)
	return g != ""
}

// MarkFeedItem records an ingested item.
func (d *DB) MarkFeedItem(guid, feed, title string) {
	_, _ = d.Exec(
		`INSERT OR IGNORE INTO feed_items(guid, feed, title, learned_at) VALUES(?,?,?,?)`,
		guid, feed, title, time.Now().Format(time.RFC3339),
	)
}

// LogMessage archives one chat line. Best-effort.
func (d *DB) LogMessage(kind, text string) {
	_, _ = d.Exec(
		`INSERT INTO messages(created_at, kind, text) VALUES(?,?,?)`,
		time.Now().Format(time.RFC3339), kind, text,
	)
}
