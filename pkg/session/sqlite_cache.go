package session

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteCache is the durable local session store. A single row keyed
// by CacheKey holds the last established session.
type SQLiteCache struct {
	DB *sql.DB
}

const cacheSchema = `
	CREATE TABLE IF NOT EXISTS local_session (
		cache_key    TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		identifier   TEXT NOT NULL,
		display_name TEXT NOT NULL,
		role         TEXT NOT NULL,
		token        TEXT NOT NULL,
		expiry       TIMESTAMP NOT NULL
	);`

func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteCache{DB: db}, nil
}

func (c *SQLiteCache) Read() (*LocalSession, error) {
	var s LocalSession
	var expiry time.Time

	err := c.DB.QueryRow(`
		SELECT user_id, identifier, display_name, role, token, expiry
		FROM local_session WHERE cache_key = ?
	`, CacheKey).Scan(&s.UserID, &s.Identifier, &s.DisplayName, &s.Role, &s.Token, &expiry)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.Expiry = expiry
	return &s, nil
}

func (c *SQLiteCache) Write(s *LocalSession) error {
	_, err := c.DB.Exec(`
		INSERT OR REPLACE INTO local_session
			(cache_key, user_id, identifier, display_name, role, token, expiry)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, CacheKey, s.UserID, s.Identifier, s.DisplayName, s.Role, s.Token, s.Expiry)
	return err
}

func (c *SQLiteCache) Clear() error {
	_, err := c.DB.Exec(`DELETE FROM local_session WHERE cache_key = ?`, CacheKey)
	return err
}

func (c *SQLiteCache) Close() error {
	return c.DB.Close()
}
