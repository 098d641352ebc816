package store

import (
	"context"
	"fmt"

	"openmusic-service/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id       TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		fullname TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS albums (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		year INT  NOT NULL
	)`,
	`ALTER TABLE albums ADD COLUMN IF NOT EXISTS cover_url TEXT`,
	`CREATE TABLE IF NOT EXISTS songs (
		id        TEXT PRIMARY KEY,
		title     TEXT NOT NULL,
		year      INT  NOT NULL,
		genre     TEXT NOT NULL,
		performer TEXT NOT NULL,
		duration  INT,
		album_id  TEXT REFERENCES albums(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS playlists (
		id    TEXT PRIMARY KEY,
		name  TEXT NOT NULL,
		owner TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS playlist_songs (
		id          TEXT PRIMARY KEY,
		playlist_id TEXT NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
		song_id     TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
		UNIQUE (playlist_id, song_id)
	)`,
	`CREATE TABLE IF NOT EXISTS collaborations (
		id          TEXT PRIMARY KEY,
		playlist_id TEXT NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
		user_id     TEXT NOT NULL,
		UNIQUE (playlist_id, user_id)
	)`,
	// No foreign keys: the trail outlives playlists, songs and users.
	`CREATE TABLE IF NOT EXISTS activities (
		id          TEXT PRIMARY KEY,
		playlist_id TEXT NOT NULL,
		song_id     TEXT NOT NULL,
		user_id     TEXT NOT NULL,
		action      TEXT NOT NULL CHECK (action IN ('add', 'delete')),
		time        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`ALTER TABLE activities DROP CONSTRAINT IF EXISTS activities_playlist_id_fkey`,
	`CREATE INDEX IF NOT EXISTS idx_activities_playlist_time ON activities(playlist_id, time)`,
	`CREATE TABLE IF NOT EXISTS user_album_likes (
		id       TEXT PRIMARY KEY,
		user_id  TEXT NOT NULL,
		album_id TEXT NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
		UNIQUE (user_id, album_id)
	)`,
}

// AutoMigrate creates the catalog tables if they are missing. It is safe to
// run on every start.
func AutoMigrate(ctx context.Context, db domain.DB) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i, err)
		}
	}
	return nil
}
