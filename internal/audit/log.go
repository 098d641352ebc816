// Package audit records song additions and removals on playlists.
package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"openmusic-service/internal/domain"
)

type Log struct {
	db  domain.DB
	now func() time.Time
}

func NewLog(db domain.DB) *Log {
	return &Log{db: db, now: time.Now}
}

// WithClock replaces the timestamp source.
func (l *Log) WithClock(now func() time.Time) *Log {
	l.now = now
	return l
}

// Record appends one entry and returns its id. Entries are never updated or
// deleted by the service; they outlive the songs and users they mention.
func (l *Log) Record(ctx context.Context, playlistID, songID, userID string, action domain.Action) (string, error) {
	if !action.Valid() {
		return "", domain.Invariant(fmt.Sprintf("unknown activity action %q", action))
	}

	var id string
	err := l.db.QueryRow(ctx, `
		INSERT INTO activities (id, playlist_id, song_id, user_id, action, time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		domain.NewID("activity"), playlistID, songID, userID, string(action), l.now().UTC(),
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && id == "") {
		return "", domain.Invariant("activity was not recorded")
	}
	if err != nil {
		return "", fmt.Errorf("record activity: %w", err)
	}
	return id, nil
}

// List returns the playlist's entries oldest first. Username and title are
// empty when the user or song no longer exists.
func (l *Log) List(ctx context.Context, playlistID string) ([]domain.Activity, error) {
	rows, err := l.db.Query(ctx, `
		SELECT a.id, a.playlist_id, a.song_id, a.user_id,
		       COALESCE(u.username, ''), COALESCE(s.title, ''), a.action, a.time
		FROM activities a
		LEFT JOIN users u ON u.id = a.user_id
		LEFT JOIN songs s ON s.id = a.song_id
		WHERE a.playlist_id = $1
		ORDER BY a.time ASC, a.id ASC`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		var a domain.Activity
		var action string
		if err := rows.Scan(&a.ID, &a.PlaylistID, &a.SongID, &a.UserID, &a.Username, &a.Title, &action, &a.Time); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Action = domain.Action(action)
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
