package store

import (
	"context"
	"fmt"
	"strings"

	"openmusic-service/internal/domain"
)

func (s *Postgres) AddSong(ctx context.Context, in domain.SongInput) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO songs (id, title, year, genre, performer, duration, album_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, domain.NewID("song"), in.Title, in.Year, in.Genre, in.Performer, in.Duration, in.AlbumID).Scan(&id)
	if noRows(err) || (err == nil && id == "") {
		return "", domain.Invariant("fail to add song")
	}
	if err != nil {
		return "", fmt.Errorf("insert song: %w", err)
	}
	return id, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListSongs returns songs whose title and performer contain the given
// fragments, case-insensitively. Empty fragments match everything; % and _
// match themselves.
func (s *Postgres) ListSongs(ctx context.Context, title, performer string) ([]domain.SongSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, performer
		FROM songs
		WHERE ($1 = '' OR LOWER(title) LIKE '%' || LOWER($1) || '%' ESCAPE '\')
		  AND ($2 = '' OR LOWER(performer) LIKE '%' || LOWER($2) || '%' ESCAPE '\')
		ORDER BY title, id
	`, likeEscaper.Replace(title), likeEscaper.Replace(performer))
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	songs := []domain.SongSummary{}
	for rows.Next() {
		var sg domain.SongSummary
		if err := rows.Scan(&sg.ID, &sg.Title, &sg.Performer); err != nil {
			return nil, fmt.Errorf("list songs scan: %w", err)
		}
		songs = append(songs, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list songs rows: %w", err)
	}
	return songs, nil
}

func (s *Postgres) GetSong(ctx context.Context, id string) (domain.Song, error) {
	var sg domain.Song
	err := s.db.QueryRow(ctx, `
		SELECT id, title, year, genre, performer, duration, album_id
		FROM songs
		WHERE id = $1
	`, id).Scan(&sg.ID, &sg.Title, &sg.Year, &sg.Genre, &sg.Performer, &sg.Duration, &sg.AlbumID)
	if noRows(err) {
		return domain.Song{}, domain.NotFound("song not found")
	}
	if err != nil {
		return domain.Song{}, fmt.Errorf("get song: %w", err)
	}
	return sg, nil
}

// UpdateSong overwrites a song and returns the album it belonged to before
// the update, so callers can invalidate both the old and the new album.
func (s *Postgres) UpdateSong(ctx context.Context, id string, in domain.SongInput) (prevAlbumID *string, err error) {
	err = s.db.QueryRow(ctx, `
		UPDATE songs
		SET title = $1, year = $2, genre = $3, performer = $4, duration = $5, album_id = $6
		FROM (SELECT id, album_id FROM songs WHERE id = $7 FOR UPDATE) prev
		WHERE songs.id = prev.id
		RETURNING prev.album_id
	`, in.Title, in.Year, in.Genre, in.Performer, in.Duration, in.AlbumID, id).Scan(&prevAlbumID)
	if noRows(err) {
		return nil, domain.NotFound("fail to update song, id not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update song: %w", err)
	}
	return prevAlbumID, nil
}

// DeleteSong removes a song and returns the album it belonged to.
func (s *Postgres) DeleteSong(ctx context.Context, id string) (albumID *string, err error) {
	err = s.db.QueryRow(ctx, `DELETE FROM songs WHERE id = $1 RETURNING album_id`, id).Scan(&albumID)
	if noRows(err) {
		return nil, domain.NotFound("fail to delete song, id not found")
	}
	if err != nil {
		return nil, fmt.Errorf("delete song: %w", err)
	}
	return albumID, nil
}
