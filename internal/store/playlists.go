package store

import (
	"context"
	"fmt"

	"openmusic-service/internal/domain"
)

func (s *Postgres) AddPlaylist(ctx context.Context, name, ownerID string) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO playlists (id, name, owner)
		VALUES ($1, $2, $3)
		RETURNING id
	`, domain.NewID("playlist"), name, ownerID).Scan(&id)
	if noRows(err) || (err == nil && id == "") {
		return "", domain.Invariant("fail to add playlist")
	}
	if err != nil {
		return "", fmt.Errorf("insert playlist: %w", err)
	}
	return id, nil
}

// ListPlaylists returns the playlists the user owns or collaborates on.
func (s *Postgres) ListPlaylists(ctx context.Context, userID string) ([]domain.Playlist, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT p.id, p.name, p.owner, COALESCE(u.username, '')
		FROM playlists p
		LEFT JOIN collaborations c ON c.playlist_id = p.id
		LEFT JOIN users u ON u.id = p.owner
		WHERE p.owner = $1 OR c.user_id = $1
		ORDER BY p.name, p.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := []domain.Playlist{}
	for rows.Next() {
		var pl domain.Playlist
		if err := rows.Scan(&pl.ID, &pl.Name, &pl.OwnerID, &pl.Username); err != nil {
			return nil, fmt.Errorf("list playlists scan: %w", err)
		}
		playlists = append(playlists, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list playlists rows: %w", err)
	}
	return playlists, nil
}

// PlaylistOwner returns the owner id, or a NotFound error when the playlist
// does not exist.
func (s *Postgres) PlaylistOwner(ctx context.Context, playlistID string) (string, error) {
	var owner string
	err := s.db.QueryRow(ctx, `SELECT owner FROM playlists WHERE id = $1`, playlistID).Scan(&owner)
	if noRows(err) {
		return "", domain.NotFound("playlist not found")
	}
	if err != nil {
		return "", fmt.Errorf("playlist owner: %w", err)
	}
	return owner, nil
}

func (s *Postgres) GetPlaylistWithSongs(ctx context.Context, playlistID string) (domain.PlaylistWithSongs, error) {
	var pl domain.PlaylistWithSongs
	err := s.db.QueryRow(ctx, `
		SELECT p.id, p.name, p.owner, COALESCE(u.username, '')
		FROM playlists p
		LEFT JOIN users u ON u.id = p.owner
		WHERE p.id = $1
	`, playlistID).Scan(&pl.ID, &pl.Name, &pl.OwnerID, &pl.Username)
	if noRows(err) {
		return domain.PlaylistWithSongs{}, domain.NotFound("playlist not found")
	}
	if err != nil {
		return domain.PlaylistWithSongs{}, fmt.Errorf("get playlist: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT s.id, s.title, s.performer
		FROM songs s
		JOIN playlist_songs ps ON ps.song_id = s.id
		WHERE ps.playlist_id = $1
		ORDER BY s.title, s.id
	`, playlistID)
	if err != nil {
		return domain.PlaylistWithSongs{}, fmt.Errorf("get playlist songs: %w", err)
	}
	defer rows.Close()

	pl.Songs = []domain.SongSummary{}
	for rows.Next() {
		var sg domain.SongSummary
		if err := rows.Scan(&sg.ID, &sg.Title, &sg.Performer); err != nil {
			return domain.PlaylistWithSongs{}, fmt.Errorf("get playlist songs scan: %w", err)
		}
		pl.Songs = append(pl.Songs, sg)
	}
	if err := rows.Err(); err != nil {
		return domain.PlaylistWithSongs{}, fmt.Errorf("get playlist songs rows: %w", err)
	}
	return pl, nil
}

func (s *Postgres) DeletePlaylist(ctx context.Context, playlistID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, playlistID)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("fail to delete playlist, id not found")
	}
	return nil
}

// AddPlaylistSong inserts the (playlist, song) relation. Adding a song that
// is already on the playlist is rejected as Invalid.
func (s *Postgres) AddPlaylistSong(ctx context.Context, playlistID, songID string) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO playlist_songs (id, playlist_id, song_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (playlist_id, song_id) DO NOTHING
		RETURNING id
	`, domain.NewID("playlist_song"), playlistID, songID).Scan(&id)
	if noRows(err) {
		return "", domain.Invalid("song is already in the playlist")
	}
	if err != nil {
		return "", fmt.Errorf("insert playlist song: %w", err)
	}
	if id == "" {
		return "", domain.Invariant("fail to add song to playlist")
	}
	return id, nil
}

// DeletePlaylistSong removes one song from one playlist only.
func (s *Postgres) DeletePlaylistSong(ctx context.Context, playlistID, songID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM playlist_songs WHERE playlist_id = $1 AND song_id = $2
	`, playlistID, songID)
	if err != nil {
		return fmt.Errorf("delete playlist song: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("song is not in the playlist")
	}
	return nil
}
