package store

import (
	"context"
	"fmt"

	"openmusic-service/internal/domain"
)

func (s *Postgres) AddAlbum(ctx context.Context, in domain.AlbumInput) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO albums (id, name, year)
		VALUES ($1, $2, $3)
		RETURNING id
	`, domain.NewID("album"), in.Name, in.Year).Scan(&id)
	if noRows(err) || (err == nil && id == "") {
		return "", domain.Invariant("fail to add album")
	}
	if err != nil {
		return "", fmt.Errorf("insert album: %w", err)
	}
	return id, nil
}

// GetAlbum loads an album together with the summaries of its songs.
func (s *Postgres) GetAlbum(ctx context.Context, id string) (domain.Album, error) {
	var al domain.Album
	err := s.db.QueryRow(ctx, `
		SELECT id, name, year, cover_url
		FROM albums
		WHERE id = $1
	`, id).Scan(&al.ID, &al.Name, &al.Year, &al.CoverURL)
	if noRows(err) {
		return domain.Album{}, domain.NotFound("album not found")
	}
	if err != nil {
		return domain.Album{}, fmt.Errorf("get album: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, title, performer
		FROM songs
		WHERE album_id = $1
		ORDER BY title, id
	`, id)
	if err != nil {
		return domain.Album{}, fmt.Errorf("get album songs: %w", err)
	}
	defer rows.Close()

	al.Songs = []domain.SongSummary{}
	for rows.Next() {
		var sg domain.SongSummary
		if err := rows.Scan(&sg.ID, &sg.Title, &sg.Performer); err != nil {
			return domain.Album{}, fmt.Errorf("get album songs scan: %w", err)
		}
		al.Songs = append(al.Songs, sg)
	}
	if err := rows.Err(); err != nil {
		return domain.Album{}, fmt.Errorf("get album songs rows: %w", err)
	}
	return al, nil
}

func (s *Postgres) UpdateAlbum(ctx context.Context, id string, in domain.AlbumInput) error {
	tag, err := s.db.Exec(ctx, `UPDATE albums SET name = $1, year = $2 WHERE id = $3`, in.Name, in.Year, id)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("fail to update album, id not found")
	}
	return nil
}

func (s *Postgres) SetAlbumCover(ctx context.Context, id, coverURL string) error {
	tag, err := s.db.Exec(ctx, `UPDATE albums SET cover_url = $1 WHERE id = $2`, coverURL, id)
	if err != nil {
		return fmt.Errorf("update album cover: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("album not found")
	}
	return nil
}

// DeleteAlbum removes an album and returns the ids of the songs it had. The
// songs survive with album_id set to NULL; detaching them and deleting the
// album happen in one statement, so the returned ids match what was written.
func (s *Postgres) DeleteAlbum(ctx context.Context, id string) ([]string, error) {
	var removed int
	var songIDs []string
	err := s.db.QueryRow(ctx, `
		WITH detached AS (
			UPDATE songs SET album_id = NULL WHERE album_id = $1 RETURNING id
		), removed AS (
			DELETE FROM albums WHERE id = $1 RETURNING id
		)
		SELECT (SELECT COUNT(*) FROM removed), ARRAY(SELECT id FROM detached)
	`, id).Scan(&removed, &songIDs)
	if err != nil {
		return nil, fmt.Errorf("delete album: %w", err)
	}
	if removed == 0 {
		return nil, domain.NotFound("fail to delete album, id not found")
	}
	return songIDs, nil
}

func (s *Postgres) AlbumExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM albums WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("album exists: %w", err)
	}
	return exists, nil
}
