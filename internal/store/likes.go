package store

import (
	"context"
	"fmt"

	"openmusic-service/internal/domain"
)

func (s *Postgres) HasLike(ctx context.Context, userID, albumID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM user_album_likes WHERE user_id = $1 AND album_id = $2)
	`, userID, albumID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has like: %w", err)
	}
	return exists, nil
}

func (s *Postgres) AddLike(ctx context.Context, userID, albumID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_album_likes (id, user_id, album_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, album_id) DO NOTHING
	`, domain.NewID("like"), userID, albumID)
	if err != nil {
		return fmt.Errorf("add like: %w", err)
	}
	return nil
}

func (s *Postgres) RemoveLike(ctx context.Context, userID, albumID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM user_album_likes WHERE user_id = $1 AND album_id = $2
	`, userID, albumID)
	if err != nil {
		return fmt.Errorf("remove like: %w", err)
	}
	return nil
}

func (s *Postgres) CountLikes(ctx context.Context, albumID string) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_album_likes WHERE album_id = $1`, albumID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}
