package store

import (
	"context"
	"fmt"

	"openmusic-service/internal/domain"
)

func (s *Postgres) AddCollaboration(ctx context.Context, playlistID, userID string) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO collaborations (id, playlist_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (playlist_id, user_id) DO NOTHING
		RETURNING id
	`, domain.NewID("collab"), playlistID, userID).Scan(&id)
	if noRows(err) {
		return "", domain.Invalid("user is already a collaborator")
	}
	if err != nil {
		return "", fmt.Errorf("insert collaboration: %w", err)
	}
	if id == "" {
		return "", domain.Invariant("fail to add collaborator")
	}
	return id, nil
}

func (s *Postgres) DeleteCollaboration(ctx context.Context, playlistID, userID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM collaborations WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID)
	if err != nil {
		return fmt.Errorf("delete collaboration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("fail to delete collaborator, data not found")
	}
	return nil
}

func (s *Postgres) IsCollaborator(ctx context.Context, playlistID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM collaborations WHERE playlist_id = $1 AND user_id = $2)
	`, playlistID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("is collaborator: %w", err)
	}
	return exists, nil
}
