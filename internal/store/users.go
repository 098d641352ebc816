package store

import (
	"context"
	"fmt"

	"openmusic-service/internal/domain"
)

func (s *Postgres) GetUser(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	err := s.db.QueryRow(ctx, `SELECT id, username, fullname FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.Fullname)
	if noRows(err) {
		return domain.User{}, domain.NotFound("user not found")
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
