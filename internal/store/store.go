package store

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"openmusic-service/internal/domain"
)

// Postgres implements the catalog persistence on top of a pgx pool. Every
// method issues single statements; callers sequence them.
type Postgres struct {
	db domain.DB
}

func NewPostgres(db domain.DB) *Postgres {
	return &Postgres{db: db}
}

func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
