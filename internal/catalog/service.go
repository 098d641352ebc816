// Package catalog composes the store, cache, access resolver and audit log
// into the operations the HTTP layer exposes.
package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"openmusic-service/internal/cache"
	"openmusic-service/internal/domain"
	"openmusic-service/internal/metrics"
)

// Store is everything catalog needs from persistence. *store.Postgres
// satisfies it.
type Store interface {
	AddSong(ctx context.Context, in domain.SongInput) (string, error)
	ListSongs(ctx context.Context, title, performer string) ([]domain.SongSummary, error)
	GetSong(ctx context.Context, id string) (domain.Song, error)
	UpdateSong(ctx context.Context, id string, in domain.SongInput) (*string, error)
	DeleteSong(ctx context.Context, id string) (*string, error)

	AddAlbum(ctx context.Context, in domain.AlbumInput) (string, error)
	GetAlbum(ctx context.Context, id string) (domain.Album, error)
	UpdateAlbum(ctx context.Context, id string, in domain.AlbumInput) error
	SetAlbumCover(ctx context.Context, id, coverURL string) error
	DeleteAlbum(ctx context.Context, id string) ([]string, error)
	AlbumExists(ctx context.Context, id string) (bool, error)

	HasLike(ctx context.Context, userID, albumID string) (bool, error)
	AddLike(ctx context.Context, userID, albumID string) error
	RemoveLike(ctx context.Context, userID, albumID string) error
	CountLikes(ctx context.Context, albumID string) (int, error)

	AddPlaylist(ctx context.Context, name, ownerID string) (string, error)
	ListPlaylists(ctx context.Context, userID string) ([]domain.Playlist, error)
	GetPlaylistWithSongs(ctx context.Context, playlistID string) (domain.PlaylistWithSongs, error)
	DeletePlaylist(ctx context.Context, playlistID string) error
	AddPlaylistSong(ctx context.Context, playlistID, songID string) (string, error)
	DeletePlaylistSong(ctx context.Context, playlistID, songID string) error

	AddCollaboration(ctx context.Context, playlistID, userID string) (string, error)
	DeleteCollaboration(ctx context.Context, playlistID, userID string) error

	GetUser(ctx context.Context, id string) (domain.User, error)
}

type Authorizer interface {
	AuthorizeOwner(ctx context.Context, playlistID, userID string) error
	AuthorizeAccess(ctx context.Context, playlistID, userID string) error
}

type AuditLog interface {
	Record(ctx context.Context, playlistID, songID, userID string, action domain.Action) (string, error)
	List(ctx context.Context, playlistID string) ([]domain.Activity, error)
}

type Deps struct {
	Store    Store
	Auth     Authorizer
	Audit    AuditLog
	Cache    cache.Backend
	CacheTTL time.Duration
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

type Service struct {
	store   Store
	auth    Authorizer
	audit   AuditLog
	backend cache.Backend
	logger  *zap.Logger
	metrics *metrics.Metrics

	songs  *cache.Aside[domain.Song]
	albums *cache.Aside[domain.Album]
	likes  *cache.Aside[int]
}

func NewService(d Deps) *Service {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cacheLog := logger.Named("cache")
	return &Service{
		store:   d.Store,
		auth:    d.Auth,
		audit:   d.Audit,
		backend: d.Cache,
		logger:  logger,
		metrics: d.Metrics,
		songs:   cache.NewAside[domain.Song](d.Cache, "song", d.CacheTTL, cacheLog, d.Metrics),
		albums:  cache.NewAside[domain.Album](d.Cache, "album", d.CacheTTL, cacheLog, d.Metrics),
		likes:   cache.NewAside[int](d.Cache, "like", d.CacheTTL, cacheLog, d.Metrics),
	}
}

// invalidate drops keys across namespaces after a committed write.
func (s *Service) invalidate(ctx context.Context, kind string, keys ...string) {
	cache.Invalidate(ctx, s.backend, s.logger.Named("cache"), s.metrics, kind, keys...)
}

func (s *Service) requireAlbum(ctx context.Context, albumID *string) error {
	if albumID == nil {
		return nil
	}
	ok, err := s.store.AlbumExists(ctx, *albumID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("album not found")
	}
	return nil
}
