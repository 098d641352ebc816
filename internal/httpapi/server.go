// Package httpapi exposes the catalog over HTTP with chi.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"openmusic-service/internal/domain"
)

// Catalog is the service surface the handlers call. *catalog.Service
// satisfies it.
type Catalog interface {
	AddSong(ctx context.Context, in domain.SongInput) (string, error)
	ListSongs(ctx context.Context, title, performer string) ([]domain.SongSummary, error)
	GetSong(ctx context.Context, id string) (domain.Song, bool, error)
	UpdateSong(ctx context.Context, id string, in domain.SongInput) error
	DeleteSong(ctx context.Context, id string) error

	AddAlbum(ctx context.Context, in domain.AlbumInput) (string, error)
	GetAlbum(ctx context.Context, id string) (domain.Album, bool, error)
	UpdateAlbum(ctx context.Context, id string, in domain.AlbumInput) error
	SetAlbumCover(ctx context.Context, id, coverURL string) error
	DeleteAlbum(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, userID, albumID string) (bool, error)
	LikeCount(ctx context.Context, albumID string) (int, bool, error)

	AddPlaylist(ctx context.Context, name, ownerID string) (string, error)
	ListPlaylists(ctx context.Context, userID string) ([]domain.Playlist, error)
	GetPlaylistSongs(ctx context.Context, playlistID, userID string) (domain.PlaylistWithSongs, error)
	DeletePlaylist(ctx context.Context, playlistID, userID string) error
	AddSongToPlaylist(ctx context.Context, playlistID, songID, userID string) error
	RemoveSongFromPlaylist(ctx context.Context, playlistID, songID, userID string) error
	PlaylistActivities(ctx context.Context, playlistID, userID string) ([]domain.Activity, error)

	AddCollaboration(ctx context.Context, playlistID, targetUserID, ownerID string) (string, error)
	DeleteCollaboration(ctx context.Context, playlistID, targetUserID, ownerID string) error
}

type Exporter interface {
	RequestExport(ctx context.Context, playlistID, userID, targetEmail string) error
}

type Server struct {
	catalog  Catalog
	exports  Exporter
	logger   *zap.Logger
	metrics  http.Handler
	tokenKey []byte
}

// NewServer wires handlers. metricsHandler may be nil, in which case
// /metrics is not mounted.
func NewServer(catalog Catalog, exports Exporter, logger *zap.Logger, metricsHandler http.Handler) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{catalog: catalog, exports: exports, logger: logger, metrics: metricsHandler}
}

// WithAccessTokenKey makes protected routes require a bearer access token
// signed with key instead of trusting the X-User-Id header.
func (s *Server) WithAccessTokenKey(key []byte) *Server {
	s.tokenKey = key
	return s
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Post("/songs", s.handleAddSong)
	r.Get("/songs", s.handleListSongs)
	r.Get("/songs/{id}", s.handleGetSong)
	r.Put("/songs/{id}", s.handleUpdateSong)
	r.Delete("/songs/{id}", s.handleDeleteSong)

	r.Post("/albums", s.handleAddAlbum)
	r.Get("/albums/{id}", s.handleGetAlbum)
	r.Put("/albums/{id}", s.handleUpdateAlbum)
	r.Delete("/albums/{id}", s.handleDeleteAlbum)
	r.Get("/albums/{id}/likes", s.handleGetLikes)

	r.Group(func(r chi.Router) {
		r.Use(s.identity())

		r.Post("/albums/{id}/covers", s.handleSetCover)
		r.Post("/albums/{id}/likes", s.handleToggleLike)

		r.Post("/playlists", s.handleAddPlaylist)
		r.Get("/playlists", s.handleListPlaylists)
		r.Delete("/playlists/{id}", s.handleDeletePlaylist)
		r.Post("/playlists/{id}/songs", s.handleAddPlaylistSong)
		r.Get("/playlists/{id}/songs", s.handleGetPlaylistSongs)
		r.Delete("/playlists/{id}/songs", s.handleDeletePlaylistSong)
		r.Get("/playlists/{id}/activities", s.handleGetActivities)

		r.Post("/collaborations", s.handleAddCollaboration)
		r.Delete("/collaborations", s.handleDeleteCollaboration)

		r.Post("/export/playlists/{id}", s.handleExportPlaylist)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "openmusic-service",
	})
}
