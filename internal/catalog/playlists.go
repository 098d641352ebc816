package catalog

import (
	"context"

	"go.uber.org/zap"

	"openmusic-service/internal/domain"
)

func (s *Service) AddPlaylist(ctx context.Context, name, ownerID string) (string, error) {
	if err := requireLine("name", name); err != nil {
		return "", err
	}
	if err := requireField("user", ownerID); err != nil {
		return "", err
	}
	return s.store.AddPlaylist(ctx, name, ownerID)
}

// ListPlaylists returns playlists the user owns or collaborates on.
func (s *Service) ListPlaylists(ctx context.Context, userID string) ([]domain.Playlist, error) {
	return s.store.ListPlaylists(ctx, userID)
}

func (s *Service) GetPlaylistSongs(ctx context.Context, playlistID, userID string) (domain.PlaylistWithSongs, error) {
	if err := s.auth.AuthorizeAccess(ctx, playlistID, userID); err != nil {
		return domain.PlaylistWithSongs{}, err
	}
	return s.store.GetPlaylistWithSongs(ctx, playlistID)
}

func (s *Service) DeletePlaylist(ctx context.Context, playlistID, userID string) error {
	if err := s.auth.AuthorizeOwner(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.store.DeletePlaylist(ctx, playlistID)
}

// AddSongToPlaylist links an existing song and records an "add" activity
// before returning.
func (s *Service) AddSongToPlaylist(ctx context.Context, playlistID, songID, userID string) error {
	if err := requireField("songId", songID); err != nil {
		return err
	}
	if err := s.auth.AuthorizeAccess(ctx, playlistID, userID); err != nil {
		return err
	}
	if _, _, err := s.GetSong(ctx, songID); err != nil {
		return err
	}
	if _, err := s.store.AddPlaylistSong(ctx, playlistID, songID); err != nil {
		return err
	}
	return s.record(ctx, playlistID, songID, userID, domain.ActionAdd)
}

func (s *Service) RemoveSongFromPlaylist(ctx context.Context, playlistID, songID, userID string) error {
	if err := requireField("songId", songID); err != nil {
		return err
	}
	if err := s.auth.AuthorizeAccess(ctx, playlistID, userID); err != nil {
		return err
	}
	if err := s.store.DeletePlaylistSong(ctx, playlistID, songID); err != nil {
		return err
	}
	return s.record(ctx, playlistID, songID, userID, domain.ActionDelete)
}

func (s *Service) PlaylistActivities(ctx context.Context, playlistID, userID string) ([]domain.Activity, error) {
	if err := s.auth.AuthorizeAccess(ctx, playlistID, userID); err != nil {
		return nil, err
	}
	return s.audit.List(ctx, playlistID)
}

func (s *Service) record(ctx context.Context, playlistID, songID, userID string, action domain.Action) error {
	if _, err := s.audit.Record(ctx, playlistID, songID, userID, action); err != nil {
		// The relation row is already written.
		s.logger.Error("activity not recorded",
			zap.String("playlist_id", playlistID),
			zap.String("song_id", songID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return err
	}
	return nil
}
