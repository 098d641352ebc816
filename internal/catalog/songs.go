package catalog

import (
	"context"

	"openmusic-service/internal/cache"
	"openmusic-service/internal/domain"
)

func (s *Service) AddSong(ctx context.Context, in domain.SongInput) (string, error) {
	if err := validateSong(&in); err != nil {
		return "", err
	}
	if err := s.requireAlbum(ctx, in.AlbumID); err != nil {
		return "", err
	}
	id, err := s.store.AddSong(ctx, in)
	if err != nil {
		return "", err
	}
	if in.AlbumID != nil {
		s.invalidate(ctx, "album", cache.AlbumKey(*in.AlbumID))
	}
	return id, nil
}

func (s *Service) ListSongs(ctx context.Context, title, performer string) ([]domain.SongSummary, error) {
	return s.store.ListSongs(ctx, title, performer)
}

// GetSong reports whether the song came from the cache.
func (s *Service) GetSong(ctx context.Context, id string) (domain.Song, bool, error) {
	return s.songs.Fetch(ctx, cache.SongKey(id), func(ctx context.Context) (domain.Song, error) {
		return s.store.GetSong(ctx, id)
	})
}

// UpdateSong rewrites the song and drops the cached song plus both the album
// it left and the album it joined.
func (s *Service) UpdateSong(ctx context.Context, id string, in domain.SongInput) error {
	if err := validateSong(&in); err != nil {
		return err
	}
	if err := s.requireAlbum(ctx, in.AlbumID); err != nil {
		return err
	}
	prev, err := s.store.UpdateSong(ctx, id, in)
	if err != nil {
		return err
	}

	s.songs.Invalidate(ctx, cache.SongKey(id))
	albumKeys := make([]string, 0, 2)
	if prev != nil {
		albumKeys = append(albumKeys, cache.AlbumKey(*prev))
	}
	if in.AlbumID != nil && (prev == nil || *prev != *in.AlbumID) {
		albumKeys = append(albumKeys, cache.AlbumKey(*in.AlbumID))
	}
	s.invalidate(ctx, "album", albumKeys...)
	return nil
}

func (s *Service) DeleteSong(ctx context.Context, id string) error {
	albumID, err := s.store.DeleteSong(ctx, id)
	if err != nil {
		return err
	}
	s.songs.Invalidate(ctx, cache.SongKey(id))
	if albumID != nil {
		s.invalidate(ctx, "album", cache.AlbumKey(*albumID))
	}
	return nil
}
