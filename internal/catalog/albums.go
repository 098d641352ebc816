package catalog

import (
	"context"
	"net/url"

	"openmusic-service/internal/cache"
	"openmusic-service/internal/domain"
)

func (s *Service) AddAlbum(ctx context.Context, in domain.AlbumInput) (string, error) {
	if err := validateAlbum(&in); err != nil {
		return "", err
	}
	return s.store.AddAlbum(ctx, in)
}

// GetAlbum returns the album with its songs and whether it came from the cache.
func (s *Service) GetAlbum(ctx context.Context, id string) (domain.Album, bool, error) {
	return s.albums.Fetch(ctx, cache.AlbumKey(id), func(ctx context.Context) (domain.Album, error) {
		return s.store.GetAlbum(ctx, id)
	})
}

func (s *Service) UpdateAlbum(ctx context.Context, id string, in domain.AlbumInput) error {
	if err := validateAlbum(&in); err != nil {
		return err
	}
	if err := s.store.UpdateAlbum(ctx, id, in); err != nil {
		return err
	}
	s.albums.Invalidate(ctx, cache.AlbumKey(id))
	return nil
}

// SetAlbumCover stores an absolute http(s) URL for the album cover. Upload
// and storage of the image itself happen elsewhere.
func (s *Service) SetAlbumCover(ctx context.Context, id, coverURL string) error {
	u, err := url.Parse(coverURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.Invalid("coverUrl must be an absolute http(s) URL")
	}
	if err := s.store.SetAlbumCover(ctx, id, coverURL); err != nil {
		return err
	}
	s.albums.Invalidate(ctx, cache.AlbumKey(id))
	return nil
}

// DeleteAlbum detaches the album's songs (album_id becomes NULL), so their
// cached entries go along with the album and its like count.
func (s *Service) DeleteAlbum(ctx context.Context, id string) error {
	songIDs, err := s.store.DeleteAlbum(ctx, id)
	if err != nil {
		return err
	}

	s.albums.Invalidate(ctx, cache.AlbumKey(id))
	s.likes.Invalidate(ctx, cache.LikeKey(id))
	songKeys := make([]string, 0, len(songIDs))
	for _, sid := range songIDs {
		songKeys = append(songKeys, cache.SongKey(sid))
	}
	s.songs.Invalidate(ctx, songKeys...)
	return nil
}
