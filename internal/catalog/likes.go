package catalog

import (
	"context"

	"openmusic-service/internal/cache"
	"openmusic-service/internal/domain"
)

// ToggleLike flips the (user, album) like and reports whether the user now
// likes the album. The two statements are not atomic; a concurrent toggle by
// the same user can lose one flip, and the unique index keeps the pair single.
func (s *Service) ToggleLike(ctx context.Context, userID, albumID string) (bool, error) {
	if err := requireField("user", userID); err != nil {
		return false, err
	}
	ok, err := s.store.AlbumExists(ctx, albumID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, domain.NotFound("album not found")
	}

	liked, err := s.store.HasLike(ctx, userID, albumID)
	if err != nil {
		return false, err
	}
	if liked {
		err = s.store.RemoveLike(ctx, userID, albumID)
	} else {
		err = s.store.AddLike(ctx, userID, albumID)
	}
	if err != nil {
		return false, err
	}

	s.likes.Invalidate(ctx, cache.LikeKey(albumID))
	return !liked, nil
}

// LikeCount returns the number of users liking the album and whether the
// count came from the cache. An unknown album is NotFound and never cached.
func (s *Service) LikeCount(ctx context.Context, albumID string) (int, bool, error) {
	return s.likes.Fetch(ctx, cache.LikeKey(albumID), func(ctx context.Context) (int, error) {
		ok, err := s.store.AlbumExists(ctx, albumID)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, domain.NotFound("album not found")
		}
		return s.store.CountLikes(ctx, albumID)
	})
}
