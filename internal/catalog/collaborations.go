package catalog

import "context"

// AddCollaboration lets the owner grant targetUserID song add/remove rights.
func (s *Service) AddCollaboration(ctx context.Context, playlistID, targetUserID, ownerID string) (string, error) {
	if err := requireField("userId", targetUserID); err != nil {
		return "", err
	}
	if err := s.auth.AuthorizeOwner(ctx, playlistID, ownerID); err != nil {
		return "", err
	}
	if _, err := s.store.GetUser(ctx, targetUserID); err != nil {
		return "", err
	}
	return s.store.AddCollaboration(ctx, playlistID, targetUserID)
}

// DeleteCollaboration revokes the grant; the next access check sees it gone.
func (s *Service) DeleteCollaboration(ctx context.Context, playlistID, targetUserID, ownerID string) error {
	if err := requireField("userId", targetUserID); err != nil {
		return err
	}
	if err := s.auth.AuthorizeOwner(ctx, playlistID, ownerID); err != nil {
		return err
	}
	return s.store.DeleteCollaboration(ctx, playlistID, targetUserID)
}
