// Package access decides whether a user may act on a playlist.
//
// Ownership is checked first; a collaboration grant is consulted only when the
// caller is not the owner. Decisions are never cached, so a revoked
// collaborator loses access on the very next call.
package access

import (
	"context"

	"openmusic-service/internal/domain"
)

// RevealMissingPlaylists selects what AuthorizeAccess reports for a playlist
// that does not exist. When true the caller gets NotFound; when false the
// absence is masked as Forbidden so callers without a grant cannot discover
// playlist ids. AuthorizeOwner always reports NotFound.
const RevealMissingPlaylists = true

// Lookup is the read side of the store the resolver consults.
type Lookup interface {
	// PlaylistOwner returns a domain NotFound error when the playlist is absent.
	PlaylistOwner(ctx context.Context, playlistID string) (string, error)
	IsCollaborator(ctx context.Context, playlistID, userID string) (bool, error)
}

// Outcome is the tagged result of the ownership check.
type Outcome int

const (
	Owner Outcome = iota
	NotOwner
	Missing
)

type Resolver struct {
	lookup Lookup
}

func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// CheckOwner classifies the caller against the playlist without turning the
// answer into an error. Store failures are returned as errors.
func (r *Resolver) CheckOwner(ctx context.Context, playlistID, userID string) (Outcome, error) {
	owner, err := r.lookup.PlaylistOwner(ctx, playlistID)
	if domain.KindOf(err) == domain.KindNotFound {
		return Missing, nil
	}
	if err != nil {
		return Missing, err
	}
	if userID != "" && owner == userID {
		return Owner, nil
	}
	return NotOwner, nil
}

// AuthorizeOwner succeeds only for the playlist owner.
func (r *Resolver) AuthorizeOwner(ctx context.Context, playlistID, userID string) error {
	outcome, err := r.CheckOwner(ctx, playlistID, userID)
	if err != nil {
		return err
	}
	switch outcome {
	case Owner:
		return nil
	case Missing:
		return domain.NotFound("playlist not found")
	default:
		return domain.Forbidden("you have no access to this resource")
	}
}

// AuthorizeAccess succeeds for the owner and for collaborators.
func (r *Resolver) AuthorizeAccess(ctx context.Context, playlistID, userID string) error {
	outcome, err := r.CheckOwner(ctx, playlistID, userID)
	if err != nil {
		return err
	}
	switch outcome {
	case Owner:
		return nil
	case Missing:
		if RevealMissingPlaylists {
			return domain.NotFound("playlist not found")
		}
		return domain.Forbidden("you have no access to this resource")
	}

	ok, err := r.lookup.IsCollaborator(ctx, playlistID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.Forbidden("you have no access to this resource")
	}
	return nil
}
