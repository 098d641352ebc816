package export

import (
	"context"
	"encoding/json"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"openmusic-service/internal/domain"
	"openmusic-service/internal/metrics"
)

type OwnerAuthorizer interface {
	AuthorizeOwner(ctx context.Context, playlistID, userID string) error
}

// Dispatcher accepts export requests from playlist owners and publishes them.
// It does not wait for, or observe, the export itself.
type Dispatcher struct {
	auth      OwnerAuthorizer
	publisher Publisher
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewDispatcher(auth OwnerAuthorizer, publisher Publisher, logger *zap.Logger, m *metrics.Metrics) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{auth: auth, publisher: publisher, logger: logger, metrics: m}
}

// RequestExport publishes {playlistId, requesterId, targetEmail} on Queue. Only the owner
// may export; a channel failure is reported as Unavailable.
func (d *Dispatcher) RequestExport(ctx context.Context, playlistID, userID, targetEmail string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(targetEmail))
	if err != nil {
		return domain.Invalid("targetEmail must be a valid email address")
	}
	targetEmail = addr.Address
	if err := d.auth.AuthorizeOwner(ctx, playlistID, userID); err != nil {
		return err
	}

	payload, err := json.Marshal(domain.ExportJob{PlaylistID: playlistID, RequesterID: userID, TargetEmail: targetEmail})
	if err != nil {
		return err
	}
	if err := d.publisher.Publish(ctx, Queue, payload); err != nil {
		d.logger.Error("export publish failed", zap.String("playlist_id", playlistID), zap.Error(err))
		d.metrics.Export("publish", "error")
		return domain.Unavailable("export channel unavailable", err)
	}

	d.logger.Info("export requested", zap.String("playlist_id", playlistID), zap.String("user_id", userID))
	d.metrics.Export("publish", "ok")
	return nil
}
