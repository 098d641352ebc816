package export

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"openmusic-service/internal/domain"
	"openmusic-service/internal/metrics"
)

type PlaylistReader interface {
	GetPlaylistWithSongs(ctx context.Context, playlistID string) (domain.PlaylistWithSongs, error)
}

// Worker turns export jobs into emails carrying the playlist as JSON.
type Worker struct {
	playlists PlaylistReader
	mailer    Mailer
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewWorker(playlists PlaylistReader, mailer Mailer, logger *zap.Logger, m *metrics.Metrics) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{playlists: playlists, mailer: mailer, logger: logger, metrics: m}
}

// Run consumes Queue until ctx is cancelled.
func (w *Worker) Run(ctx context.Context, consumer Consumer) error {
	w.logger.Info("export worker started", zap.String("queue", Queue))
	return consumer.Consume(ctx, Queue, w.Handle)
}

// Handle processes one job. Malformed jobs and jobs for playlists that no
// longer exist are dropped; only delivery failures are returned.
func (w *Worker) Handle(ctx context.Context, payload []byte) error {
	var job domain.ExportJob
	if err := json.Unmarshal(payload, &job); err != nil || job.PlaylistID == "" || job.TargetEmail == "" {
		w.logger.Warn("dropping malformed export job", zap.ByteString("payload", payload))
		w.metrics.Export("deliver", "dropped")
		return nil
	}

	playlist, err := w.playlists.GetPlaylistWithSongs(ctx, job.PlaylistID)
	if domain.KindOf(err) == domain.KindNotFound {
		w.logger.Warn("dropping export for missing playlist", zap.String("playlist_id", job.PlaylistID))
		w.metrics.Export("deliver", "dropped")
		return nil
	}
	if err != nil {
		w.metrics.Export("deliver", "error")
		return fmt.Errorf("load playlist %s: %w", job.PlaylistID, err)
	}

	data, err := json.Marshal(map[string]any{"playlist": playlist})
	if err != nil {
		return err
	}
	err = w.mailer.Send(
		job.TargetEmail,
		"Playlist export: "+playlist.Name,
		"Attached is the export of playlist "+playlist.Name,
		&Attachment{Filename: "playlist.json", ContentType: "application/json", Data: data},
	)
	if err != nil {
		w.metrics.Export("deliver", "error")
		return fmt.Errorf("send export mail: %w", err)
	}

	w.logger.Info("playlist exported", zap.String("playlist_id", job.PlaylistID), zap.String("requester_id", job.RequesterID), zap.Int("songs", len(playlist.Songs)))
	w.metrics.Export("deliver", "ok")
	return nil
}
