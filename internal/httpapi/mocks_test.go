package httpapi

import (
	"context"

	"github.com/stretchr/testify/mock"

	"openmusic-service/internal/domain"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) AddSong(ctx context.Context, in domain.SongInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockCatalog) ListSongs(ctx context.Context, title, performer string) ([]domain.SongSummary, error) {
	args := m.Called(ctx, title, performer)
	return args.Get(0).([]domain.SongSummary), args.Error(1)
}

func (m *MockCatalog) GetSong(ctx context.Context, id string) (domain.Song, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Song), args.Bool(1), args.Error(2)
}

func (m *MockCatalog) UpdateSong(ctx context.Context, id string, in domain.SongInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockCatalog) DeleteSong(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalog) AddAlbum(ctx context.Context, in domain.AlbumInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockCatalog) GetAlbum(ctx context.Context, id string) (domain.Album, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Album), args.Bool(1), args.Error(2)
}

func (m *MockCatalog) UpdateAlbum(ctx context.Context, id string, in domain.AlbumInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockCatalog) SetAlbumCover(ctx context.Context, id, coverURL string) error {
	return m.Called(ctx, id, coverURL).Error(0)
}

func (m *MockCatalog) DeleteAlbum(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalog) ToggleLike(ctx context.Context, userID, albumID string) (bool, error) {
	args := m.Called(ctx, userID, albumID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalog) LikeCount(ctx context.Context, albumID string) (int, bool, error) {
	args := m.Called(ctx, albumID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockCatalog) AddPlaylist(ctx context.Context, name, ownerID string) (string, error) {
	args := m.Called(ctx, name, ownerID)
	return args.String(0), args.Error(1)
}

func (m *MockCatalog) ListPlaylists(ctx context.Context, userID string) ([]domain.Playlist, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Playlist), args.Error(1)
}

func (m *MockCatalog) GetPlaylistSongs(ctx context.Context, playlistID, userID string) (domain.PlaylistWithSongs, error) {
	args := m.Called(ctx, playlistID, userID)
	return args.Get(0).(domain.PlaylistWithSongs), args.Error(1)
}

func (m *MockCatalog) DeletePlaylist(ctx context.Context, playlistID, userID string) error {
	return m.Called(ctx, playlistID, userID).Error(0)
}

func (m *MockCatalog) AddSongToPlaylist(ctx context.Context, playlistID, songID, userID string) error {
	return m.Called(ctx, playlistID, songID, userID).Error(0)
}

func (m *MockCatalog) RemoveSongFromPlaylist(ctx context.Context, playlistID, songID, userID string) error {
	return m.Called(ctx, playlistID, songID, userID).Error(0)
}

func (m *MockCatalog) PlaylistActivities(ctx context.Context, playlistID, userID string) ([]domain.Activity, error) {
	args := m.Called(ctx, playlistID, userID)
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockCatalog) AddCollaboration(ctx context.Context, playlistID, targetUserID, ownerID string) (string, error) {
	args := m.Called(ctx, playlistID, targetUserID, ownerID)
	return args.String(0), args.Error(1)
}

func (m *MockCatalog) DeleteCollaboration(ctx context.Context, playlistID, targetUserID, ownerID string) error {
	return m.Called(ctx, playlistID, targetUserID, ownerID).Error(0)
}

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) RequestExport(ctx context.Context, playlistID, userID, targetEmail string) error {
	return m.Called(ctx, playlistID, userID, targetEmail).Error(0)
}
