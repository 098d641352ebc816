package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"openmusic-service/internal/domain"
)

// memStore is an in-memory Store, access.Lookup and AuditLog for service
// tests. It counts reads so tests can tell cache hits from loads.
type memStore struct {
	mu sync.Mutex
	n  int

	songs     map[string]domain.Song
	albums    map[string]domain.Album
	likes     map[[2]string]bool
	playlists map[string]domain.Playlist
	entries   map[[2]string]bool
	collabs   map[[2]string]bool
	users     map[string]domain.User
	activity  []domain.Activity

	songReads int
	failAudit error
}

func newMemStore() *memStore {
	return &memStore{
		songs:     map[string]domain.Song{},
		albums:    map[string]domain.Album{},
		likes:     map[[2]string]bool{},
		playlists: map[string]domain.Playlist{},
		entries:   map[[2]string]bool{},
		collabs:   map[[2]string]bool{},
		users:     map[string]domain.User{},
	}
}

func (m *memStore) id(prefix string) string {
	m.n++
	return fmt.Sprintf("%s-%d", prefix, m.n)
}

func (m *memStore) AddSong(_ context.Context, in domain.SongInput) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id("song")
	m.songs[id] = domain.Song{ID: id, Title: in.Title, Year: in.Year, Genre: in.Genre, Performer: in.Performer, Duration: in.Duration, AlbumID: in.AlbumID}
	return id, nil
}

func (m *memStore) ListSongs(_ context.Context, title, performer string) ([]domain.SongSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.SongSummary{}
	for _, s := range m.songs {
		if strings.Contains(strings.ToLower(s.Title), strings.ToLower(title)) &&
			strings.Contains(strings.ToLower(s.Performer), strings.ToLower(performer)) {
			out = append(out, domain.SongSummary{ID: s.ID, Title: s.Title, Performer: s.Performer})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) GetSong(_ context.Context, id string) (domain.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.songReads++
	s, ok := m.songs[id]
	if !ok {
		return domain.Song{}, domain.NotFound("song not found")
	}
	return s, nil
}

func (m *memStore) UpdateSong(_ context.Context, id string, in domain.SongInput) (*string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.songs[id]
	if !ok {
		return nil, domain.NotFound("song not found")
	}
	m.songs[id] = domain.Song{ID: id, Title: in.Title, Year: in.Year, Genre: in.Genre, Performer: in.Performer, Duration: in.Duration, AlbumID: in.AlbumID}
	return prev.AlbumID, nil
}

func (m *memStore) DeleteSong(_ context.Context, id string) (*string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.songs[id]
	if !ok {
		return nil, domain.NotFound("song not found")
	}
	delete(m.songs, id)
	return s.AlbumID, nil
}

func (m *memStore) AddAlbum(_ context.Context, in domain.AlbumInput) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id("album")
	m.albums[id] = domain.Album{ID: id, Name: in.Name, Year: in.Year}
	return id, nil
}

func (m *memStore) GetAlbum(_ context.Context, id string) (domain.Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.albums[id]
	if !ok {
		return domain.Album{}, domain.NotFound("album not found")
	}
	a.Songs = []domain.SongSummary{}
	for _, s := range m.songs {
		if s.AlbumID != nil && *s.AlbumID == id {
			a.Songs = append(a.Songs, domain.SongSummary{ID: s.ID, Title: s.Title, Performer: s.Performer})
		}
	}
	return a, nil
}

func (m *memStore) UpdateAlbum(_ context.Context, id string, in domain.AlbumInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.albums[id]
	if !ok {
		return domain.NotFound("album not found")
	}
	a.Name, a.Year = in.Name, in.Year
	m.albums[id] = a
	return nil
}

func (m *memStore) SetAlbumCover(_ context.Context, id, coverURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.albums[id]
	if !ok {
		return domain.NotFound("album not found")
	}
	a.CoverURL = &coverURL
	m.albums[id] = a
	return nil
}

func (m *memStore) DeleteAlbum(_ context.Context, id string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.albums[id]; !ok {
		return nil, domain.NotFound("album not found")
	}
	delete(m.albums, id)
	var detached []string
	for sid, s := range m.songs {
		if s.AlbumID != nil && *s.AlbumID == id {
			s.AlbumID = nil
			m.songs[sid] = s
			detached = append(detached, sid)
		}
	}
	for k := range m.likes {
		if k[1] == id {
			delete(m.likes, k)
		}
	}
	return detached, nil
}

func (m *memStore) AlbumExists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.albums[id]
	return ok, nil
}

func (m *memStore) HasLike(_ context.Context, userID, albumID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.likes[[2]string{userID, albumID}], nil
}

func (m *memStore) AddLike(_ context.Context, userID, albumID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.likes[[2]string{userID, albumID}] = true
	return nil
}

func (m *memStore) RemoveLike(_ context.Context, userID, albumID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.likes, [2]string{userID, albumID})
	return nil
}

func (m *memStore) CountLikes(_ context.Context, albumID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.likes {
		if k[1] == albumID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) AddPlaylist(_ context.Context, name, ownerID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id("playlist")
	m.playlists[id] = domain.Playlist{ID: id, Name: name, OwnerID: ownerID, Username: m.users[ownerID].Username}
	return id, nil
}

func (m *memStore) ListPlaylists(_ context.Context, userID string) ([]domain.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Playlist{}
	for id, p := range m.playlists {
		if p.OwnerID == userID || m.collabs[[2]string{id, userID}] {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) PlaylistOwner(_ context.Context, playlistID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.playlists[playlistID]
	if !ok {
		return "", domain.NotFound("playlist not found")
	}
	return p.OwnerID, nil
}

func (m *memStore) IsCollaborator(_ context.Context, playlistID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collabs[[2]string{playlistID, userID}], nil
}

func (m *memStore) GetPlaylistWithSongs(_ context.Context, playlistID string) (domain.PlaylistWithSongs, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.playlists[playlistID]
	if !ok {
		return domain.PlaylistWithSongs{}, domain.NotFound("playlist not found")
	}
	out := domain.PlaylistWithSongs{Playlist: p, Songs: []domain.SongSummary{}}
	for k := range m.entries {
		if k[0] == playlistID {
			s := m.songs[k[1]]
			out.Songs = append(out.Songs, domain.SongSummary{ID: s.ID, Title: s.Title, Performer: s.Performer})
		}
	}
	return out, nil
}

func (m *memStore) DeletePlaylist(_ context.Context, playlistID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.playlists[playlistID]; !ok {
		return domain.NotFound("playlist not found")
	}
	delete(m.playlists, playlistID)
	return nil
}

func (m *memStore) AddPlaylistSong(_ context.Context, playlistID, songID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := [2]string{playlistID, songID}
	if m.entries[k] {
		return "", domain.Invalid("song is already in the playlist")
	}
	m.entries[k] = true
	return m.id("playlist_song"), nil
}

func (m *memStore) DeletePlaylistSong(_ context.Context, playlistID, songID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := [2]string{playlistID, songID}
	if !m.entries[k] {
		return domain.NotFound("song is not in the playlist")
	}
	delete(m.entries, k)
	return nil
}

func (m *memStore) AddCollaboration(_ context.Context, playlistID, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := [2]string{playlistID, userID}
	if m.collabs[k] {
		return "", domain.Invalid("user is already a collaborator")
	}
	m.collabs[k] = true
	return m.id("collab"), nil
}

func (m *memStore) DeleteCollaboration(_ context.Context, playlistID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := [2]string{playlistID, userID}
	if !m.collabs[k] {
		return domain.NotFound("collaboration not found")
	}
	delete(m.collabs, k)
	return nil
}

func (m *memStore) GetUser(_ context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.NotFound("user not found")
	}
	return u, nil
}

func (m *memStore) Record(_ context.Context, playlistID, songID, userID string, action domain.Action) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAudit != nil {
		return "", m.failAudit
	}
	if !action.Valid() {
		return "", domain.Invariant("unknown activity action")
	}
	id := m.id("activity")
	m.activity = append(m.activity, domain.Activity{
		ID: id, PlaylistID: playlistID, SongID: songID, UserID: userID,
		Username: m.users[userID].Username, Title: m.songs[songID].Title,
		Action: action, Time: time.Now().UTC(),
	})
	return id, nil
}

func (m *memStore) List(_ context.Context, playlistID string) ([]domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Activity{}
	for _, a := range m.activity {
		if a.PlaylistID == playlistID {
			out = append(out, a)
		}
	}
	return out, nil
}
