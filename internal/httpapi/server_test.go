package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"openmusic-service/internal/domain"
)

func newTestServer() (*MockCatalog, *MockExporter, http.Handler) {
	cat, exp := new(MockCatalog), new(MockExporter)
	return cat, exp, NewServer(cat, exp, nil, nil).Router()
}

func do(h http.Handler, method, path, body, user string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(userHeader, user)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	_, _, h := newTestServer()
	w := do(h, "GET", "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestGetSongSetsCacheHeader(t *testing.T) {
	cat, _, h := newTestServer()
	cat.On("GetSong", mock.Anything, "song-1").Return(domain.Song{ID: "song-1", Title: "Fix You"}, true, nil).Once()
	cat.On("GetSong", mock.Anything, "song-1").Return(domain.Song{ID: "song-1", Title: "Fix You"}, false, nil).Once()

	w := do(h, "GET", "/songs/song-1", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cache", w.Header().Get("X-Data-Source"))
	body := decode(t, w)
	assert.Equal(t, "success", body["status"])
	song := body["data"].(map[string]any)["song"].(map[string]any)
	assert.Equal(t, "Fix You", song["title"])

	w = do(h, "GET", "/songs/song-1", "", "")
	assert.Empty(t, w.Header().Get("X-Data-Source"))
}

func TestErrorKindsMapToStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		state  string
	}{
		{"not found", domain.NotFound("song not found"), http.StatusNotFound, "fail"},
		{"invalid", domain.Invalid("title is required"), http.StatusBadRequest, "fail"},
		{"forbidden", domain.Forbidden("no"), http.StatusForbidden, "fail"},
		{"invariant", domain.Invariant("no id"), http.StatusInternalServerError, "error"},
		{"unavailable", domain.Unavailable("down", errors.New("x")), http.StatusServiceUnavailable, "error"},
		{"internal", errors.New("conn reset"), http.StatusInternalServerError, "error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cat, _, h := newTestServer()
			cat.On("DeleteSong", mock.Anything, "song-1").Return(tc.err)

			w := do(h, "DELETE", "/songs/song-1", "", "")
			assert.Equal(t, tc.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, tc.state, body["status"])
			assert.NotContains(t, body["message"], "conn reset")
		})
	}
}

func TestAddSong(t *testing.T) {
	cat, _, h := newTestServer()
	cat.On("AddSong", mock.Anything, mock.MatchedBy(func(in domain.SongInput) bool {
		return in.Title == "Fix You" && in.Year == 2005
	})).Return("song-abc", nil)

	w := do(h, "POST", "/songs", `{"title":"Fix You","year":2005,"genre":"Rock","performer":"Coldplay"}`, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "song-abc", data["songId"])
}

func TestMalformedBody(t *testing.T) {
	cat, _, h := newTestServer()
	w := do(h, "POST", "/songs", `{"title":`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	cat.AssertNotCalled(t, "AddSong", mock.Anything, mock.Anything)
}

func TestListSongsPassesFilters(t *testing.T) {
	cat, _, h := newTestServer()
	cat.On("ListSongs", mock.Anything, "fix", "cold").Return([]domain.SongSummary{{ID: "song-1"}}, nil)

	w := do(h, "GET", "/songs?title=fix&performer=cold", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	cat.AssertExpectations(t)
}

func TestProtectedRoutesRequireUser(t *testing.T) {
	_, _, h := newTestServer()
	for _, rt := range []struct{ method, path string }{
		{"POST", "/playlists"},
		{"GET", "/playlists"},
		{"POST", "/playlists/pl-1/songs"},
		{"POST", "/albums/album-1/likes"},
		{"POST", "/collaborations"},
		{"POST", "/export/playlists/pl-1"},
	} {
		w := do(h, rt.method, rt.path, `{}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, rt.method+" "+rt.path)
	}
}

func TestAddPlaylistSong(t *testing.T) {
	cat, _, h := newTestServer()
	cat.On("AddSongToPlaylist", mock.Anything, "pl-1", "song-1", "u-2").Return(nil)
	cat.On("AddSongToPlaylist", mock.Anything, "pl-1", "song-1", "u-3").Return(domain.Forbidden("you have no access to this resource"))

	w := do(h, "POST", "/playlists/pl-1/songs", `{"songId":"song-1"}`, "u-2")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(h, "POST", "/playlists/pl-1/songs", `{"songId":"song-1"}`, "u-3")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "you have no access to this resource", decode(t, w)["message"])
}

func TestGetActivities(t *testing.T) {
	cat, _, h := newTestServer()
	cat.On("PlaylistActivities", mock.Anything, "pl-1", "u-1").Return([]domain.Activity{
		{ID: "activity-1", Username: "alice", Title: "Fix You", Action: domain.ActionAdd},
	}, nil)

	w := do(h, "GET", "/playlists/pl-1/activities", "", "u-1")
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "pl-1", data["playlistId"])
	acts := data["activities"].([]any)
	require.Len(t, acts, 1)
	assert.Equal(t, "add", acts[0].(map[string]any)["action"])
}

func TestLikes(t *testing.T) {
	cat, _, h := newTestServer()
	cat.On("ToggleLike", mock.Anything, "u-1", "album-1").Return(true, nil)
	cat.On("LikeCount", mock.Anything, "album-1").Return(3, true, nil)

	w := do(h, "POST", "/albums/album-1/likes", "", "u-1")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Album liked", decode(t, w)["message"])

	w = do(h, "GET", "/albums/album-1/likes", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cache", w.Header().Get("X-Data-Source"))
	assert.Equal(t, 3.0, decode(t, w)["data"].(map[string]any)["likes"])
}

func TestCollaborations(t *testing.T) {
	cat, _, h := newTestServer()
	cat.On("AddCollaboration", mock.Anything, "pl-1", "u-2", "u-1").Return("collab-1", nil)
	cat.On("DeleteCollaboration", mock.Anything, "pl-1", "u-2", "u-1").Return(nil)

	w := do(h, "POST", "/collaborations", `{"playlistId":"pl-1","userId":"u-2"}`, "u-1")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "collab-1", decode(t, w)["data"].(map[string]any)["collaborationId"])

	w = do(h, "DELETE", "/collaborations", `{"playlistId":"pl-1","userId":"u-2"}`, "u-1")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExportPlaylist(t *testing.T) {
	_, exp, h := newTestServer()
	exp.On("RequestExport", mock.Anything, "pl-1", "u-1", "a@b.com").Return(nil)
	exp.On("RequestExport", mock.Anything, "pl-1", "u-2", "a@b.com").Return(domain.Forbidden("no"))

	w := do(h, "POST", "/export/playlists/pl-1", `{"targetEmail":"a@b.com"}`, "u-1")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Your request is being processed", decode(t, w)["message"])

	w = do(h, "POST", "/export/playlists/pl-1", `{"targetEmail":"a@b.com"}`, "u-2")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMetricsMounted(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	h := NewServer(new(MockCatalog), new(MockExporter), nil, metrics).Router()
	w := do(h, "GET", "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# metrics", w.Body.String())
}
