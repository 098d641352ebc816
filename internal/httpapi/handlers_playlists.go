package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type songIDBody struct {
	SongID string `json:"songId"`
}

func (s *Server) handleAddPlaylist(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	id, err := s.catalog.AddPlaylist(r.Context(), body.Name, userID(r))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]string{"playlistId": id})
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := s.catalog.ListPlaylists(r.Context(), userID(r))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"playlists": playlists})
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeletePlaylist(r.Context(), chi.URLParam(r, "id"), userID(r)); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Playlist deleted successfully")
}

func (s *Server) handleAddPlaylistSong(w http.ResponseWriter, r *http.Request) {
	var body songIDBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.catalog.AddSongToPlaylist(r.Context(), chi.URLParam(r, "id"), body.SongID, userID(r)); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Added song to playlist")
}

func (s *Server) handleGetPlaylistSongs(w http.ResponseWriter, r *http.Request) {
	playlist, err := s.catalog.GetPlaylistSongs(r.Context(), chi.URLParam(r, "id"), userID(r))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"playlist": playlist})
}

func (s *Server) handleDeletePlaylistSong(w http.ResponseWriter, r *http.Request) {
	var body songIDBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.catalog.RemoveSongFromPlaylist(r.Context(), chi.URLParam(r, "id"), body.SongID, userID(r)); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Song removed from playlist")
}

func (s *Server) handleGetActivities(w http.ResponseWriter, r *http.Request) {
	playlistID := chi.URLParam(r, "id")
	activities, err := s.catalog.PlaylistActivities(r.Context(), playlistID, userID(r))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"playlistId": playlistID,
		"activities": activities,
	})
}
