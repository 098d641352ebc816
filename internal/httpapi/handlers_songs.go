package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"openmusic-service/internal/domain"
)

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	var in domain.SongInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	id, err := s.catalog.AddSong(r.Context(), in)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]string{"songId": id})
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	songs, err := s.catalog.ListSongs(r.Context(), q.Get("title"), q.Get("performer"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"songs": songs})
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, fromCache, err := s.catalog.GetSong(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	markCached(w, fromCache)
	writeData(w, http.StatusOK, map[string]any{"song": song})
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	var in domain.SongInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.catalog.UpdateSong(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Song updated successfully")
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteSong(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Song deleted successfully")
}
