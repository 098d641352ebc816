package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"openmusic-service/internal/domain"
)

func (s *Server) handleAddAlbum(w http.ResponseWriter, r *http.Request) {
	var in domain.AlbumInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	id, err := s.catalog.AddAlbum(r.Context(), in)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]string{"albumId": id})
}

func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	album, fromCache, err := s.catalog.GetAlbum(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	markCached(w, fromCache)
	writeData(w, http.StatusOK, map[string]any{"album": album})
}

func (s *Server) handleUpdateAlbum(w http.ResponseWriter, r *http.Request) {
	var in domain.AlbumInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.catalog.UpdateAlbum(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Album updated successfully")
}

func (s *Server) handleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteAlbum(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Album deleted successfully")
}

func (s *Server) handleSetCover(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CoverURL string `json:"coverUrl"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.catalog.SetAlbumCover(r.Context(), chi.URLParam(r, "id"), body.CoverURL); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Cover updated successfully")
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	liked, err := s.catalog.ToggleLike(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	msg := "Album unliked"
	if liked {
		msg = "Album liked"
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"status":  "success",
		"message": msg,
		"data":    map[string]bool{"liked": liked},
	})
}

func (s *Server) handleGetLikes(w http.ResponseWriter, r *http.Request) {
	n, fromCache, err := s.catalog.LikeCount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	markCached(w, fromCache)
	writeData(w, http.StatusOK, map[string]int{"likes": n})
}
