package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleExportPlaylist(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TargetEmail string `json:"targetEmail"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.exports.RequestExport(r.Context(), chi.URLParam(r, "id"), userID(r), body.TargetEmail); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Your request is being processed")
}
