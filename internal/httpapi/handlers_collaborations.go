package httpapi

import "net/http"

type collaborationBody struct {
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
}

func (s *Server) handleAddCollaboration(w http.ResponseWriter, r *http.Request) {
	var body collaborationBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	id, err := s.catalog.AddCollaboration(r.Context(), body.PlaylistID, body.UserID, userID(r))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]string{"collaborationId": id})
}

func (s *Server) handleDeleteCollaboration(w http.ResponseWriter, r *http.Request) {
	var body collaborationBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.catalog.DeleteCollaboration(r.Context(), body.PlaylistID, body.UserID, userID(r)); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Collaboration deleted successfully")
}
