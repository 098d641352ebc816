package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"openmusic-service/internal/domain"
)

const dataSourceHeader = "X-Data-Source"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError uses "fail" for client errors and "error" for server faults.
func writeError(w http.ResponseWriter, status int, msg string) {
	st := "fail"
	if status >= http.StatusInternalServerError {
		st = "error"
	}
	writeJSON(w, status, map[string]string{
		"status":  st,
		"message": msg,
	})
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{
		"status": "success",
		"data":   data,
	})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"status":  "success",
		"message": msg,
	})
}

func markCached(w http.ResponseWriter, fromCache bool) {
	if fromCache {
		w.Header().Set(dataSourceHeader, "cache")
	}
}

// writeDomainError maps error kinds to statuses. Internal failures are
// logged and hidden from the client.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	msg := ""
	if errors.As(err, &de) {
		msg = de.Msg
	}
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		writeError(w, http.StatusNotFound, msg)
	case domain.KindForbidden:
		writeError(w, http.StatusForbidden, msg)
	case domain.KindInvalid:
		writeError(w, http.StatusBadRequest, msg)
	case domain.KindUnavailable:
		s.logger.Warn("dependency unavailable", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		s.logger.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Error on server")
	}
}

// decodeJSON rejects malformed and oversized bodies as Invalid.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return domain.Invalid("invalid JSON body")
	}
	return nil
}
