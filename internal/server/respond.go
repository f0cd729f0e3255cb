package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	verrors "github.com/ryanphanna/Venture/pkg/errors"
	"github.com/ryanphanna/Venture/pkg/observability"
)

type errorBody struct {
	Error string       `json:"error"`
	Code  verrors.Code `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// statusFor maps an error code class to an HTTP status.
func statusFor(err error) int {
	switch {
	case verrors.IsInvalid(err):
		return http.StatusBadRequest
	case verrors.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := verrors.GetCode(err)
	if code == "" {
		code = verrors.ErrCodeInternal
	}
	msg := verrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		// Internal details stay in the log.
		s.cfg.Logger.Error("handler failed", "path", r.URL.Path, "err", err)
		msg = "internal error"
	}

	route := r.URL.Path
	if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
		route = rc.RoutePattern()
	}
	observability.HTTP().OnError(r.Context(), r.Method, route, err)

	writeJSON(w, status, errorBody{Error: msg, Code: code})
}
