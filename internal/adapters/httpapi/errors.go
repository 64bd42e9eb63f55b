package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/spicebox/waitlist-api/internal/app/waitlist"
)

type errorResponse struct {
	Success   bool                  `json:"success"`
	Error     string                `json:"error"`
	Details   []waitlist.FieldError `json:"details,omitempty"`
	RequestID string                `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, details []waitlist.FieldError) {
	writeJSON(w, status, errorResponse{
		Success:   false,
		Error:     message,
		Details:   details,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// writeAppError maps app-layer errors to HTTP. Anything that is not a *waitlist.Error is an
// unexpected internal failure.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *waitlist.Error
	if errors.As(err, &ae) {
		if ae.Status >= http.StatusInternalServerError {
			log.Printf("request %s: %s: %v", middleware.GetReqID(r.Context()), ae.Code, err)
		}
		writeError(w, r, ae.Status, ae.Message, ae.Details)
		return
	}
	log.Printf("request %s: unexpected error: %v", middleware.GetReqID(r.Context()), err)
	writeError(w, r, http.StatusInternalServerError, "Internal server error", nil)
}
