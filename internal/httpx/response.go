package httpx

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// StatusResponse is the envelope for action outcomes: the human-readable
// status line shown to the user.
type StatusResponse struct {
	Status string `json:"status"`
}

// JSON marshals payload before touching the status line, so an encode
// failure can still become a clean 500 instead of a half-written body.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body := []byte("null")
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// JSONStatus writes an action outcome as a status envelope.
func JSONStatus(w http.ResponseWriter, code int, status string) {
	JSON(w, code, StatusResponse{Status: status})
}
