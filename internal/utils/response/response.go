// Package response provides helpers for writing consistent JSON HTTP
// responses. Success bodies may have any shape; error bodies always look like
//
//	{ "status": "error", "error": "Email already exists" }
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the envelope returned for error cases and bare acknowledgements.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Status values used in Response.Status.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusDeleted = "deleted"
)

// WriteJSON writes data as JSON with the given status code.
// Headers must be set before WriteHeader, and the body after it.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// The status line is already out; all we can do is record it.
		slog.Error("json encode failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// GeneralError wraps err's message into the error envelope.
func GeneralError(err error) Response {
	return Message(err.Error())
}

// Message builds an error envelope from a plain message.
func Message(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}
