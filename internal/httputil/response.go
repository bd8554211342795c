package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// maxBodyBytes bounds request bodies read by DecodeJSON.
const maxBodyBytes = 1 << 20

// ErrorResponse is the envelope used by login and the auth middleware.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MessageResponse is the envelope used by signup failures.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// DataResponse wraps a successful payload.
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// RespondJSON sends a JSON response with the given status code.
// Encoding errors are logged since the status line is already written.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondError sends {success:false, error:message}.
func RespondError(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, ErrorResponse{Success: false, Error: message}, statusCode)
}

// RespondMessage sends {msg:message}.
func RespondMessage(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, MessageResponse{Msg: message}, statusCode)
}

// RespondData sends {success:true, data:data} with 200.
func RespondData(w http.ResponseWriter, data any) {
	RespondJSON(w, DataResponse{Success: true, Data: data}, http.StatusOK)
}

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON reads a single JSON object from r into dst.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
