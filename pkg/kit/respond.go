package kit

import (
	"encoding/json"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// ErrorResponse is the generic body for infrastructure failures
// (rate limiting, metrics auth).
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// APIError is the body returned for rejected API requests.
type APIError struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Path      string `json:"path"`
}

var now = time.Now

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string, details any) {
	WriteJSON(w, status, ErrorResponse{
		Error:     msg,
		Details:   details,
		RequestID: chimw.GetReqID(r.Context()),
	})
}

// WriteAPIError writes an APIError whose path is the request URI as received,
// query string included.
func WriteAPIError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	WriteJSON(w, status, APIError{
		Timestamp: now().UTC().Format(TimestampLayout),
		Status:    status,
		Error:     msg,
		Path:      r.URL.RequestURI(),
	})
}
