// Package httpx provides JSON response helpers for the storefront's API
// surfaces, with errors shaped as RFC7807 problem details.
package httpx

import (
	"encoding/json"
	"io"
	"net/http"
)

// Request bodies larger than this are rejected while decoding. Catalog
// documents are small; anything bigger is a client bug.
const maxBodyBytes = 1 << 20

// ProblemDetail is an RFC7807 problem details payload.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// JSON writes data as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Problem writes an RFC7807 problem details response.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	JSON(w, status, ProblemDetail{
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// DecodeJSON reads a bounded JSON request body into target.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(target)
}
