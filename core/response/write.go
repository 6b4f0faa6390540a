package response

import (
	"encoding/json"
	"net/http"
)

// WriteProblem writes p with the problem media type and p.Status.
func WriteProblem(w http.ResponseWriter, p Problem) error {
	status := p.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", ContentTypeProblem)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(p)
}

// JSON writes v as application/json with the given status.
// A zero status means 200, or 204 when v is nil.
func JSON(w http.ResponseWriter, status int, v any) error {
	if status == 0 {
		if v == nil {
			status = http.StatusNoContent
		} else {
			status = http.StatusOK
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	// No body for 204 or 304
	switch status {
	case http.StatusNoContent, http.StatusNotModified:
		return nil
	}
	return json.NewEncoder(w).Encode(v)
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// String writes a text/plain body with the given status.
func String(w http.ResponseWriter, status int, s string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write([]byte(s))
	return err
}
