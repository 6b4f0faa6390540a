package health

import (
	"net/http"

	"github.com/dmitrymomot/accessgate/core/response"
)

// Liveness indicates if the service process is running.
// Always returns "ALIVE" with 200 OK. No dependency checks.
//
// Example:
//
//	r.Get("/live", health.Liveness)
func Liveness(w http.ResponseWriter, _ *http.Request) {
	_ = response.String(w, http.StatusOK, "ALIVE")
}

// NoContent returns HTTP 204 without body. Ideal for high-frequency checks.
func NoContent(w http.ResponseWriter, _ *http.Request) {
	response.NoContent(w)
}
