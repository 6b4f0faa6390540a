package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/accessgate/core/logger"
	"github.com/dmitrymomot/accessgate/core/response"
	"github.com/dmitrymomot/accessgate/core/result"
	"github.com/dmitrymomot/accessgate/core/validator"
)

// readJSON decodes the request body into a T. On failure it writes a 400 problem and
// returns false.
func readJSON[T any](a *API, w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, a.bodyLimit)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		var tooLarge *http.MaxBytesError
		detail := "The request body is not valid JSON."
		if errors.As(err, &tooLarge) {
			detail = fmt.Sprintf("The request body exceeds %d bytes.", tooLarge.Limit)
		}
		writeProblem(w, r, response.BadRequestProblem(detail))
		return v, false
	}
	return v, true
}

// pathID parses the UUID route parameter name.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	return parseID(w, r, name, chi.URLParam(r, name))
}

// queryID parses an optional UUID query parameter. Absent parameters yield uuid.Nil.
func queryID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return uuid.Nil, true
	}
	return parseID(w, r, name, raw)
}

func parseID(w http.ResponseWriter, r *http.Request, name, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		writeProblem(w, r, response.BadRequestProblem(fmt.Sprintf("%s must be a UUID.", name)))
		return uuid.Nil, false
	}
	return id, true
}

// writeValue writes the value of a successful result with status, or the problem of a
// failed one.
func writeValue[T any](a *API, w http.ResponseWriter, r *http.Request, res result.Of[T], err error, status int) {
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if !res.IsSuccess() {
		writeProblem(w, r, response.ToProblem(res))
		return
	}
	if err := response.JSON(w, status, res.Value()); err != nil {
		a.log.ErrorContext(r.Context(), "response write failed", logger.Component("http"), logger.Error(err))
	}
}

// writeEmpty writes 204 for a successful result, or the problem of a failed one.
func writeEmpty(a *API, w http.ResponseWriter, r *http.Request, res result.Result, err error) {
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if !res.IsSuccess() {
		writeProblem(w, r, response.ToProblem(res))
		return
	}
	response.NoContent(w)
}

// writeError maps a pipeline error. Validation errors are reported to the client; anything
// else is logged and hidden behind an opaque 500.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if ve := validator.ExtractValidationError(err); ve != nil {
		writeProblem(w, r, response.ValidationProblem(ve))
		return
	}
	a.log.ErrorContext(r.Context(), "request failed",
		logger.Component("http"),
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.Error(err),
	)
	writeProblem(w, r, response.InternalProblem())
}

func writeProblem(w http.ResponseWriter, r *http.Request, p response.Problem) {
	p.Instance = r.URL.Path
	_ = response.WriteProblem(w, p)
}
