package response

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"

	"github.com/dmitrymomot/accessgate/core/result"
	"github.com/dmitrymomot/accessgate/core/validator"
)

// ErrSuccessfulResult is the panic value of ToProblem when given a successful result.
var ErrSuccessfulResult = errors.New("response: cannot build a problem from a successful result")

// Problem type URIs.
const (
	TypeBadRequest          = "https://tools.ietf.org/html/rfc7231#section-6.5.1"
	TypeNotFound            = "https://tools.ietf.org/html/rfc7231#section-6.5.4"
	TypeInternalServerError = "https://tools.ietf.org/html/rfc7231#section-6.6.1"
)

// Problem titles.
const (
	TitleNotFound   = "Resource Not Found"
	TitleBadRequest = "Bad Request"
	TitleInternal   = "An unexpected error occurred"
	TitleValidation = "One or more validation errors occurred."
)

// ContentTypeProblem is the media type of problem responses.
const ContentTypeProblem = "application/problem+json"

// Problem is an RFC 7807 problem details document.
// Extensions are serialized as top-level members next to the standard ones.
type Problem struct {
	Type       string
	Title      string
	Status     int
	Detail     string
	Instance   string
	Extensions map[string]any
}

// MarshalJSON flattens Extensions into the top-level object.
// Standard members win over extensions with the same name.
func (p Problem) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Extensions)+5)
	maps.Copy(m, p.Extensions)
	m["type"] = p.Type
	m["title"] = p.Title
	m["status"] = p.Status
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	return json.Marshal(m)
}

// Errors returns the domain errors attached by ToProblem, if any.
func (p Problem) Errors() []result.Error {
	errs, _ := p.Extensions["errors"].([]result.Error)
	return errs
}

// ToProblem maps a failed outcome to a problem. It panics with ErrSuccessfulResult
// when r is a success.
//
// Not-found outcomes map to 404, Error.NullValue to 400 and everything else to 500.
// The domain error is always attached under extensions.errors.
func ToProblem(r result.Outcome) Problem {
	if r.IsSuccess() {
		panic(ErrSuccessfulResult)
	}

	e := r.Error()
	p := Problem{Extensions: map[string]any{"errors": []result.Error{e}}}
	switch {
	case r.IsNotFound():
		p.Status, p.Title, p.Type = http.StatusNotFound, TitleNotFound, TypeNotFound
	case e.Code == result.ErrNullValue.Code:
		p.Status, p.Title, p.Type = http.StatusBadRequest, TitleBadRequest, TypeBadRequest
	default:
		p.Status, p.Title, p.Type = http.StatusInternalServerError, TitleInternal, TypeInternalServerError
	}
	return p
}

// ValidationProblem maps aggregated validation failures to a 400 problem whose
// errors member is keyed by field.
func ValidationProblem(ve *validator.ValidationError) Problem {
	fields := map[string][]string{}
	if ve != nil {
		fields = ve.Fields()
	}
	return Problem{
		Type:       TypeBadRequest,
		Title:      TitleValidation,
		Status:     http.StatusBadRequest,
		Extensions: map[string]any{"errors": fields},
	}
}

// InternalProblem is the opaque 500 returned for unexpected failures.
func InternalProblem() Problem {
	return Problem{
		Type:   TypeInternalServerError,
		Title:  TitleInternal,
		Status: http.StatusInternalServerError,
	}
}

// BadRequestProblem reports a malformed request, such as an unparsable body.
func BadRequestProblem(detail string) Problem {
	return Problem{
		Type:   TypeBadRequest,
		Title:  TitleBadRequest,
		Status: http.StatusBadRequest,
		Detail: detail,
	}
}
