// Package response maps pipeline outcomes to HTTP responses.
//
// ToProblem turns a failed result into an RFC 7807 problem. The mapping is pure and
// deterministic, evaluated in this order:
//
//  1. not found (see result.Error.IsNotFound): 404 "Resource Not Found"
//  2. code Error.NullValue: 400 "Bad Request"
//  3. anything else: 500 "An unexpected error occurred"
//
// The original domain error is always embedded under the errors member so clients can
// see the precise cause even though many codes share one status:
//
//	{
//	  "type": "https://tools.ietf.org/html/rfc7231#section-6.5.4",
//	  "title": "Resource Not Found",
//	  "status": 404,
//	  "errors": [{"code": "NotFound.AccessRequest", "description": "..."}]
//	}
//
// ValidationProblem renders aggregated validator failures keyed by field, and
// InternalProblem is the opaque 500 for unexpected errors.
//
// Usage in a handler:
//
//	res, err := mediator.Ask[users.GetUser, result.Of[domain.User]](ctx, queries, q)
//	if err != nil {
//		// boundary error handling
//	}
//	if res.IsFailure() {
//		response.WriteProblem(w, response.ToProblem(res))
//		return
//	}
//	response.JSON(w, http.StatusOK, res.Value())
package response
