package behavior

import "github.com/dmitrymomot/accessgate/core/result"

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure" // Handler returned a failed result
	OutcomeError   = "error"   // Pipeline returned an error
	OutcomePanic   = "panic"
)

func outcomeOf(res any, err error, returned bool) string {
	switch {
	case !returned:
		return OutcomePanic
	case err != nil:
		return OutcomeError
	}
	if o, ok := res.(result.Outcome); ok && !o.IsSuccess() {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// failedOutcome returns the domain error of a failed result.
func failedOutcome(res any) (result.Error, bool) {
	o, ok := res.(result.Outcome)
	if !ok || o.IsSuccess() {
		return result.Error{}, false
	}
	return o.Error(), true
}
