// Package behavior provides the pipeline behaviors wrapped around every command and
// query handler.
//
//   - Logging logs start, completion and failure of each request.
//   - Tracing opens an OpenTelemetry span per request.
//   - Validation runs the registered validators and aborts with a *validator.ValidationError.
//   - Performance measures elapsed time and warns about slow requests.
//
// All of them are mediator.OpenBehavior values and apply to every pair of the registry
// they are added to. The first behavior added is the outermost:
//
//	reg := mediator.NewRegistry()
//	_ = reg.Use(
//		behavior.Logging(log),
//		behavior.Tracing(),
//		behavior.Validation(validators),
//		behavior.Performance(log, 5*time.Second, behavior.WithHistogram(hist)),
//	)
//
// Behaviors never swallow errors or panics. An error from next is returned unchanged and
// a panic keeps unwinding after the behavior has recorded what it needs.
package behavior
