// Package logger provides structured logging built on the standard slog package.
//
// New builds a *slog.Logger from options:
//
//	log := logger.New(
//		logger.WithProduction("accessgate"),
//		logger.WithContextExtractors(logger.RequestIDExtractor),
//	)
//
//	log.InfoContext(ctx, "Access request created",
//		logger.Component("accessrequests"),
//		logger.ID("request_id", id),
//	)
//
// WithDevelopment writes text at debug level, WithStaging and WithProduction write JSON.
// Context extractors inject request-scoped attributes (such as the HTTP request id stored
// by ContextWithRequestID) into every record logged with that context.
//
// Attribute helpers return an empty slog.Attr for nil or empty input, so they are safe
// to pass unconditionally:
//
//	log.Error("dispatch failed", logger.Error(err), logger.Request(name), logger.Duration(d))
package logger
