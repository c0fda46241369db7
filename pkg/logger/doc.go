// Package logger builds *slog.Logger instances with functional options,
// consistent attribute helpers and transparent injection of values stored
// in context.Context (request id, environment).
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "library"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.ErrorContext(ctx, "request error", logger.Error(err), logger.Status(500))
//
// Error and Errors return empty attributes for nil errors, so they can be
// passed unconditionally.
package logger
