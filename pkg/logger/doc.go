// Package logger provides a factory for configured slog.Logger instances
// with functional options and automatic context attribute extraction.
//
// The factory can wrap the chosen handler so dynamic attributes
// (request IDs, user IDs) are pulled out of the context at log time,
// putting request-scoped data on every record without threading loggers
// through call sites.
//
// Basic usage:
//
//	log := logger.New(
//	    logger.WithDevelopment("emailkit"),
//	    logger.WithContextValue("request_id", requestIDKey),
//	)
//	log.InfoContext(ctx, "template rendered", logger.Template("trial_welcome"))
//
// Library components default to logger.Discard() so they stay silent unless
// a caller injects a real logger.
package logger
