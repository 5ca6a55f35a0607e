// Package logger builds *slog.Logger values for the site.
//
// New assembles a JSON or text handler from functional options and wraps it
// in a decorator that pulls request-scoped values (request id, client ip) out
// of the context on every record. WithEnvironment picks sensible defaults per
// deployment: text at debug level for development, JSON at info level for
// staging and production.
//
// The attribute helpers (Error, Component, FormType, SubmissionID, ...) keep
// key names consistent across packages.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "site"),
//		logger.WithContextExtractors(web.RequestIDExtractor()),
//	)
//	log.ErrorContext(ctx, "relay failed", logger.FormType("contact"), logger.Error(err))
package logger
