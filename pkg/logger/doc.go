// Package logger builds *slog.Logger instances with environment presets and
// automatic injection of request-scoped attributes.
//
// New wraps the JSON or text slog handler in a decorator that runs every
// registered ContextExtractor on each record, so values such as the request
// id, the resolved tenant id and the authenticated user id show up without
// being passed explicitly at each call site:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "tenancy"),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			tenant.LoggerExtractor(),
//			access.LoggerExtractor(),
//		),
//	)
//
// Attribute helpers in attr.go (Error, TenantID, UserID, Host, ...) keep key
// names uniform. Helpers that take an optional value return an empty slog.Attr
// for nil or empty input, which slog drops from the output.
package logger
