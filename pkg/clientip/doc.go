// Package clientip resolves the client address of a request and carries it
// in the request context for structured logs.
//
//	r.Use(clientip.Middleware())
//	log := logger.New(logger.WithContextExtractors(clientip.LoggerExtractor()))
package clientip
