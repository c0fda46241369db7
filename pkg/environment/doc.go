// Package environment propagates the application environment (development,
// staging, production) through context.Context.
//
// The terminal error reporter consults IsProduction to decide whether the
// internal error detail may be rendered on the error page.
//
//	r.Use(environment.Middleware(environment.Environment(cfg.AppEnv)))
//	if !environment.IsProduction(r.Context()) {
//		// render diagnostic detail
//	}
package environment
