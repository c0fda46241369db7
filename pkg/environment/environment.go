package environment

import (
	"context"
	"strings"
)

// Environment represents application environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Normalize maps short aliases (dev, stage, prod) and mixed case values
// onto the canonical names. Unknown values are lower-cased and kept.
// The empty value normalizes to Development.
func (e Environment) Normalize() Environment {
	switch v := strings.ToLower(strings.TrimSpace(string(e))); v {
	case "", "dev", "development", "local":
		return Development
	case "stage", "staging":
		return Staging
	case "prod", "production":
		return Production
	default:
		return Environment(v)
	}
}

func (e Environment) IsProduction() bool { return e.Normalize() == Production }

type contextKey struct{}

// WithContext stores the normalized environment in ctx.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env.Normalize())
}

// FromContext returns the environment stored in ctx, or "" when absent.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsProduction reports whether ctx carries the production environment.
// A context without environment is not production, so error details stay
// visible in tests and local runs.
func IsProduction(ctx context.Context) bool {
	return FromContext(ctx) == Production
}
