package httpserver

import (
	"log/slog"
	"time"
)

// Option configures the HTTP server.
type Option func(*options)

type options struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

func WithAddr(addr string) Option {
	if addr == "" {
		panic("WithAddr: addr cannot be empty")
	}
	return func(o *options) { o.addr = addr }
}

func WithReadTimeout(d time.Duration) Option {
	return func(o *options) { o.readTimeout = positive(d, "WithReadTimeout") }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) { o.writeTimeout = positive(d, "WithWriteTimeout") }
}

func WithIdleTimeout(d time.Duration) Option {
	return func(o *options) { o.idleTimeout = positive(d, "WithIdleTimeout") }
}

// WithShutdownTimeout sets the time allowed for in-flight requests to finish.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) { o.shutdownTimeout = positive(d, "WithShutdownTimeout") }
}

// WithLogger sets the logger used for lifecycle events. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func positive(d time.Duration, name string) time.Duration {
	if d <= 0 {
		panic(name + ": duration must be > 0")
	}
	return d
}
