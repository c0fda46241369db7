package main

import (
	"errors"
	"log/slog"

	"github.com/dmitrymomot/library/pkg/config"
	"github.com/dmitrymomot/library/pkg/db"
	"github.com/dmitrymomot/library/pkg/environment"
	"github.com/dmitrymomot/library/pkg/httpserver"
)

type appConfig struct {
	Env            environment.Environment `env:"APP_ENV" envDefault:"development"`
	Name           string                  `env:"APP_NAME" envDefault:"library"`
	MetricsEnabled bool                    `env:"METRICS_ENABLED" envDefault:"true"`
	// LogLevel overrides the level of the environment preset when set.
	LogLevel string `env:"LOG_LEVEL"`
	// IPHeaders lists proxy headers trusted for the client address.
	IPHeaders []string `env:"TRUSTED_IP_HEADERS" envSeparator:","`
}

type settings struct {
	App  appConfig
	HTTP httpserver.Config
	DB   db.Config
}

func loadSettings() (settings, error) {
	var s settings
	if err := config.Load(&s.App); err != nil {
		return settings{}, err
	}
	if err := config.Load(&s.HTTP); err != nil {
		return settings{}, err
	}
	if err := config.Load(&s.DB); err != nil {
		return settings{}, err
	}
	s.App.Env = s.App.Env.Normalize()
	if _, _, err := s.App.level(); err != nil {
		return settings{}, err
	}
	return s, nil
}

var errLogLevel = errors.New("invalid LOG_LEVEL")

// level parses LogLevel. ok is false when it is unset.
func (c appConfig) level() (lvl slog.Level, ok bool, err error) {
	if c.LogLevel == "" {
		return lvl, false, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, false, errors.Join(errLogLevel, err)
	}
	return lvl, true, nil
}
