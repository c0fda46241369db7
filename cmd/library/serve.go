package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/library/pkg/db"
	"github.com/dmitrymomot/library/pkg/httpserver"
	"github.com/dmitrymomot/library/pkg/metrics"
	"github.com/dmitrymomot/library/views"
)

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, migrate)
			if err != nil {
				return err
			}
			defer a.Close()

			registry, err := views.New()
			if err != nil {
				return err
			}

			deps := routerDeps{
				env:       a.cfg.App.Env,
				log:       a.log,
				svc:       a.svc,
				views:     registry,
				checks:    []httpserver.HealthCheck{db.Healthcheck(a.conn.DB)},
				ipHeaders: a.cfg.App.IPHeaders,
			}
			if a.cfg.App.MetricsEnabled {
				deps.metrics = metrics.New(a.cfg.App.Name, nil)
			}

			server := httpserver.NewFromConfig(a.cfg.HTTP, httpserver.WithLogger(a.log))
			return server.Run(ctx, newRouter(deps))
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations on start")
	return cmd
}
