// Package metrics provides Prometheus HTTP request metrics for chi routers.
//
//	m := metrics.New("library", nil)
//	r := chi.NewRouter()
//	r.Use(m.Middleware)
//	r.Handle("/metrics", m.Handler())
package metrics
