// Package httpserver wraps the standard http.Server with env-driven
// configuration, graceful shutdown on signals or context cancellation,
// and a health check handler for liveness and readiness probes.
//
// Typical use:
//
//	var cfg httpserver.Config
//	_ = config.Load(&cfg)
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
