// Package server wraps net/http.Server with configuration from the environment and
// graceful shutdown.
//
// Run returns a function for errgroup so the HTTP server shares a lifecycle with the
// rest of the process:
//
//	cfg := server.DefaultConfig()
//	config.MustLoad(&cfg)
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	return g.Wait()
//
// When ctx is cancelled the server stops accepting connections and waits up to the
// shutdown timeout for in-flight requests.
package server
