package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type httpServer interface {
	Start(address string) error
	Shutdown(ctx context.Context) error
}

type drainer interface {
	Close(ctx context.Context) error
}

// serve runs srv until ctx is cancelled or Start fails. Either way the server is shut
// down and the activity queue drained before returning, so queued records survive a
// failed listen as well as a signal.
func serve(ctx context.Context, srv httpServer, addr string, activities drainer, timeout time.Duration, log zerolog.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case runErr = <-serveErr:
		if runErr != nil {
			log.Error().Err(runErr).Msg("http server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	// Requests are drained; flush the activities they queued.
	if err := activities.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("activity dispatcher did not drain in time")
	}
	log.Info().Msg("shutdown complete")
	return runErr
}
