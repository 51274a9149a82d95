package server

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// notifyShutdown returns a context canceled on an interrupt or terminate signal.
func notifyShutdown(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// Shutdown stops the HTTP server, then the modules, the bus, tracing and
// the store, in that order. It keeps going past failures and returns them
// joined.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.E.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	for i := len(s.modules) - 1; i >= 0; i-- {
		if err := s.modules[i].Shutdown(ctx); err != nil {
			slog.Error("Module shutdown failed", "module", s.modules[i].Name(), "error", err)
			errs = append(errs, err)
		}
	}
	if s.stopBoot != nil {
		s.stopBoot()
	}
	if err := s.Bus.Close(); err != nil {
		errs = append(errs, err)
	}
	for _, closeFn := range s.closers {
		closeFn()
	}
	if err := s.Store.Close(); err != nil {
		errs = append(errs, err)
	}
	slog.Info("Server shut down")
	return errors.Join(errs...)
}
