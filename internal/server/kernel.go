package server

import (
	"context"
	"fmt"
	"log/slog"
)

// Boot registers every module's services, then boots each module on the
// root group. Background work started by modules runs until Shutdown.
func (s *Server) Boot(ctx context.Context) error {
	for _, m := range s.modules {
		if err := m.Register(s.Registry); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}

	bootCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.stopBoot = cancel
	root := s.E.Group("")
	for _, m := range s.modules {
		if err := m.Boot(bootCtx, root, s.Registry); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
		slog.Debug("Module booted", "module", m.Name())
	}
	slog.Info("Modules booted", "count", len(s.modules), "services", s.Registry.Names())
	return nil
}
