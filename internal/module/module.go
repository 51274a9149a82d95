// Package module defines the lifecycle of the feature modules (leaderboard,
// quizzes, lessons, dashboard) mounted by the server.
package module

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/registry"
)

// Module is one feature of the site.
//
// The server calls Register on every module before it calls Boot on any,
// in the order the modules were passed to Server.Use. A module whose Boot
// looks up a service published by another module must therefore come
// after it. Shutdown runs in reverse order.
type Module interface {
	Name() string

	// Register publishes the module's services in reg.
	Register(reg *registry.Registry) error

	// Boot mounts routes on router and starts subscribers that stop when
	// ctx ends.
	Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error

	Shutdown(ctx context.Context) error
}

// BaseModule gives no-op lifecycle methods to modules that embed it.
type BaseModule struct{}

func (m *BaseModule) Register(*registry.Registry) error { return nil }

func (m *BaseModule) Boot(context.Context, *echo.Group, *registry.Registry) error { return nil }

func (m *BaseModule) Shutdown(context.Context) error { return nil }
