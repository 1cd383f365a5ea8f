package modkit

import (
	phttp "trainerbot/internal/platform/net/http"
)

// Module is what a binary composes: routes to mount and ports for other modules
type Module interface {
	// MountRoutes mounts HTTP routes, modules without routes leave it empty
	MountRoutes(r phttp.Router)
	// Ports returns the module port set, see module.PortsOf
	Ports() any
	Name() string
}

// Builder constructs a module from the process deps
type Builder func(d Deps, opts ...Option) Module
