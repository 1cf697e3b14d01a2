// Package module defines the minimal contract for a modkit module
package module

import phttp "payscope/internal/platform/net/http"

// Module is what the API composes: routes, a port set for cross wiring, a name
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
