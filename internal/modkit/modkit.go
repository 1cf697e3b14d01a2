// Package modkit wires feature modules: shared deps, build options and the module contract
package modkit

import "payscope/internal/modkit/module"

// Module is re-exported so feature packages only import modkit
type Module = module.Module

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
