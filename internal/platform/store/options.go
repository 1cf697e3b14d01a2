package store

import (
	"payscope/internal/platform/logger"

	"github.com/rs/zerolog"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger handed to backends
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

func zeroLogger() logger.Logger { return zerolog.Nop() }
