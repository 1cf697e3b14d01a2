package service

import (
	"context"
	"sync"

	"payscope/internal/core/pipeline"
	"payscope/internal/services/dataset/domain"
)

// TableLoader produces a fresh table; *Loader implements it
type TableLoader interface {
	Load(ctx context.Context) (pipeline.Table, domain.LoadReport, error)
}

// Snapshot holds the loaded table; the first Table call loads it, Reload
// replaces it, and failed loads are never cached
type Snapshot struct {
	loader TableLoader

	mu     sync.RWMutex
	table  pipeline.Table
	report domain.LoadReport
	loaded bool

	// serializes loads so concurrent first readers trigger one fetch
	loadMu sync.Mutex
}

// NewSnapshot constructs an empty Snapshot
func NewSnapshot(l TableLoader) *Snapshot { return &Snapshot{loader: l} }

// Table returns the current table, loading it on first use
func (s *Snapshot) Table(ctx context.Context) (pipeline.Table, error) {
	if t, ok := s.current(); ok {
		return t, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if t, ok := s.current(); ok {
		return t, nil
	}
	t, _, err := s.load(ctx)
	return t, err
}

// Reload fetches the table again; on failure the previous table stays in place
func (s *Snapshot) Reload(ctx context.Context) (domain.LoadReport, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	_, rep, err := s.load(ctx)
	return rep, err
}

// Report returns the report of the last successful load
func (s *Snapshot) Report() (domain.LoadReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report, s.loaded
}

func (s *Snapshot) current() (pipeline.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table, s.loaded
}

func (s *Snapshot) load(ctx context.Context) (pipeline.Table, domain.LoadReport, error) {
	t, rep, err := s.loader.Load(ctx)
	if err != nil {
		return pipeline.Table{}, rep, err
	}
	s.mu.Lock()
	s.table, s.report, s.loaded = t, rep, true
	s.mu.Unlock()
	return t, rep, nil
}
