package domain

import (
	"context"

	"payscope/internal/core/pipeline"
)

// Source reads the raw employee rows of spec.Table
type Source interface {
	Fetch(ctx context.Context, spec ColumnSpec) ([]RawRow, error)
}

// SnapshotPort serves the loaded table to other modules
type SnapshotPort interface {
	Table(ctx context.Context) (pipeline.Table, error)
	Reload(ctx context.Context) (LoadReport, error)
	Report() (LoadReport, bool)
}
