package module

import (
	"fmt"
	"os"

	"payscope/internal/platform/config"
	"payscope/internal/services/dataset/domain"
)

// Options holds configuration for the dataset module
type Options struct {
	Source             string // pg or ch
	Profile            string
	ProfileFile        string
	Table              string // overrides the profile table when set
	USDRate            float64
	StatementTimeoutMs int
}

// FromConfig reads CORE_DATASET_*
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_DATASET_")
	return Options{
		Source:             c.MayEnum("SOURCE", "pg", "pg", "ch"),
		Profile:            c.MayString("PROFILE", "inr"),
		ProfileFile:        c.MayString("PROFILE_FILE", ""),
		Table:              c.MayString("TABLE", ""),
		USDRate:            c.MayFloat64("USD_RATE", 0),
		StatementTimeoutMs: c.MayInt("STATEMENT_TIMEOUT_MS", 15000),
	}
}

// ResolveProfile picks the configured profile, applying the file and overrides
func (o Options) ResolveProfile() (domain.Profile, error) {
	ps := domain.Builtin()
	if o.ProfileFile != "" {
		f, err := os.Open(o.ProfileFile)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("dataset: %w", err)
		}
		defer f.Close()
		if ps, err = domain.ReadProfiles(f, ps); err != nil {
			return domain.Profile{}, err
		}
	}
	p, err := domain.Lookup(ps, o.Profile)
	if err != nil {
		return domain.Profile{}, err
	}
	if o.Table != "" {
		p.Columns.Table = o.Table
	}
	if o.USDRate > 0 {
		p.USDRate = o.USDRate
	}
	cols, err := p.Columns.Normalized()
	if err != nil {
		return domain.Profile{}, err
	}
	p.Columns = cols
	return p, nil
}
