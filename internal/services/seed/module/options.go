package module

import (
	"time"

	"payscope/internal/platform/config"
	dsdomain "payscope/internal/services/dataset/domain"
)

// Options holds configuration for the seed module
type Options struct {
	URL     string
	Mode    string
	Table   string
	Target  string // pg or ch
	Timeout time.Duration
	Retries int
	OnStart bool // the API seeds before serving
}

// FromConfig reads CORE_SEED_*
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_SEED_")
	return Options{
		URL:     c.MayString("URL", ""),
		Mode:    c.MayEnum("MODE", "skip", "skip", "replace"),
		Table:   c.MayString("TABLE", dsdomain.DefaultTable),
		Target:  c.MayEnum("TARGET", "pg", "pg", "ch"),
		Timeout: c.MayDuration("HTTP_TIMEOUT", 60*time.Second),
		Retries: c.MayInt("HTTP_RETRIES", 3),
		OnStart: c.MayBool("ON_START", false),
	}
}
