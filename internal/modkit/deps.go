package modkit

import (
	"payscope/internal/modkit/repokit"
	"payscope/internal/platform/config"
	"payscope/internal/platform/logger"
	"payscope/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// CH is nil unless SERVICE_CLICKHOUSE_DBURL is set
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// FromStore builds Deps around an opened store
func FromStore(cfg config.Conf, st *store.Store) Deps {
	d := Deps{Log: *logger.Get(), Cfg: cfg}
	if st != nil {
		d.Log = st.Log
		d.PG = st.PG
		d.CH = st.CH
	}
	return d
}
