// Package domain defines the types and ports of the dataset service
package domain

import (
	"errors"
	"time"
)

// ErrDataUnavailable means the dataset could not be produced: the store is
// unreachable, the table is missing, or no row survived normalization
var ErrDataUnavailable = errors.New("dataset: data unavailable")

// RawRow is one source row as text; an empty string is a missing value
type RawRow struct {
	Domain   string
	Role     string
	Level    string
	Mode     string
	Year     string
	Salary   string // canonical column
	Fallback string // secondary column, used when Salary does not parse
	Bonus    string
}

// LoadReport describes one load
type LoadReport struct {
	Source       string        `json:"source"`
	Table        string        `json:"table"`
	Profile      string        `json:"profile"`
	Fetched      int           `json:"fetched"`
	Loaded       int           `json:"loaded"`
	Dropped      int           `json:"dropped"`
	FromFallback int           `json:"from_fallback"`
	BadBonus     int           `json:"bad_bonus"`
	BadYear      int           `json:"bad_year"`
	LoadedAt     time.Time     `json:"loaded_at"`
	Took         time.Duration `json:"took_ns"`
}
