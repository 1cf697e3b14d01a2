package pipeline

import (
	"slices"
	"sort"

	"payscope/internal/core/label"
)

// Controls lists the values the sidebar offers for t
type Controls struct {
	Domains []string `json:"domains"`
	Levels  []string `json:"levels"`
	Modes   []string `json:"modes"`
	Years   []int    `json:"years"`
	Roles   []string `json:"roles"`

	SalaryMin float64 `json:"salary_min"`
	SalaryMax float64 `json:"salary_max"`
}

// ControlsFor collects the distinct values of t, sorted; single-select lists start with All
// empty labels and missing years never appear as options
func ControlsFor(t Table) Controls {
	d := Defaults(t)
	var c = Controls{
		Domains:   withAll(distinct(t, func(r Record) string { return r.Domain })),
		Levels:    withAll(distinct(t, func(r Record) string { return r.Level })),
		Modes:     withAll(distinct(t, func(r Record) string { return r.Mode })),
		Roles:     distinct(t, func(r Record) string { return r.Role }),
		Years:     []int{},
		SalaryMin: d.Salary.Min,
		SalaryMax: d.Salary.Max,
	}
	seen := map[int]bool{}
	for _, r := range t.All() {
		if r.HasYear() && !seen[r.Year] {
			seen[r.Year] = true
			c.Years = append(c.Years, r.Year)
		}
	}
	slices.Sort(c.Years)
	return c
}

func distinct(t Table, key func(Record) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range t.All() {
		k := key(r)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func withAll(vals []string) []string { return append([]string{label.All}, vals...) }
