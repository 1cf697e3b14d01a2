// Package pipeline filters the employee table with sidebar criteria and
// aggregates the result for KPIs, charts and export
//
// Filters always run in this order, each seeing the previous step's output:
// exact matches, salary range, roles, high salary, high bonus, top roles
package pipeline

import (
	"iter"
	"slices"
)

// Record is one employee row with salary already in canonical rupees
type Record struct {
	Domain string   `json:"domain"`
	Role   string   `json:"role"`
	Level  string   `json:"level"`
	Mode   string   `json:"mode"`
	Year   int      `json:"year,omitempty"` // NoYear when missing
	Salary float64  `json:"salary"`
	Bonus  *float64 `json:"bonus"` // nil when missing
}

// NoYear marks a record whose year was missing or not an integer
const NoYear = 0

// HasYear reports whether the year is present
func (r Record) HasYear() bool { return r.Year != NoYear }

// HasBonus reports whether the bonus is present
func (r Record) HasBonus() bool { return r.Bonus != nil }

// Table is an immutable set of records, safe to share between goroutines
type Table struct{ rows []Record }

// NewTable copies rows into a Table
func NewTable(rows []Record) Table {
	out := make([]Record, len(rows))
	for i, r := range rows {
		if r.Bonus != nil {
			b := *r.Bonus
			r.Bonus = &b
		}
		out[i] = r
	}
	return Table{rows: out}
}

// Len is the number of rows
func (t Table) Len() int { return len(t.rows) }

// All iterates rows in load order
func (t Table) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, r := range t.rows {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Rows returns a copy of the rows
func (t Table) Rows() []Record { return NewTable(t.rows).rows }

// Head returns a copy of at most n rows; n <= 0 means all
func (t Table) Head(n int) []Record {
	if n <= 0 || n >= len(t.rows) {
		return t.Rows()
	}
	return NewTable(t.rows[:n]).rows
}

// keep builds a new Table from the rows where pred holds; records are values so
// the result shares no mutable state except bonus pointers, which are never written
func (t Table) keep(pred func(Record) bool) Table {
	out := make([]Record, 0, len(t.rows))
	for _, r := range t.rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return Table{rows: slices.Clip(out)}
}

// Float returns a pointer to v, for building bonuses
func Float(v float64) *float64 { return &v }
