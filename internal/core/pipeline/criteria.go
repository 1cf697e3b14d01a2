package pipeline

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidCriteria is returned by Validate
var ErrInvalidCriteria = errors.New("pipeline: invalid criteria")

// Choice is a single-select control: unconstrained, or exactly one value
type Choice[T comparable] struct {
	Value T
	Set   bool
}

// Any is the unconstrained Choice
func Any[T comparable]() Choice[T] { return Choice[T]{} }

// Only constrains a Choice to v
func Only[T comparable](v T) Choice[T] { return Choice[T]{Value: v, Set: true} }

// Match reports whether v passes the choice
func (c Choice[T]) Match(v T) bool { return !c.Set || c.Value == v }

// RoleSet is the multi-select role control
// a nil set leaves roles unconstrained; an empty non-nil set matches nothing
type RoleSet map[string]struct{}

// Roles builds a non-nil RoleSet, so Roles() matches nothing
func Roles(names ...string) RoleSet {
	s := make(RoleSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports membership
func (s RoleSet) Has(role string) bool {
	_, ok := s[role]
	return ok
}

// Sorted lists the roles in byte order
func (s RoleSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Range is an inclusive salary range in rupees; infinite bounds are allowed
type Range struct {
	Min float64
	Max float64
}

// Unbounded matches every salary
func Unbounded() Range { return Range{Min: math.Inf(-1), Max: math.Inf(1)} }

// Contains is inclusive on both ends; Min > Max contains nothing
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Criteria is the full sidebar state for one pipeline run
type Criteria struct {
	Domain Choice[string]
	Level  Choice[string]
	Mode   Choice[string]
	Year   Choice[int]
	Roles  RoleSet
	Salary Range

	HighSalaryOnly bool
	HighBonusOnly  bool
	TopRolesOnly   bool
}

// Defaults is the reset state for t: nothing constrained, every role of t
// selected and the salary range spanning t
func Defaults(t Table) Criteria {
	roles := Roles()
	lo, hi := 0.0, 0.0
	for i, r := range t.All() {
		roles[r.Role] = struct{}{}
		if i == 0 || r.Salary < lo {
			lo = r.Salary
		}
		if i == 0 || r.Salary > hi {
			hi = r.Salary
		}
	}
	return Criteria{Roles: roles, Salary: Range{Min: lo, Max: hi}}
}

// Validate rejects criteria and options no run can be defined for
// an inverted salary range is valid and simply matches nothing
func Validate(c Criteria, o Options) error {
	switch {
	case math.IsNaN(c.Salary.Min) || math.IsNaN(c.Salary.Max):
		return fmt.Errorf("%w: salary bound is NaN", ErrInvalidCriteria)
	case o.TopN < 0:
		return fmt.Errorf("%w: top roles count %d is negative", ErrInvalidCriteria, o.TopN)
	case o.HistogramBins < 0:
		return fmt.Errorf("%w: histogram bins %d is negative", ErrInvalidCriteria, o.HistogramBins)
	case o.HighSalaryThreshold != nil && math.IsNaN(*o.HighSalaryThreshold):
		return fmt.Errorf("%w: high salary threshold is NaN", ErrInvalidCriteria)
	}
	return nil
}
