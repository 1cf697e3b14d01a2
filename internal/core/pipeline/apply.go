package pipeline

import (
	"slices"
	"sort"
)

// Apply filters t with c and summarizes the subset
// invalid criteria yield an empty subset and a summary whose outcomes are StatusInvalid
func Apply(t Table, c Criteria, o Options) (Table, Summary) {
	o = o.withDefaults()
	if err := Validate(c, o); err != nil {
		return Table{}, invalidSummary()
	}
	sub := Filter(t, c, o)
	return sub, Summarize(sub, o)
}

// Filter runs the filter steps in their fixed order
func Filter(t Table, c Criteria, o Options) Table {
	o = o.withDefaults()

	sub := t.keep(func(r Record) bool {
		return c.Domain.Match(r.Domain) &&
			c.Level.Match(r.Level) &&
			c.Mode.Match(r.Mode) &&
			(!c.Year.Set || r.HasYear() && c.Year.Match(r.Year))
	})

	sub = sub.keep(func(r Record) bool { return c.Salary.Contains(r.Salary) })

	if c.Roles != nil {
		sub = sub.keep(func(r Record) bool { return c.Roles.Has(r.Role) })
	}

	if c.HighSalaryOnly {
		sub = sub.keep(func(r Record) bool { return r.Salary > *o.HighSalaryThreshold })
	}

	if c.HighBonusOnly {
		if m, ok := BonusMedian(sub); ok {
			sub = sub.keep(func(r Record) bool { return r.Bonus != nil && *r.Bonus > m })
		}
	}

	if c.TopRolesOnly {
		top := Roles(TopRoles(sub, o.TopN)...)
		sub = sub.keep(func(r Record) bool { return top.Has(r.Role) })
	}
	return sub
}

// BonusMedian is the median of the present bonuses; false when none are present
func BonusMedian(t Table) (float64, bool) {
	var vals []float64
	for _, r := range t.All() {
		if r.Bonus != nil {
			vals = append(vals, *r.Bonus)
		}
	}
	if len(vals) == 0 {
		return 0, false
	}
	slices.Sort(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid], true
	}
	return (vals[mid-1] + vals[mid]) / 2, true
}

// TopRoles returns the n most frequent roles of t, most frequent first
// ties are broken by role name in byte order
func TopRoles(t Table, n int) []string {
	counts := countBy(t, func(r Record) string { return r.Role })
	roles := make([]string, 0, len(counts))
	for k := range counts {
		roles = append(roles, k)
	}
	sort.Slice(roles, func(i, j int) bool {
		ci, cj := counts[roles[i]], counts[roles[j]]
		if ci != cj {
			return ci > cj
		}
		return roles[i] < roles[j]
	})
	if n >= 0 && len(roles) > n {
		roles = roles[:n]
	}
	return roles
}

func countBy(t Table, key func(Record) string) map[string]int {
	out := map[string]int{}
	for _, r := range t.All() {
		out[key(r)]++
	}
	return out
}
