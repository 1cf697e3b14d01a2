package domain

import (
	"fmt"
	"io"
	"maps"
	"regexp"
	"slices"
	"strings"

	"payscope/internal/core/pipeline"
	"payscope/internal/core/salary"

	"gopkg.in/yaml.v3"
)

// DefaultTable is the table the dashboard reads
const DefaultTable = "updated_employees"

// ColumnSpec says where the salary lives and in which unit
type ColumnSpec struct {
	Table        string      `yaml:"table"`
	Salary       string      `yaml:"salary"`
	SalaryUnit   salary.Unit `yaml:"salary_unit"`
	Fallback     string      `yaml:"fallback"`
	FallbackUnit salary.Unit `yaml:"fallback_unit"`
	BonusUnit    salary.Unit `yaml:"bonus_unit"`
}

// LabelColumns are read verbatim from every source
var LabelColumns = []string{"domain", "role", "level", "mode", "year"}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Normalized validates c and canonicalizes its unit spellings; identifiers
// are plain SQL names and the table may be schema qualified
func (c ColumnSpec) Normalized() (ColumnSpec, error) {
	if !identRe.MatchString(c.Table) {
		return c, fmt.Errorf("dataset: bad table name %q", c.Table)
	}
	if c.Salary == "" && c.Fallback == "" {
		return c, fmt.Errorf("dataset: no salary column")
	}
	for _, col := range []string{c.Salary, c.Fallback} {
		if col != "" && (!identRe.MatchString(col) || strings.Contains(col, ".")) {
			return c, fmt.Errorf("dataset: bad column name %q", col)
		}
	}
	for _, u := range []*salary.Unit{&c.SalaryUnit, &c.FallbackUnit, &c.BonusUnit} {
		if *u == "" {
			*u = salary.Base
			continue
		}
		v, err := salary.ParseUnit(string(*u))
		if err != nil {
			return c, err
		}
		*u = v
	}
	return c, nil
}

// Profile is a deployment flavour: columns, units, thresholds
type Profile struct {
	Name                string           `yaml:"name"`
	Columns             ColumnSpec       `yaml:"columns"`
	USDRate             float64          `yaml:"usd_rate"`
	HighSalaryThreshold *float64         `yaml:"high_salary_threshold"` // unset keeps the 2M default, 0 is honored
	TopN                int              `yaml:"top_n"`
	Buckets             pipeline.Buckets `yaml:"buckets"`
}

// Options are the pipeline options the profile implies
func (p Profile) Options() pipeline.Options {
	o := pipeline.DefaultOptions()
	if p.HighSalaryThreshold != nil {
		o.HighSalaryThreshold = pipeline.Float(*p.HighSalaryThreshold)
	}
	if p.TopN > 0 {
		o.TopN = p.TopN
	}
	if len(p.Buckets) > 0 {
		o.Buckets = p.Buckets.Sorted()
	}
	return o
}

// Rates are the conversion rates the profile implies
func (p Profile) Rates() salary.Rates { return salary.Rates{USD: p.USDRate} }

// DefaultUSDRate is rupees per dollar for the usd profile
const DefaultUSDRate = 83.0

// Builtin profiles, keyed by name
func Builtin() map[string]Profile {
	return map[string]Profile{
		"inr": {
			Name: "inr",
			Columns: ColumnSpec{
				Table: DefaultTable, Salary: "salary", SalaryUnit: salary.Base,
				Fallback: "salary_in_lakhs", FallbackUnit: salary.Lakhs, BonusUnit: salary.Base,
			},
		},
		"lakhs": {
			Name: "lakhs",
			Columns: ColumnSpec{
				Table: DefaultTable, Salary: "salary_in_lakhs", SalaryUnit: salary.Lakhs,
				Fallback: "salary", FallbackUnit: salary.Base, BonusUnit: salary.Base,
			},
		},
		"usd": {
			Name:    "usd",
			USDRate: DefaultUSDRate,
			Columns: ColumnSpec{
				Table: DefaultTable, Salary: "salary_in_usd", SalaryUnit: salary.USD,
				Fallback: "salary", FallbackUnit: salary.Base, BonusUnit: salary.Base,
			},
		},
	}
}

type profileFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// ReadProfiles merges the profiles of a YAML document over base; a profile
// with a known name overrides only the fields it sets
func ReadProfiles(r io.Reader, base map[string]Profile) (map[string]Profile, error) {
	var f profileFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("dataset: profile file: %w", err)
	}

	out := maps.Clone(base)
	if out == nil {
		out = map[string]Profile{}
	}
	for i, p := range f.Profiles {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name == "" {
			return nil, fmt.Errorf("dataset: profile #%d has no name", i+1)
		}
		merged := merge(out[name], p)
		merged.Name = name
		if merged.Columns.Table == "" {
			merged.Columns.Table = DefaultTable
		}
		cols, err := merged.Columns.Normalized()
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
		merged.Columns = cols
		out[name] = merged
	}
	return out, nil
}

func merge(dst, src Profile) Profile {
	c, s := &dst.Columns, src.Columns
	if s.Table != "" {
		c.Table = s.Table
	}
	if s.Salary != "" {
		c.Salary, c.SalaryUnit = s.Salary, s.SalaryUnit
	}
	if s.Fallback != "" {
		c.Fallback, c.FallbackUnit = s.Fallback, s.FallbackUnit
	}
	if s.BonusUnit != "" {
		c.BonusUnit = s.BonusUnit
	}
	if src.USDRate > 0 {
		dst.USDRate = src.USDRate
	}
	if src.HighSalaryThreshold != nil {
		dst.HighSalaryThreshold = pipeline.Float(*src.HighSalaryThreshold)
	}
	if src.TopN > 0 {
		dst.TopN = src.TopN
	}
	if len(src.Buckets) > 0 {
		dst.Buckets = append(pipeline.Buckets(nil), src.Buckets...)
	}
	return dst
}

// Lookup finds a profile by name
func Lookup(ps map[string]Profile, name string) (Profile, error) {
	p, ok := ps[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("dataset: unknown profile %q (have %s)", name, strings.Join(slices.Sorted(maps.Keys(ps)), ", "))
	}
	return p, nil
}
