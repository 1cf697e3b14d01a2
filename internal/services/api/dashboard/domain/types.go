// Package domain defines the dashboard request and response shapes
package domain

import (
	"math"

	"payscope/internal/core/label"
	"payscope/internal/core/pipeline"
	dsdomain "payscope/internal/services/dataset/domain"
)

// CriteriaInput is the sidebar state as sent by the client
// empty or "All" single selects are unconstrained; an absent roles list
// means every role and an empty one means none
type CriteriaInput struct {
	Domain string   `json:"domain,omitempty" validate:"omitempty,label" example:"Engineering"`
	Level  string   `json:"level,omitempty"  validate:"omitempty,label" example:"Senior"`
	Mode   string   `json:"mode,omitempty"   validate:"omitempty,label" example:"Remote"`
	Year   *int     `json:"year,omitempty"   validate:"omitempty,min=1900,max=2200" example:"2023"`
	Roles  []string `json:"roles"            validate:"omitempty,max=1000,dive,label"`
	MinPay *float64 `json:"salary_min,omitempty" example:"500000"`
	MaxPay *float64 `json:"salary_max,omitempty" example:"3000000"`

	HighSalaryOnly bool `json:"high_salary_only"`
	HighBonusOnly  bool `json:"high_bonus_only"`
	TopRolesOnly   bool `json:"top_roles_only"`
}

// Criteria converts the input to pipeline criteria
func (in CriteriaInput) Criteria() pipeline.Criteria {
	c := pipeline.Criteria{
		Domain:         choice(in.Domain),
		Level:          choice(in.Level),
		Mode:           choice(in.Mode),
		Salary:         pipeline.Unbounded(),
		HighSalaryOnly: in.HighSalaryOnly,
		HighBonusOnly:  in.HighBonusOnly,
		TopRolesOnly:   in.TopRolesOnly,
	}
	if in.Year != nil {
		c.Year = pipeline.Only(*in.Year)
	}
	if in.Roles != nil {
		names := make([]string, len(in.Roles))
		for i, r := range in.Roles {
			names[i] = label.Normalize(r)
		}
		c.Roles = pipeline.Roles(names...)
	}
	if in.MinPay != nil {
		c.Salary.Min = *in.MinPay
	}
	if in.MaxPay != nil {
		c.Salary.Max = *in.MaxPay
	}
	return c
}

func choice(v string) pipeline.Choice[string] {
	if label.IsAll(v) {
		return pipeline.Any[string]()
	}
	return pipeline.Only(label.Normalize(v))
}

// InputFrom renders criteria back into the wire shape, used for the reset state
func InputFrom(c pipeline.Criteria) CriteriaInput {
	in := CriteriaInput{
		HighSalaryOnly: c.HighSalaryOnly,
		HighBonusOnly:  c.HighBonusOnly,
		TopRolesOnly:   c.TopRolesOnly,
	}
	pick := func(ch pipeline.Choice[string]) string {
		if ch.Set {
			return ch.Value
		}
		return label.All
	}
	in.Domain, in.Level, in.Mode = pick(c.Domain), pick(c.Level), pick(c.Mode)
	if c.Year.Set {
		y := c.Year.Value
		in.Year = &y
	}
	if c.Roles != nil {
		in.Roles = c.Roles.Sorted()
	}
	if !math.IsInf(c.Salary.Min, 0) {
		v := c.Salary.Min
		in.MinPay = &v
	}
	if !math.IsInf(c.Salary.Max, 0) {
		v := c.Salary.Max
		in.MaxPay = &v
	}
	return in
}

// ApplyInput is CriteriaInput plus paging of the returned rows
type ApplyInput struct {
	CriteriaInput
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=100000" example:"100"`
}

// ApplyOutput carries the summary of the whole subset and up to Limit rows
type ApplyOutput struct {
	Summary   pipeline.Summary  `json:"summary"`
	Rows      []pipeline.Record `json:"rows"`
	Total     int               `json:"total"`
	Truncated bool              `json:"truncated"`
}

// ControlsOutput is what the sidebar needs to render and reset
type ControlsOutput struct {
	Options  pipeline.Controls `json:"options"`
	Defaults CriteriaInput     `json:"defaults"`
	Buckets  pipeline.Buckets  `json:"buckets"`
}

// ReloadOutput reports a snapshot reload
type ReloadOutput struct {
	Report dsdomain.LoadReport `json:"report"`
}
