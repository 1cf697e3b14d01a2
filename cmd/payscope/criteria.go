package main

import (
	"payscope/internal/services/api/dashboard/domain"

	"github.com/spf13/pflag"
)

// criteriaFlags mirrors the dashboard sidebar on the command line
type criteriaFlags struct {
	domain, level, mode string
	year                int
	roles               []string
	salaryMin           float64
	salaryMax           float64
	highSalary          bool
	highBonus           bool
	topRoles            bool
}

func (c *criteriaFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.domain, "domain", "All", "Domain to keep, All for every domain")
	fs.StringVar(&c.level, "level", "All", "Level to keep")
	fs.StringVar(&c.mode, "mode", "All", "Work mode to keep")
	fs.IntVar(&c.year, "year", 0, "Year to keep, 0 for every year")
	fs.StringSliceVar(&c.roles, "role", nil, "Roles to keep (repeatable); pass --role= to select none")
	fs.Float64Var(&c.salaryMin, "salary-min", 0, "Lowest salary kept, inclusive")
	fs.Float64Var(&c.salaryMax, "salary-max", 0, "Highest salary kept, inclusive")
	fs.BoolVar(&c.highSalary, "high-salary", false, "Keep salaries above the high salary threshold")
	fs.BoolVar(&c.highBonus, "high-bonus", false, "Keep bonuses above the median bonus")
	fs.BoolVar(&c.topRoles, "top-roles", false, "Keep only the most common roles")
}

// input builds the criteria; bounds and roles apply only when their flag was given
func (c *criteriaFlags) input(fs *pflag.FlagSet) domain.CriteriaInput {
	in := domain.CriteriaInput{
		Domain:         c.domain,
		Level:          c.level,
		Mode:           c.mode,
		HighSalaryOnly: c.highSalary,
		HighBonusOnly:  c.highBonus,
		TopRolesOnly:   c.topRoles,
	}
	if c.year != 0 {
		y := c.year
		in.Year = &y
	}
	if fs.Changed("role") {
		in.Roles = make([]string, 0, len(c.roles))
		for _, r := range c.roles {
			if r != "" {
				in.Roles = append(in.Roles, r)
			}
		}
	}
	if fs.Changed("salary-min") {
		v := c.salaryMin
		in.MinPay = &v
	}
	if fs.Changed("salary-max") {
		v := c.salaryMax
		in.MaxPay = &v
	}
	return in
}
