package main

import (
	"fmt"
	"io"
	"strconv"

	"payscope/internal/core/pipeline"
	"payscope/internal/core/salary"

	"github.com/olekukonko/tablewriter"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}

func stat(s pipeline.Stat) string {
	if !s.Computed() {
		return string(s.Status)
	}
	return salary.FormatLakhGrouped(s.Value)
}

func millions(s pipeline.Stat) string {
	if !s.Computed() {
		return string(s.Status)
	}
	return strconv.FormatFloat(s.Value, 'f', 2, 64) + "M"
}

// renderSummary prints the headline numbers followed by the grouped tables
func renderSummary(w io.Writer, s pipeline.Summary) {
	kpi := newTable(w, "metric", "value")
	kpi.AppendBulk([][]string{
		{"rows", strconv.Itoa(s.RowCount)},
		{"domains", strconv.Itoa(s.DistinctDomains)},
		{"roles", strconv.Itoa(s.DistinctRoles)},
		{"mean salary", stat(s.MeanSalary) + " (" + millions(s.KPIs.Mean) + ")"},
		{"min salary", stat(s.MinSalary) + " (" + millions(s.KPIs.Min) + ")"},
		{"max salary", stat(s.MaxSalary) + " (" + millions(s.KPIs.Max) + ")"},
		{"top paying domain", s.TopDomain.Value},
		{"most common role", s.MostCommonRole.Value},
	})
	kpi.Render()

	groups := func(title string, gs []pipeline.Group) {
		if len(gs) == 0 {
			return
		}
		fmt.Fprintln(w)
		t := newTable(w, title, "mean", "count")
		for _, g := range gs {
			t.Append([]string{g.Key, salary.FormatLakhGrouped(g.Mean), strconv.Itoa(g.Count)})
		}
		t.Render()
	}
	groups("salary by domain", s.SalaryByDomain)
	groups("salary by level", s.SalaryByLevel)
	groups("bonus by domain", s.BonusByDomain)

	if len(s.Buckets) > 0 {
		fmt.Fprintln(w)
		t := newTable(w, "salary bucket", "count", "percent")
		for _, b := range s.Buckets {
			t.Append([]string{b.Key, strconv.Itoa(b.Count), strconv.FormatFloat(b.Percent, 'f', 1, 64) + "%"})
		}
		t.Render()
	}
}

func renderRows(w io.Writer, rows []pipeline.Record, total int) {
	fmt.Fprintln(w)
	t := newTable(w, "domain", "role", "level", "mode", "year", "salary", "bonus")
	for _, r := range rows {
		year, bonus := "", ""
		if r.HasYear() {
			year = strconv.Itoa(r.Year)
		}
		if r.Bonus != nil {
			bonus = salary.FormatLakhGrouped(*r.Bonus)
		}
		t.Append([]string{r.Domain, r.Role, r.Level, r.Mode, year, salary.FormatLakhGrouped(r.Salary), bonus})
	}
	t.SetFooter([]string{"", "", "", "", "", "shown", fmt.Sprintf("%d of %d", len(rows), total)})
	t.Render()
}
