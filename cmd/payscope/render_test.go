package main

import (
	"bytes"
	"strings"
	"testing"

	"payscope/internal/core/pipeline"
)

func TestRenderSummary(t *testing.T) {
	tbl := pipeline.NewTable([]pipeline.Record{
		{Domain: "Eng", Role: "Dev", Level: "Senior", Mode: "Remote", Year: 2023, Salary: 2_500_000, Bonus: pipeline.Float(150_000)},
		{Domain: "Sales", Role: "Rep", Level: "Junior", Mode: "Office", Year: 2023, Salary: 1_234_567},
	})
	sum := pipeline.Summarize(tbl, pipeline.DefaultOptions())

	var buf bytes.Buffer
	renderSummary(&buf, sum)
	renderRows(&buf, tbl.Rows(), tbl.Len())
	out := buf.String()

	for _, want := range []string{"TOP PAYING DOMAIN", "Eng", "12,34,567", "2.50M", "SALARY BY LEVEL", "1,50,000", "2 of 2"} {
		if !strings.Contains(strings.ToUpper(out), strings.ToUpper(want)) {
			t.Fatalf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestRenderSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderSummary(&buf, pipeline.Summarize(pipeline.NewTable(nil), pipeline.DefaultOptions()))
	out := buf.String()
	if !strings.Contains(out, "no_data") || !strings.Contains(out, pipeline.NoData) {
		t.Fatalf("empty summary:\n%s", out)
	}
	if strings.Contains(strings.ToUpper(out), "SALARY BY DOMAIN") {
		t.Fatalf("empty groups rendered:\n%s", out)
	}
}
