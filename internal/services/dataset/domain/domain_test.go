package domain

import (
	"strings"
	"testing"

	"payscope/internal/core/pipeline"
	"payscope/internal/core/salary"

	"github.com/google/go-cmp/cmp"
)

func TestBuiltin_Valid(t *testing.T) {
	for name, p := range Builtin() {
		if p.Name != name {
			t.Fatalf("%s: name %q", name, p.Name)
		}
		got, err := p.Columns.Normalized()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if diff := cmp.Diff(p.Columns, got); diff != "" {
			t.Fatalf("%s: builtin not canonical\n%s", name, diff)
		}
	}
	if Builtin()["usd"].Rates().USD != DefaultUSDRate {
		t.Fatal("usd profile must carry a rate")
	}
}

func TestNormalized(t *testing.T) {
	c, err := ColumnSpec{Table: "hr.employees", Salary: "pay", SalaryUnit: "INR", Fallback: "pay_usd", FallbackUnit: "USD"}.Normalized()
	if err != nil {
		t.Fatal(err)
	}
	want := ColumnSpec{Table: "hr.employees", Salary: "pay", SalaryUnit: salary.Base, Fallback: "pay_usd", FallbackUnit: salary.USD, BonusUnit: salary.Base}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("(-want +got)\n%s", diff)
	}

	bad := map[string]ColumnSpec{
		"table injection": {Table: "t; drop table x", Salary: "salary"},
		"no salary":       {Table: "t"},
		"dotted column":   {Table: "t", Salary: "a.b"},
		"unit":            {Table: "t", Salary: "s", SalaryUnit: "yen"},
	}
	for name, c := range bad {
		if _, err := c.Normalized(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestProfile_ZeroThresholdIsKept(t *testing.T) {
	ps, err := ReadProfiles(strings.NewReader("profiles:\n  - name: inr\n    high_salary_threshold: 0\n"), Builtin())
	if err != nil {
		t.Fatal(err)
	}
	if o := ps["inr"].Options(); o.HighSalaryThreshold == nil || *o.HighSalaryThreshold != 0 {
		t.Fatalf("threshold %v", o.HighSalaryThreshold)
	}
	if o := Builtin()["inr"].Options(); *o.HighSalaryThreshold != pipeline.DefaultHighSalaryThreshold {
		t.Fatalf("default threshold %v", *o.HighSalaryThreshold)
	}
}

func TestReadProfiles_MergeAndAdd(t *testing.T) {
	doc := `
profiles:
  - name: USD
    usd_rate: 80
  - name: eu
    high_salary_threshold: 3000000
    top_n: 3
    columns:
      table: staff
      salary: pay
      salary_unit: inr
    buckets:
      - {label: Top, min: 3000000}
      - {label: Rest, min: 0}
`
	ps, err := ReadProfiles(strings.NewReader(doc), Builtin())
	if err != nil {
		t.Fatal(err)
	}
	usd := ps["usd"]
	if usd.USDRate != 80 || usd.Columns.Salary != "salary_in_usd" {
		t.Fatalf("usd override lost fields: %+v", usd)
	}

	eu, err := Lookup(ps, " EU ")
	if err != nil {
		t.Fatal(err)
	}
	o := eu.Options()
	if *o.HighSalaryThreshold != 3_000_000 || o.TopN != 3 {
		t.Fatalf("options %+v", o)
	}
	if diff := cmp.Diff(pipeline.Buckets{{Label: "Rest", Min: 0}, {Label: "Top", Min: 3_000_000}}, o.Buckets); diff != "" {
		t.Fatalf("buckets not sorted\n%s", diff)
	}
	if eu.Columns.BonusUnit != salary.Base || eu.Columns.Table != "staff" {
		t.Fatalf("columns %+v", eu.Columns)
	}
	if _, ok := Builtin()["eu"]; ok {
		t.Fatal("base map mutated")
	}
}

func TestReadProfiles_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown key": "profiles:\n  - name: x\n    colour: red\n",
		"no name":     "profiles:\n  - usd_rate: 1\n",
		"bad column":  "profiles:\n  - name: x\n    columns: {salary: 'a;b'}\n",
	}
	for name, doc := range cases {
		if _, err := ReadProfiles(strings.NewReader(doc), Builtin()); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	ps, err := ReadProfiles(strings.NewReader(""), Builtin())
	if err != nil || len(ps) != 3 {
		t.Fatalf("empty doc: %v %d", err, len(ps))
	}
	if _, err := Lookup(ps, "gbp"); err == nil || !strings.Contains(err.Error(), "inr, lakhs, usd") {
		t.Fatalf("lookup err %v", err)
	}
}
