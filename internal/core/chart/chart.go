// Package chart renders the dashboard charts from a pipeline.Summary
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"payscope/internal/core/pipeline"
	"payscope/internal/core/salary"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// Chart names
const (
	DomainShare       = "domain_share"
	SalaryHistogram   = "salary_histogram"
	AvgSalaryByDomain = "avg_salary_by_domain"
	AvgSalaryByLevel  = "avg_salary_by_level"
	SalaryBuckets     = "salary_buckets"
	AvgBonusByDomain  = "avg_bonus_by_domain"
)

// Names lists every chart in display order
func Names() []string {
	return []string{DomainShare, SalaryHistogram, AvgSalaryByDomain, AvgSalaryByLevel, SalaryBuckets, AvgBonusByDomain}
}

// Format is an output encoding
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts png or svg, empty means png
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	}
	return "", fmt.Errorf("%w: format %q", ErrUnknown, s)
}

// ContentType for the encoded image
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

var (
	// ErrUnknown is returned for an unknown chart name or format
	ErrUnknown = errors.New("chart: unknown")
	// ErrNothingToDraw is returned when the summary has no data for the chart
	ErrNothingToDraw = errors.New("chart: nothing to draw")
)

const (
	width  = 1024
	height = 512
	barGap = 8
)

// Render draws chart name from s into w
func Render(name string, s pipeline.Summary, f Format, w io.Writer) error {
	rp := gochart.PNG
	if f == SVG {
		rp = gochart.SVG
	}

	switch name {
	case DomainShare:
		if len(s.DomainShare) == 0 {
			return ErrNothingToDraw
		}
		vals := make([]gochart.Value, 0, len(s.DomainShare))
		for _, sh := range s.DomainShare {
			vals = append(vals, gochart.Value{
				Label: fmt.Sprintf("%s (%.2f%%)", sh.Key, sh.Percent),
				Value: float64(sh.Count),
			})
		}
		pie := gochart.PieChart{Title: "Employees by domain", Width: height, Height: height, Values: vals}
		return pie.Render(rp, w)

	case SalaryHistogram:
		if len(s.Histogram) == 0 {
			return ErrNothingToDraw
		}
		vals := make([]gochart.Value, 0, len(s.Histogram))
		for _, b := range s.Histogram {
			vals = append(vals, gochart.Value{Label: fmt.Sprintf("%.1fM", salary.ToMillions(b.Lower)), Value: float64(b.Count)})
		}
		return bars("Salary distribution", vals, rp, w)

	case AvgSalaryByDomain:
		return groupBars("Average salary by domain (M)", s.SalaryByDomain, rp, w)
	case AvgSalaryByLevel:
		return groupBars("Average salary by level (M)", s.SalaryByLevel, rp, w)
	case AvgBonusByDomain:
		return groupBars("Average bonus by domain (M)", s.BonusByDomain, rp, w)

	case SalaryBuckets:
		if len(s.Buckets) == 0 {
			return ErrNothingToDraw
		}
		vals := make([]gochart.Value, 0, len(s.Buckets))
		for _, sh := range s.Buckets {
			vals = append(vals, gochart.Value{Label: sh.Key, Value: float64(sh.Count)})
		}
		return bars("Salary buckets", vals, rp, w)
	}
	return fmt.Errorf("%w: chart %q", ErrUnknown, name)
}

func groupBars(title string, gs []pipeline.Group, rp gochart.RendererProvider, w io.Writer) error {
	if len(gs) == 0 {
		return ErrNothingToDraw
	}
	vals := make([]gochart.Value, 0, len(gs))
	for _, g := range gs {
		vals = append(vals, gochart.Value{Label: g.Key, Value: salary.ToMillions(g.Mean)})
	}
	return bars(title, vals, rp, w)
}

// bars pins the y range at zero; go-chart refuses a zero-width range
func bars(title string, vals []gochart.Value, rp gochart.RendererProvider, w io.Writer) error {
	top := 0.0
	for _, v := range vals {
		top = math.Max(top, v.Value)
	}
	if top <= 0 {
		top = 1
	}
	bw := max(4, min((width-120)/len(vals)-barGap, 80))

	bc := gochart.BarChart{
		Title:      title,
		Width:      width,
		Height:     height,
		BarWidth:   bw,
		BarSpacing: barGap,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: vals,
	}
	return bc.Render(rp, w)
}
