package pipeline

import "sort"

// Defaults for Options
const (
	DefaultHighSalaryThreshold = 2_000_000
	DefaultTopN                = 5
	DefaultHistogramBins       = 20
)

// Bucket is a salary category; Min is the inclusive lower bound in rupees
type Bucket struct {
	Label string  `json:"label" yaml:"label"`
	Min   float64 `json:"min" yaml:"min"`
}

// Buckets is a bucket table sorted by Min; the first bucket also takes
// everything below its Min and the last one is open ended
type Buckets []Bucket

// DefaultBuckets are Low < 1M <= Medium < 2M <= High < 3.5M <= Very High
func DefaultBuckets() Buckets {
	return Buckets{
		{Label: "Low", Min: 0},
		{Label: "Medium", Min: 1_000_000},
		{Label: "High", Min: 2_000_000},
		{Label: "Very High", Min: 3_500_000},
	}
}

// Sorted returns a copy ordered by Min
func (b Buckets) Sorted() Buckets {
	out := append(Buckets(nil), b...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Min < out[j].Min })
	return out
}

// Category returns the label of the bucket salary falls in, "" for an empty table
func (b Buckets) Category(salary float64) string {
	if len(b) == 0 {
		return ""
	}
	label := b[0].Label
	for _, bk := range b {
		if salary >= bk.Min {
			label = bk.Label
		}
	}
	return label
}

func (b Buckets) index(salary float64) int {
	idx := 0
	for i, bk := range b {
		if salary >= bk.Min {
			idx = i
		}
	}
	return idx
}

// Options are the fixed parameters of a pipeline run
type Options struct {
	HighSalaryThreshold *float64 // nil means DefaultHighSalaryThreshold; zero keeps every positive salary
	TopN                int
	HistogramBins       int
	Buckets             Buckets
}

// DefaultOptions returns the stock thresholds and bucket table
func DefaultOptions() Options {
	return Options{
		HighSalaryThreshold: Float(DefaultHighSalaryThreshold),
		TopN:                DefaultTopN,
		HistogramBins:       DefaultHistogramBins,
		Buckets:             DefaultBuckets(),
	}
}

// withDefaults fills unset fields; negative values are left for Validate
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.HighSalaryThreshold == nil {
		o.HighSalaryThreshold = d.HighSalaryThreshold
	}
	if o.TopN == 0 {
		o.TopN = d.TopN
	}
	if o.HistogramBins == 0 {
		o.HistogramBins = d.HistogramBins
	}
	if len(o.Buckets) == 0 {
		o.Buckets = d.Buckets
	} else {
		o.Buckets = o.Buckets.Sorted()
	}
	return o
}
