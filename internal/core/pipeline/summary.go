package pipeline

import (
	"math"
	"sort"

	"payscope/internal/core/salary"
)

// Status is the outcome of one aggregate
type Status string

// Aggregate outcomes
const (
	StatusComputed Status = "computed"
	StatusNoData   Status = "no_data" // empty input, not a failure
	StatusInvalid  Status = "invalid" // the criteria could not be evaluated
)

// Display sentinels for insights that were not computed
const (
	NoData       = "no data"
	InvalidInput = "invalid input"
)

// Stat is a scalar aggregate with its outcome
type Stat struct {
	Status Status  `json:"status"`
	Value  float64 `json:"value"`
}

// Computed reports whether Value is meaningful
func (s Stat) Computed() bool { return s.Status == StatusComputed }

// Insight is a categorical aggregate such as the top paying domain
type Insight struct {
	Status Status  `json:"status"`
	Value  string  `json:"value"`
	Metric float64 `json:"metric,omitempty"` // mean salary or row count behind Value
}

// Group is one row of a grouped mean
type Group struct {
	Key   string  `json:"key"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// Share is a category count with its percentage of the subset
type Share struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Bin is one histogram bin; Upper is inclusive for the last bin only
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// KPIs are the headline numbers in millions, rounded to 2 decimals
type KPIs struct {
	Mean Stat `json:"mean_millions"`
	Min  Stat `json:"min_millions"`
	Max  Stat `json:"max_millions"`
}

// Summary is everything the dashboard renders next to the table
type Summary struct {
	RowCount        int `json:"row_count"`
	DistinctDomains int `json:"distinct_domains"`
	DistinctRoles   int `json:"distinct_roles"`

	MeanSalary Stat `json:"mean_salary"`
	MinSalary  Stat `json:"min_salary"`
	MaxSalary  Stat `json:"max_salary"`
	KPIs       KPIs `json:"kpis"`

	TopDomain      Insight `json:"top_domain"`
	MostCommonRole Insight `json:"most_common_role"`

	SalaryByDomain []Group `json:"salary_by_domain"`
	SalaryByLevel  []Group `json:"salary_by_level"`
	BonusByDomain  []Group `json:"bonus_by_domain"`

	Buckets     []Share `json:"salary_buckets"`
	DomainShare []Share `json:"domain_share"`
	Histogram   []Bin   `json:"salary_histogram"`
}

// Summarize aggregates an already filtered table
func Summarize(t Table, o Options) Summary {
	o = o.withDefaults()
	s := Summary{
		RowCount:       t.Len(),
		SalaryByDomain: []Group{},
		SalaryByLevel:  []Group{},
		BonusByDomain:  []Group{},
		Buckets:        []Share{},
		DomainShare:    []Share{},
		Histogram:      []Bin{},
	}
	if t.Len() == 0 {
		s.MeanSalary, s.MinSalary, s.MaxSalary = noData(), noData(), noData()
		s.KPIs = KPIs{Mean: noData(), Min: noData(), Max: noData()}
		s.TopDomain = Insight{Status: StatusNoData, Value: NoData}
		s.MostCommonRole = Insight{Status: StatusNoData, Value: NoData}
		return s
	}

	var sum float64
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range t.All() {
		sum += r.Salary
		lo = math.Min(lo, r.Salary)
		hi = math.Max(hi, r.Salary)
	}
	mean := sum / float64(t.Len())
	s.MeanSalary, s.MinSalary, s.MaxSalary = computed(mean), computed(lo), computed(hi)
	s.KPIs = KPIs{
		Mean: computed(salary.ToMillions(mean)),
		Min:  computed(salary.ToMillions(lo)),
		Max:  computed(salary.ToMillions(hi)),
	}

	domains := countBy(t, func(r Record) string { return r.Domain })
	roles := countBy(t, func(r Record) string { return r.Role })
	s.DistinctDomains, s.DistinctRoles = len(domains), len(roles)

	s.SalaryByDomain = groupMean(t, func(r Record) string { return r.Domain }, salaryOf)
	s.SalaryByLevel = groupMean(t, func(r Record) string { return r.Level }, salaryOf)
	s.BonusByDomain = groupMean(t, func(r Record) string { return r.Domain }, bonusOf)

	top := s.SalaryByDomain[0]
	s.TopDomain = Insight{Status: StatusComputed, Value: top.Key, Metric: top.Mean}

	common := TopRoles(t, 1)[0]
	s.MostCommonRole = Insight{Status: StatusComputed, Value: common, Metric: float64(roles[common])}

	s.Buckets = bucketShares(t, o.Buckets)
	s.DomainShare = shares(domains, t.Len())
	s.Histogram = histogram(t, o.HistogramBins, lo, hi)
	return s
}

func computed(v float64) Stat { return Stat{Status: StatusComputed, Value: v} }
func noData() Stat            { return Stat{Status: StatusNoData} }

func invalidSummary() Summary {
	bad := Stat{Status: StatusInvalid}
	return Summary{
		MeanSalary: bad, MinSalary: bad, MaxSalary: bad,
		KPIs:           KPIs{Mean: bad, Min: bad, Max: bad},
		TopDomain:      Insight{Status: StatusInvalid, Value: InvalidInput},
		MostCommonRole: Insight{Status: StatusInvalid, Value: InvalidInput},
		SalaryByDomain: []Group{},
		SalaryByLevel:  []Group{},
		BonusByDomain:  []Group{},
		Buckets:        []Share{},
		DomainShare:    []Share{},
		Histogram:      []Bin{},
	}
}

func salaryOf(r Record) (float64, bool) { return r.Salary, true }

func bonusOf(r Record) (float64, bool) {
	if r.Bonus == nil {
		return 0, false
	}
	return *r.Bonus, true
}

// groupMean averages val per key, skipping rows val rejects; sorted by mean desc then key
func groupMean(t Table, key func(Record) string, val func(Record) (float64, bool)) []Group {
	type acc struct {
		sum float64
		n   int
	}
	accs := map[string]*acc{}
	for _, r := range t.All() {
		v, ok := val(r)
		if !ok {
			continue
		}
		k := key(r)
		a := accs[k]
		if a == nil {
			a = &acc{}
			accs[k] = a
		}
		a.sum += v
		a.n++
	}
	out := make([]Group, 0, len(accs))
	for k, a := range accs {
		out = append(out, Group{Key: k, Mean: a.sum / float64(a.n), Count: a.n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// bucketShares counts rows per salary category, ascending by count then bucket order
// categories without rows are left out
func bucketShares(t Table, b Buckets) []Share {
	counts := make([]int, len(b))
	for _, r := range t.All() {
		counts[b.index(r.Salary)]++
	}
	type ranked struct {
		Share
		order int
	}
	var rs []ranked
	for i, n := range counts {
		if n == 0 {
			continue
		}
		rs = append(rs, ranked{Share: Share{Key: b[i].Label, Count: n, Percent: percent(n, t.Len())}, order: i})
	}
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Count != rs[j].Count {
			return rs[i].Count < rs[j].Count
		}
		return rs[i].order < rs[j].order
	})
	out := make([]Share, len(rs))
	for i, r := range rs {
		out[i] = r.Share
	}
	return out
}

// shares turns counts into percentages, largest first then key
func shares(counts map[string]int, total int) []Share {
	out := make([]Share, 0, len(counts))
	for k, n := range counts {
		out = append(out, Share{Key: k, Count: n, Percent: percent(n, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func percent(n, total int) float64 {
	return math.Round(float64(n)*10000/float64(total)) / 100
}

// histogram splits [lo, hi] into bins equal-width bins; a zero-width range is one bin
func histogram(t Table, bins int, lo, hi float64) []Bin {
	if hi == lo {
		return []Bin{{Lower: lo, Upper: hi, Count: t.Len()}}
	}
	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Lower: lo + float64(i)*width, Upper: lo + float64(i+1)*width}
	}
	out[bins-1].Upper = hi
	for _, r := range t.All() {
		i := int((r.Salary - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}
