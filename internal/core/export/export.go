// Package export writes and reads the filtered employee CSV
//
// Format: UTF-8, comma separated, LF line endings, header
// domain,role,level,mode,year,salary,bonus,salary_category. Numbers use the
// shortest form that round-trips, a missing bonus is an empty field.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"payscope/internal/core/pipeline"
)

// FileName is the download name of the artifact
const FileName = "filtered_employees.csv"

// ContentType of the artifact
const ContentType = "text/csv; charset=utf-8"

// Header is the exported column order
var Header = []string{"domain", "role", "level", "mode", "year", "salary", "bonus", "salary_category"}

// ErrMalformed wraps every Read failure
var ErrMalformed = errors.New("export: malformed csv")

// Write encodes t; the same table always produces the same bytes
func Write(w io.Writer, t pipeline.Table, b pipeline.Buckets) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	rec := make([]string, len(Header))
	for _, r := range t.All() {
		rec[0], rec[1], rec[2], rec[3] = r.Domain, r.Role, r.Level, r.Mode
		rec[4] = ""
		if r.HasYear() {
			rec[4] = strconv.Itoa(r.Year)
		}
		rec[5] = formatFloat(r.Salary)
		rec[6] = ""
		if r.Bonus != nil {
			rec[6] = formatFloat(*r.Bonus)
		}
		rec[7] = b.Category(r.Salary)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read parses a file produced by Write back into a Table; salary_category is ignored
func Read(r io.Reader) (pipeline.Table, error) {
	sheet, err := ReadSheet(r)
	if err != nil {
		return pipeline.Table{}, err
	}
	col := map[string]int{}
	for i, h := range sheet.Header {
		col[h] = i
	}
	for _, h := range Header[:7] {
		if _, ok := col[h]; !ok {
			return pipeline.Table{}, fmt.Errorf("%w: missing column %q", ErrMalformed, h)
		}
	}

	rows := make([]pipeline.Record, 0, len(sheet.Rows))
	for n, raw := range sheet.Rows {
		line := n + 2
		year := pipeline.NoYear
		if s := raw[col["year"]]; s != "" {
			if year, err = strconv.Atoi(s); err != nil || year == pipeline.NoYear {
				return pipeline.Table{}, fmt.Errorf("%w: line %d: year %q", ErrMalformed, line, s)
			}
		}
		sal, err := strconv.ParseFloat(raw[col["salary"]], 64)
		if err != nil {
			return pipeline.Table{}, fmt.Errorf("%w: line %d: salary %q", ErrMalformed, line, raw[col["salary"]])
		}
		rec := pipeline.Record{
			Domain: raw[col["domain"]],
			Role:   raw[col["role"]],
			Level:  raw[col["level"]],
			Mode:   raw[col["mode"]],
			Year:   year,
			Salary: sal,
		}
		if s := raw[col["bonus"]]; s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return pipeline.Table{}, fmt.Errorf("%w: line %d: bonus %q", ErrMalformed, line, s)
			}
			rec.Bonus = &v
		}
		rows = append(rows, rec)
	}
	return pipeline.NewTable(rows), nil
}

// Sheet is a CSV file as text: a normalized header and rows of equal width
type Sheet struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of name in the header, or -1
func (s Sheet) Column(name string) int {
	for i, h := range s.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// ReadSheet reads any CSV with a header row; header names are trimmed and
// lowercased and a UTF-8 BOM is dropped
func ReadSheet(r io.Reader) (Sheet, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false
	head, err := cr.Read()
	if err == io.EOF {
		return Sheet{}, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	if err != nil {
		return Sheet{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for i, h := range head {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		head[i] = strings.ToLower(strings.TrimSpace(h))
	}
	s := Sheet{Header: head}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Sheet{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		s.Rows = append(s.Rows, rec)
	}
	return s, nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
