// Package repo reads the employee table from Postgres or ClickHouse
package repo

import (
	"fmt"
	"slices"

	"payscope/internal/services/dataset/domain"
)

// selectList returns one text expression per RawRow field; columns the
// table lacks come back as empty strings, quote renders an identifier
func selectList(spec domain.ColumnSpec, have []string, quote func(string) string, text func(string) string) ([]string, error) {
	for _, c := range domain.LabelColumns {
		if !slices.Contains(have, c) {
			return nil, fmt.Errorf("%w: %s has no %q column", domain.ErrDataUnavailable, spec.Table, c)
		}
	}
	col := func(name string) string {
		if name == "" || !slices.Contains(have, name) {
			return "''"
		}
		return text(quote(name))
	}
	if col(spec.Salary) == "''" && col(spec.Fallback) == "''" {
		return nil, fmt.Errorf("%w: %s has neither %q nor %q", domain.ErrDataUnavailable, spec.Table, spec.Salary, spec.Fallback)
	}
	return []string{
		col("domain"), col("role"), col("level"), col("mode"), col("year"),
		col(spec.Salary), col(spec.Fallback), col("bonus"),
	}, nil
}

func scanRaw(r interface{ Scan(...any) error }) (domain.RawRow, error) {
	var x domain.RawRow
	err := r.Scan(&x.Domain, &x.Role, &x.Level, &x.Mode, &x.Year, &x.Salary, &x.Fallback, &x.Bonus)
	return x, err
}
