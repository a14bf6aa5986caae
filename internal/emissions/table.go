// Package emissions holds the in-memory emissions table and its loaders.
package emissions

import (
	"fmt"
	"slices"
)

// Row is one (country, year) observation. A metric absent from Values is a
// missing measurement, which is different from a measured zero.
type Row struct {
	Country string
	Year    int
	Values  map[string]float64
}

// Value returns the row's measurement for metric and whether it was present.
func (r Row) Value(metric string) (float64, bool) {
	v, ok := r.Values[metric]
	return v, ok
}

// Table is the immutable emissions dataset. It is built once at startup and
// shared read-only between request handlers.
type Table struct {
	source     string
	rows       []Row
	metrics    []string
	metricSet  map[string]struct{}
	countries  []string
	countrySet map[string]int
	years      []int
	minYear    int
	maxYear    int
}

// NewTable builds a Table from rows and the ordered metric column names.
func NewTable(source string, metrics []string, rows []Row) (*Table, error) {
	if len(metrics) == 0 {
		return nil, ErrNoMetrics
	}
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	t := &Table{
		source:     source,
		rows:       make([]Row, len(rows)),
		metrics:    slices.Clone(metrics),
		metricSet:  make(map[string]struct{}, len(metrics)),
		countrySet: make(map[string]int),
		minYear:    rows[0].Year,
		maxYear:    rows[0].Year,
	}
	for _, m := range metrics {
		if _, dup := t.metricSet[m]; dup {
			return nil, fmt.Errorf("duplicate metric column %q", m)
		}
		t.metricSet[m] = struct{}{}
	}

	seenYears := make(map[int]struct{})
	for i, row := range rows {
		if row.Country == "" {
			return nil, fmt.Errorf("%w: row %d", ErrInvalidCountry, i+1)
		}
		values := make(map[string]float64, len(row.Values))
		for k, v := range row.Values {
			if _, ok := t.metricSet[k]; ok {
				values[k] = v
			}
		}
		t.rows[i] = Row{Country: row.Country, Year: row.Year, Values: values}

		if _, seen := t.countrySet[row.Country]; !seen {
			t.countrySet[row.Country] = len(t.countries)
			t.countries = append(t.countries, row.Country)
		}
		if _, seen := seenYears[row.Year]; !seen {
			seenYears[row.Year] = struct{}{}
			t.years = append(t.years, row.Year)
		}
		t.minYear = min(t.minYear, row.Year)
		t.maxYear = max(t.maxYear, row.Year)
	}
	slices.Sort(t.years)

	return t, nil
}

// Source is the path or label the table was loaded from.
func (t *Table) Source() string { return t.source }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns the rows in load order. The slice is a copy; the Values maps
// are shared and must not be modified.
func (t *Table) Rows() []Row { return slices.Clone(t.rows) }

// Each calls fn for every row in load order without copying the row slice.
func (t *Table) Each(fn func(Row)) {
	for _, r := range t.rows {
		fn(r)
	}
}

// Metrics returns the metric column names in header order.
func (t *Table) Metrics() []string { return slices.Clone(t.metrics) }

// Countries returns the distinct countries in order of first appearance.
func (t *Table) Countries() []string { return slices.Clone(t.countries) }

// CountryIndex returns the first-appearance position of country, or -1.
func (t *Table) CountryIndex(country string) int {
	if i, ok := t.countrySet[country]; ok {
		return i
	}
	return -1
}

func (t *Table) HasCountry(country string) bool {
	_, ok := t.countrySet[country]
	return ok
}

func (t *Table) HasMetric(metric string) bool {
	_, ok := t.metricSet[metric]
	return ok
}

// HasYearBetween reports whether any row has a year in [from, to].
func (t *Table) HasYearBetween(from, to int) bool {
	if from > to {
		return false
	}
	i, _ := slices.BinarySearch(t.years, from)
	return i < len(t.years) && t.years[i] <= to
}

// YearBounds returns the smallest and largest year present.
func (t *Table) YearBounds() (int, int) { return t.minYear, t.maxYear }
