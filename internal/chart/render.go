package chart

import (
	"sort"

	"co2dash.ds4003.org/internal/emissions"
)

// Render filters table by sel and returns the chart description. It has no
// side effects; identical inputs give identical output.
//
// No series are produced when the country set is empty, the metric is not a
// table column, or no row of the table has a year inside the range. Every
// selected country present in the table otherwise gets a series, possibly
// with no points. Missing measurements are left out of a series.
func Render(table *emissions.Table, sel Selection) ChartSpec {
	spec := newSpec(sel)
	if table == nil || len(sel.Countries) == 0 || !table.HasMetric(sel.Metric) {
		return spec
	}
	if !table.HasYearBetween(sel.Years.From, sel.Years.To) {
		return spec
	}

	names := selectedCountries(table, sel.Countries)
	if len(names) == 0 {
		return spec
	}

	position := make(map[string]int, len(names))
	for i, name := range names {
		position[name] = i
		spec.Series = append(spec.Series, Series{
			Name:   name,
			Mode:   ModeLinesMarkers,
			Color:  Color(i),
			Points: []Point{},
		})
	}

	table.Each(func(row emissions.Row) {
		i, ok := position[row.Country]
		if !ok || !sel.Years.Contains(row.Year) {
			return
		}
		value, ok := row.Value(sel.Metric)
		if !ok {
			return
		}
		spec.Series[i].Points = append(spec.Series[i].Points, Point{Year: row.Year, Value: value})
	})

	for i := range spec.Series {
		points := spec.Series[i].Points
		sort.SliceStable(points, func(a, b int) bool { return points[a].Year < points[b].Year })
	}

	return spec
}

// selectedCountries dedupes the requested countries, drops those absent from
// the table and orders the rest by first appearance in the table.
func selectedCountries(table *emissions.Table, requested []string) []string {
	seen := make(map[string]struct{}, len(requested))
	names := make([]string, 0, len(requested))
	for _, c := range requested {
		if _, dup := seen[c]; dup || !table.HasCountry(c) {
			continue
		}
		seen[c] = struct{}{}
		names = append(names, c)
	}
	sort.Slice(names, func(a, b int) bool {
		return table.CountryIndex(names[a]) < table.CountryIndex(names[b])
	})
	return names
}
