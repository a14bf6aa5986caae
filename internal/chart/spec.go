// Package chart turns a selection over the emissions table into a chart
// description and renders that description as an image or spreadsheet.
package chart

const (
	Title      = "CO2 Emissions Over Time for Selected Countries"
	XAxisTitle = "Year"
	YAxisTitle = "CO2 Emissions for Selected Type by Metric Tons"

	ModeLinesMarkers = "lines+markers"
)

// YearRange is an inclusive range of years.
type YearRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Valid reports whether From <= To.
func (r YearRange) Valid() bool { return r.From <= r.To }

// Contains reports whether year lies inside the range, bounds included.
func (r YearRange) Contains(year int) bool { return r.From <= year && year <= r.To }

// Selection is the state of the three dashboard controls.
type Selection struct {
	Countries []string  `json:"countries"`
	Metric    string    `json:"metric"`
	Years     YearRange `json:"years"`
}

type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Series is one country's line.
type Series struct {
	Name   string  `json:"name"`
	Mode   string  `json:"mode"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

type Axis struct {
	Title string `json:"title"`
}

// ChartSpec describes a line chart independently of how it is drawn.
type ChartSpec struct {
	Title  string    `json:"title"`
	Metric string    `json:"metric"`
	Years  YearRange `json:"years"`
	XAxis  Axis      `json:"xaxis"`
	YAxis  Axis      `json:"yaxis"`
	Series []Series  `json:"series"`
}

// PointCount returns the total number of points over all series.
func (s ChartSpec) PointCount() int {
	n := 0
	for _, series := range s.Series {
		n += len(series.Points)
	}
	return n
}

func newSpec(sel Selection) ChartSpec {
	return ChartSpec{
		Title:  Title,
		Metric: sel.Metric,
		Years:  sel.Years,
		XAxis:  Axis{Title: XAxisTitle},
		YAxis:  Axis{Title: YAxisTitle},
		Series: []Series{},
	}
}
