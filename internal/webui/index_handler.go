package webui

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"co2dash.ds4003.org/internal/chart"
	"co2dash.ds4003.org/internal/logging"
)

type choice struct {
	Name     string
	Selected bool
}

type indexData struct {
	Title       string
	Description string
	Stylesheets []string
	Countries   []choice
	Metrics     []choice
	MinYear     int
	MaxYear     int
	Marks       []int
	From        int
	To          int
	ImageURL    string
	ExportURL   string
}

// chartURL is the API address of the chart for sel in the given format.
// An empty country list is kept as "country=" so it is not replaced by the
// defaults.
func chartURL(format string, sel chart.Selection) string {
	query := url.Values{}
	countries := sel.Countries
	if len(countries) == 0 {
		countries = []string{""}
	}
	query["country"] = countries
	query.Set("metric", sel.Metric)
	query.Set("from", strconv.Itoa(sel.Years.From))
	query.Set("to", strconv.Itoa(sel.Years.To))
	return "/api/chart/" + format + "?" + query.Encode()
}

func choices(names []string, selected []string) []choice {
	out := make([]choice, 0, len(names))
	for _, name := range names {
		out = append(out, choice{Name: name, Selected: slices.Contains(selected, name)})
	}
	return out
}

func (webUI *WebUI) indexData() indexData {
	sel := webUI.DefaultSelection()
	minYear, maxYear := webUI.Table.YearBounds()

	return indexData{
		Title:       webUI.Presets.Title,
		Description: webUI.Presets.Description,
		Stylesheets: webUI.Presets.Stylesheets,
		Countries:   choices(webUI.Table.Countries(), sel.Countries),
		Metrics:     choices(webUI.Table.Metrics(), []string{sel.Metric}),
		MinYear:     minYear,
		MaxYear:     maxYear,
		Marks:       webUI.YearMarks(),
		From:        sel.Years.From,
		To:          sel.Years.To,
		ImageURL:    chartURL("png", sel),
		ExportURL:   chartURL("xlsx", sel),
	}
}

func (webUI *WebUI) indexHandler(w http.ResponseWriter, r *http.Request) {
	logging.SetRoute(r.Context(), "index")
	var buf bytes.Buffer
	if err := webUI.index.Execute(&buf, webUI.indexData()); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to render index page", err,
			slog.String("component", "webui"))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
