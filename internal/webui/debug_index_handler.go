package webui

import (
	"bytes"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"co2dash.ds4003.org/internal/logging"
)

const debugRowLimit = 200

type debugData struct {
	Title string
	Pre   string
}

type datasetSummary struct {
	Source    string
	Rows      int
	Countries int
	Metrics   []string
	MinYear   int
	MaxYear   int
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	dataStruct := debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	}

	var buf bytes.Buffer
	if err := webUI.debug.Execute(&buf, dataStruct); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	logging.SetRoute(r.Context(), "debug")
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	table := webUI.Table

	switch dataType {
	case "summary":
		minYear, maxYear := table.YearBounds()
		data = datasetSummary{
			Source:    table.Source(),
			Rows:      table.Len(),
			Countries: len(table.Countries()),
			Metrics:   table.Metrics(),
			MinYear:   minYear,
			MaxYear:   maxYear,
		}
		title = "Dataset - Summary"
	case "countries":
		data = table.Countries()
		title = "Dataset - Countries"
	case "metrics":
		data = table.Metrics()
		title = "Dataset - Metrics"
	case "rows":
		rows := table.Rows()
		if len(rows) > debugRowLimit {
			rows = rows[:debugRowLimit]
		}
		data = rows
		title = "Dataset - Rows"
	case "presets":
		data = webUI.Presets
		title = "Presets"
	default:
		data = map[string]string{
			"error": "Please use one of the following: summary, countries, metrics, rows, presets.",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, title, data)
}
