package restapi

import (
	"bytes"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"co2dash.ds4003.org/internal/chart"
	"co2dash.ds4003.org/internal/logging"
	"co2dash.ds4003.org/internal/models"
	"co2dash.ds4003.org/internal/utils"
)

const (
	minImageSide = 200
	maxImageSide = 2400

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// selectionFromRequest reads country, metric, from and to from the query,
// falling back to the default selection for parameters that are absent.
// Names that fail validation are dropped and so render as unknown.
func (api *RestAPI) selectionFromRequest(r *http.Request) (chart.Selection, map[string][]string) {
	query := r.URL.Query()
	sel := api.DefaultSelection()
	fieldErrors := make(map[string][]string)

	if countries, present := utils.ParseListParam(query, "country"); present {
		sel.Countries = make([]string, 0, len(countries))
		for _, c := range countries {
			c = utils.SanitizeInput(c)
			if utils.ValidateName(c) != nil {
				continue
			}
			sel.Countries = append(sel.Countries, c)
		}
	}

	if _, present := query["metric"]; present {
		metric := utils.SanitizeInput(query.Get("metric"))
		if utils.ValidateName(metric) != nil {
			metric = ""
		}
		sel.Metric = metric
	}

	for _, bound := range []struct {
		key    string
		target *int
	}{
		{"from", &sel.Years.From},
		{"to", &sel.Years.To},
	} {
		year, err := utils.ParseIntParam(query, bound.key, *bound.target)
		if err != nil {
			fieldErrors[bound.key] = append(fieldErrors[bound.key], "must be an integer")
			continue
		}
		if err := utils.ValidateYear(year); err != nil {
			fieldErrors[bound.key] = append(fieldErrors[bound.key], err.Error())
			continue
		}
		*bound.target = year
	}

	return sel, fieldErrors
}

func (api *RestAPI) chartHandler(w http.ResponseWriter, r *http.Request) {
	format := utils.ExtractParam(r, "format")
	switch format {
	case "json", "png", "svg", "xlsx":
	default:
		api.sendNotFound(w, r)
		return
	}

	sel, fieldErrors := api.selectionFromRequest(r)
	if len(fieldErrors) > 0 {
		if format == "json" {
			api.validationErrorResponse(w, r, fieldErrors)
			return
		}
		// images and exports are fetched by the page itself, so a bad year
		// draws an empty chart rather than a broken one
		logging.FromContext(r.Context()).Debug("invalid chart years",
			slog.Any("field_errors", fieldErrors),
			slog.String("format", format),
			slog.String("component", "chart"))
		sel.Countries = nil
	}

	spec := chart.Render(api.Table, sel)
	chartRenders.WithLabelValues(format).Inc()
	chartPoints.Observe(float64(spec.PointCount()))

	logging.FromContext(r.Context()).Debug("chart rendered",
		slog.String("format", format),
		slog.Any("countries", sel.Countries),
		slog.String("metric", sel.Metric),
		slog.Int("from", sel.Years.From),
		slog.Int("to", sel.Years.To),
		slog.Int("series", len(spec.Series)),
		slog.Int("points", spec.PointCount()),
		slog.String("component", "chart"))

	switch format {
	case "json":
		api.sendResponse(w, r, models.NewEntryResponse(spec))
	case "xlsx":
		api.sendSpreadsheet(w, r, spec)
	default:
		api.sendImage(w, r, spec, format)
	}
}

func (api *RestAPI) sendImage(w http.ResponseWriter, r *http.Request, spec chart.ChartSpec, format string) {
	imageFormat, err := chart.ParseImageFormat(format)
	if err != nil {
		api.sendNotFound(w, r)
		return
	}

	query := r.URL.Query()
	opts := chart.DefaultImageOptions()
	opts.Format = imageFormat
	opts.Width = imageSide(query.Get("width"), opts.Width)
	opts.Height = imageSide(query.Get("height"), opts.Height)

	// rendered into a buffer so a failure can still produce the error envelope
	var buf bytes.Buffer
	if err := chart.WriteImage(&buf, spec, opts); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", imageFormat.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (api *RestAPI) sendSpreadsheet(w http.ResponseWriter, r *http.Request, spec chart.ChartSpec) {
	var buf bytes.Buffer
	if err := chart.WriteXLSX(&buf, spec); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	metric := spec.Metric
	if metric == "" {
		metric = "none"
	}
	filename := fmt.Sprintf("co2-emissions-%s-%d-%d.xlsx", metric, spec.Years.From, spec.Years.To)

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// imageSide parses a width or height parameter, clamping it to a sane
// range. Missing or malformed values give fallback.
func imageSide(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return min(max(n, minImageSide), maxImageSide)
}
