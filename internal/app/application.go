package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"co2dash.ds4003.org/internal/appconf"
	"co2dash.ds4003.org/internal/chart"
	"co2dash.ds4003.org/internal/emissions"
	"co2dash.ds4003.org/internal/logging"
)

// Application holds the dependencies shared by the HTTP handlers. It is built
// once at startup and never modified afterwards.
type Application struct {
	Config  appconf.Config
	Presets appconf.Presets
	Logger  *slog.Logger
	Table   *emissions.Table
}

// New loads the dataset named by cfg and assembles the Application. Default
// selections missing from the data are logged, or rejected when
// cfg.StrictDefaults is set.
func New(cfg appconf.Config, presets appconf.Presets, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	table, err := emissions.Load(cfg.DataPath, emissions.LoadOptions{Metrics: presets.Metrics})
	if err != nil {
		return nil, fmt.Errorf("error loading dataset %s: %w", cfg.DataPath, err)
	}

	minYear, maxYear := table.YearBounds()
	logging.LogOperation(logger, "dataset_loaded",
		slog.String("source", cfg.DataPath),
		slog.Int("rows", table.Len()),
		slog.Int("countries", len(table.Countries())),
		slog.String("metrics", strings.Join(table.Metrics(), ",")),
		slog.Int("min_year", minYear),
		slog.Int("max_year", maxYear),
		slog.Duration("duration", time.Since(start)))

	if problems := appconf.ValidateDefaults(presets, table); len(problems) > 0 {
		if cfg.StrictDefaults {
			return nil, fmt.Errorf("default selection does not match dataset: %s", strings.Join(problems, "; "))
		}
		for _, p := range problems {
			logger.Warn("default selection does not match dataset",
				slog.String("problem", p),
				slog.String("component", "presets"))
		}
	}

	return &Application{
		Config:  cfg,
		Presets: presets,
		Logger:  logger,
		Table:   table,
	}, nil
}

// DefaultSelection is the selection rendered when the page first loads.
func (app *Application) DefaultSelection() chart.Selection {
	d := app.Presets.Defaults
	return chart.Selection{
		Countries: append([]string(nil), d.Countries...),
		Metric:    d.Metric,
		Years:     chart.YearRange{From: d.YearFrom, To: d.YearTo},
	}
}

// YearMarks returns the labelled years for the range control: every
// Presets.MarkStep years from the first year in the data.
func (app *Application) YearMarks() []int {
	lo, hi := app.Table.YearBounds()
	step := app.Presets.MarkStep
	if step <= 0 {
		step = 1
	}
	marks := make([]int, 0, (hi-lo)/step+1)
	for y := lo; y <= hi; y += step {
		marks = append(marks, y)
	}
	return marks
}
