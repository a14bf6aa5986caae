package appconf

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"co2dash.ds4003.org/internal/emissions"
)

// Presets is the presentation side of the dashboard: page copy, stylesheets
// and the selection shown before the user touches a control.
type Presets struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Stylesheets []string `yaml:"stylesheets"`
	// Metrics restricts the metric columns loaded from the dataset.
	Metrics  []string `yaml:"metrics"`
	MarkStep int      `yaml:"mark_step"`
	Defaults Defaults `yaml:"defaults"`
}

type Defaults struct {
	Countries []string `yaml:"countries"`
	Metric    string   `yaml:"metric"`
	YearFrom  int      `yaml:"year_from"`
	YearTo    int      `yaml:"year_to"`
}

const description = "This dashboard is meant to be a way to track carbon dioxide (CO2) by country by its primary ways of being released into the atmosphere via fossil fuels over a period of time from 1990 to 2022. " +
	"Carbon dioxide is a greenhouse gas that traps heat in the earth's atmosphere contributing to global warming and climate change. " +
	"With carbon dioxide concentrations increasing rapidly and the temperature alarmingly rising, it is important to understand who and what the most significant contributors are. " +
	"The data was published by researchers from the Center for International Climate Research (CICERO) using the 2023 release of the Global Carbon Project (GCP) fossil emissions dataset."

// DefaultPresets returns the stock dashboard configuration.
func DefaultPresets() Presets {
	return Presets{
		Title:       "Countries' Carbon Dioxide (CO2) Emissions from 1990 - 2022 by Metric Tons",
		Description: description,
		Stylesheets: []string{"https://codepen.io/chriddyp/pen/bWLwgP.css"},
		MarkStep:    8,
		Defaults: Defaults{
			Countries: []string{"Algeria", "United Kingdom"},
			Metric:    "oil",
			YearFrom:  2010,
			YearTo:    2020,
		},
	}
}

// LoadPresets overlays the YAML file at path on DefaultPresets. An empty path
// returns the defaults.
func LoadPresets(path string) (Presets, error) {
	presets := DefaultPresets()
	if path == "" {
		return presets, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return presets, fmt.Errorf("error reading presets file: %w", err)
	}
	if err := yaml.Unmarshal(b, &presets); err != nil {
		return presets, fmt.Errorf("error parsing presets file: %w", err)
	}
	if err := presets.Validate(); err != nil {
		return presets, fmt.Errorf("invalid presets file %s: %w", path, err)
	}
	return presets, nil
}

// Validate checks presets for internal consistency, independent of any data.
func (p Presets) Validate() error {
	var errs []error
	if p.MarkStep <= 0 {
		errs = append(errs, errors.New("mark_step must be positive"))
	}
	if p.Defaults.Metric == "" {
		errs = append(errs, errors.New("defaults.metric is required"))
	}
	if p.Defaults.YearFrom > p.Defaults.YearTo {
		errs = append(errs, fmt.Errorf("defaults.year_from %d is after defaults.year_to %d", p.Defaults.YearFrom, p.Defaults.YearTo))
	}
	return errors.Join(errs...)
}

// ValidateDefaults lists the default selections that the table cannot
// satisfy. An empty result means every default is present in the data.
// Presets.Metrics is not checked here; loading already rejects a table
// without one of those columns.
func ValidateDefaults(p Presets, table *emissions.Table) []string {
	var problems []string
	for _, c := range p.Defaults.Countries {
		if !table.HasCountry(c) {
			problems = append(problems, fmt.Sprintf("default country %q not in dataset", c))
		}
	}
	if !table.HasMetric(p.Defaults.Metric) {
		problems = append(problems, fmt.Sprintf("default metric %q not in dataset (have %v)", p.Defaults.Metric, table.Metrics()))
	}
	lo, hi := table.YearBounds()
	if p.Defaults.YearFrom < lo || p.Defaults.YearTo > hi {
		problems = append(problems, fmt.Sprintf("default years %d-%d outside dataset years %d-%d", p.Defaults.YearFrom, p.Defaults.YearTo, lo, hi))
	}
	return problems
}
