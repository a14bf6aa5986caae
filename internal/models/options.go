package models

import "co2dash.ds4003.org/internal/chart"

// Option is one entry of a dropdown.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// YearBounds describes the year range control.
type YearBounds struct {
	Min   int   `json:"min"`
	Max   int   `json:"max"`
	Marks []int `json:"marks"`
}

// OptionsModel is everything the page needs to draw its controls.
type OptionsModel struct {
	Countries []Option        `json:"countries"`
	Metrics   []Option        `json:"metrics"`
	Years     YearBounds      `json:"years"`
	Defaults  chart.Selection `json:"defaults"`
}

// NewOptions builds dropdown options whose label and value are both the name.
func NewOptions(names []string) []Option {
	options := make([]Option, 0, len(names))
	for _, name := range names {
		options = append(options, Option{Label: name, Value: name})
	}
	return options
}
