// Package webui serves the dashboard page and, in debug mode, a dump of the
// loaded data.
package webui

import (
	"embed"
	"fmt"
	"html/template"

	"co2dash.ds4003.org/internal/app"
)

//go:embed templates/*.html
var templateFS embed.FS

type WebUI struct {
	*app.Application
	index *template.Template
	debug *template.Template
}

// NewWebUI parses the embedded templates.
func NewWebUI(application *app.Application) (*WebUI, error) {
	index, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing index template: %w", err)
	}
	debug, err := template.ParseFS(templateFS, "templates/debug_index.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing debug template: %w", err)
	}
	return &WebUI{Application: application, index: index, debug: debug}, nil
}
