package restapi

import (
	"net/http"

	"co2dash.ds4003.org/internal/models"
)

func (api *RestAPI) optionsHandler(w http.ResponseWriter, r *http.Request) {
	minYear, maxYear := api.Table.YearBounds()

	options := models.OptionsModel{
		Countries: models.NewOptions(api.Table.Countries()),
		Metrics:   models.NewOptions(api.Table.Metrics()),
		Years: models.YearBounds{
			Min:   minYear,
			Max:   maxYear,
			Marks: api.YearMarks(),
		},
		Defaults: api.DefaultSelection(),
	}

	api.sendResponse(w, r, models.NewEntryResponse(options))
}
