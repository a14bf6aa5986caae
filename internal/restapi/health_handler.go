package restapi

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	setJSONResponseType(&w)
	if err := json.NewEncoder(w).Encode(healthResponse{Status: "ok", Rows: api.Table.Len()}); err != nil {
		api.serverErrorResponse(w, r, err)
	}
}
