package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// wrap applies the per-route middleware: metrics, rate limiting and
// security headers.
func (api *RestAPI) wrap(route string, h http.HandlerFunc) http.Handler {
	var handler http.Handler = securityHeaders(h)
	if api.rateLimiter != nil {
		handler = api.rateLimiter.Handler(handler)
	}
	return instrument(route, handler)
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/options.json", api.wrap("options", api.optionsHandler))
	router.Handler(http.MethodGet, "/api/chart/:format", api.wrap("chart", api.chartHandler))
	router.Handler(http.MethodGet, "/healthz", instrument("health", http.HandlerFunc(api.healthHandler)))
	router.Handler(http.MethodGet, "/metrics", instrument("metrics", promhttp.Handler()))
}
