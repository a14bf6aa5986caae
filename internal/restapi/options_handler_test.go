package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsHandler(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/options.json")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, http.StatusOK, model.Code)
	assert.Equal(t, 2, model.Version)

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok)
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok)

	countries, ok := entry["countries"].([]interface{})
	require.True(t, ok)
	require.Len(t, countries, 5)
	assert.Equal(t, map[string]interface{}{"label": "Algeria", "value": "Algeria"}, countries[0])

	metrics, ok := entry["metrics"].([]interface{})
	require.True(t, ok)
	names := make([]string, 0, len(metrics))
	for _, m := range metrics {
		names = append(names, m.(map[string]interface{})["value"].(string))
	}
	assert.Equal(t, []string{"total", "coal", "oil", "gas", "cement", "flaring", "other"}, names)

	years, ok := entry["years"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2005), years["min"])
	assert.Equal(t, float64(2022), years["max"])
	assert.Equal(t, []interface{}{float64(2005), float64(2013), float64(2021)}, years["marks"])

	defaults, ok := entry["defaults"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"Algeria", "United Kingdom"}, defaults["countries"])
	assert.Equal(t, "oil", defaults["metric"])
	assert.Equal(t, map[string]interface{}{"from": float64(2010), "to": float64(2020)}, defaults["years"])
}
