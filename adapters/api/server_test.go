package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gohaz/app"
)

func testRequestBody() map[string]interface{} {
	return map[string]interface{}{
		"sites": []map[string]float64{
			{"lon": 2.0, "lat": 45.0, "vs30": 800},
			{"lon": 2.5, "lat": 45.2, "vs30": 400},
		},
		"sources": []map[string]interface{}{
			{
				"id": "src1", "tectonic_region_type": "Stable Shallow Crust",
				"lon": 2.2, "lat": 45.1, "hypo_depth": 10.0,
				"a_value": 3.5, "b_value": 1.0,
				"min_mag": 5.0, "max_mag": 6.5, "bin_width": 0.5,
			},
		},
		"imls": map[string][]float64{
			"PGA": {0.05, 0.1, 0.2},
		},
		"gsims": map[string]string{
			"Stable Shallow Crust": "BergeThierry2003",
		},
		"time_span":        50.0,
		"truncation_level": 3.0,
	}
}

func postCalculation(t *testing.T, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	server := NewServer(app.NewCalculationService(nil, 1), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/calculations", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleRun(t *testing.T) {
	rec := postCalculation(t, testRequestBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp CalculationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "complete", string(resp.Calculation.Status))
	pga, ok := resp.Curves["PGA"]
	require.True(t, ok)
	assert.Equal(t, []float64{0.05, 0.1, 0.2}, pga.Levels)
	require.Len(t, pga.PoEs, 2)
	for _, row := range pga.PoEs {
		require.Len(t, row, 3)
		for j, v := range row {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			if j > 0 {
				assert.LessOrEqual(t, v, row[j-1])
			}
		}
	}
}

func TestHandleRunMalformedBody(t *testing.T) {
	server := NewServer(app.NewCalculationService(nil, 1), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/calculations", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRunRejectsUnknownModel(t *testing.T) {
	body := testRequestBody()
	body["gsims"] = map[string]string{"Stable Shallow Crust": "NoSuchModel"}

	rec := postCalculation(t, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRunRejectsMissingSites(t *testing.T) {
	body := testRequestBody()
	body["sites"] = []map[string]float64{}

	rec := postCalculation(t, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp["code"])
}

func TestHandleRunRejectsBadLevels(t *testing.T) {
	body := testRequestBody()
	body["imls"] = map[string][]float64{"PGA": {0.2, 0.1}}

	rec := postCalculation(t, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoredEndpointsWithoutRepository(t *testing.T) {
	server := NewServer(app.NewCalculationService(nil, 1), nil)

	for _, path := range []string{
		"/api/calculations",
		"/api/calculations/0191b6a0-0000-7000-8000-000000000000",
		"/api/calculations/0191b6a0-0000-7000-8000-000000000000/curves",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}
