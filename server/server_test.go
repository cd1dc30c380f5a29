package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/percentile-chart/viewmodel"
)

func post(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	New(nil).ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	New(nil).ServeHTTP(rec, req)
	return rec
}

const chartBody = `{
	"dataset": {
		"category": {"displayName": "Region", "values": ["eu", "us", "ap"]},
		"values": {"displayName": "Latency", "values": [13, 42, 77]}
	},
	"config": {"dataPoint": {"fill": "#ff0000"}, "labels": {"labelPrecision": 1}}
}`

func TestRender(t *testing.T) {
	rec := post(t, "/render?width=800&height=500", chartBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, `width="800"`)
	assert.Contains(t, body, "stroke:#ff0000")
	assert.Contains(t, body, "Latency per Region")
}

func TestRenderDegraded(t *testing.T) {
	rec := post(t, "/render", `{"dataset": {"values": {"values": ["a", "b"]}}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), viewmodel.InvalidDataLegend)
}

func TestRenderBadRequests(t *testing.T) {
	rec := post(t, "/render", `{"dataset": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, "/render", `{"config": {"labels": {"labelPrecision": "x"}}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = post(t, "/render?width=-1", chartBody)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestViewModel(t *testing.T) {
	rec := post(t, "/viewmodel", chartBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Points   []map[string]float64 `json:"points"`
		Settings map[string]any       `json:"settings"`
		XDomain  map[string]float64   `json:"xDomain"`
		Legends  []map[string]string  `json:"legends"`
		Labels   []string             `json:"labels"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Points, 101)
	assert.Len(t, resp.Labels, 101)
	assert.Equal(t, "77.0", resp.Labels[100])
	assert.Equal(t, 10.0, resp.XDomain["min"])
	assert.Equal(t, 80.0, resp.XDomain["max"])
	assert.Equal(t, "#ff0000", resp.Settings["fillColor"])
	require.Len(t, resp.Legends, 2)
	assert.Equal(t, "x", resp.Legends[0]["axis"])
}

func TestViewModelDegraded(t *testing.T) {
	rec := post(t, "/viewmodel", `{"dataset": {"values": {"values": []}}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp["points"])
	assert.Nil(t, resp["settings"])
	assert.Len(t, resp["legends"], 1)
}

func TestCapabilities(t *testing.T) {
	rec := get(t, "/capabilities")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "labelPrecision")

	rec = get(t, "/capabilities/schema")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"additionalProperties":false`)

	rec = get(t, "/capabilities/objects/dataPoint")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "#01B8AA")

	rec = get(t, "/capabilities/objects/legend")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}
