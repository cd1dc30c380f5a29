package capabilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/percentile-chart/common"
	"github.com/uyouii/percentile-chart/model"
)

func TestDefaultManifest(t *testing.T) {
	dataPoint, ok := Default.Object(DataPointObject)
	require.True(t, ok)
	fill, ok := dataPoint.Property(FillProperty)
	require.True(t, ok)
	assert.Equal(t, FillType, fill.Type)
	assert.Equal(t, DefaultFillColor, fill.Default)

	labels, ok := Default.Object(LabelsObject)
	require.True(t, ok)
	precision, ok := labels.Property(PrecisionProperty)
	require.True(t, ok)
	assert.Equal(t, IntegerType, precision.Type)
	assert.Equal(t, DefaultPrecision, precision.Default)

	_, ok = Default.Object("legend")
	assert.False(t, ok)
	assert.Len(t, Default.DataRoles, 2)
}

func TestEnumerateObjectInstances(t *testing.T) {
	instances := Default.EnumerateObjectInstances(DataPointObject, nil)
	require.Len(t, instances, 1)
	assert.Equal(t, DefaultFillColor, instances[0].Properties[FillProperty])

	settings := &model.ChartSettings{FillColor: "#ff0000", Precision: 3}
	instances = Default.EnumerateObjectInstances(LabelsObject, settings)
	require.Len(t, instances, 1)
	assert.Equal(t, 3, instances[0].Properties[PrecisionProperty])
	assert.Equal(t, "Labels", instances[0].DisplayName)

	assert.Nil(t, Default.EnumerateObjectInstances("unknown", settings))
}

func TestValidate(t *testing.T) {
	valid := []map[string]any{
		nil,
		{},
		{"dataPoint": map[string]any{"fill": "#123456"}},
		{"labels": map[string]any{"labelPrecision": -3}},
		{"labels": map[string]any{"labelPrecision": 4.0}},
		{"dataPoint": map[string]any{}, "labels": map[string]any{"labelPrecision": 2}},
		{"labels": map[string]any{"labelPrecision": MaxPrecision}},
	}
	for _, config := range valid {
		assert.NoError(t, Validate(config), "%v", config)
	}

	invalid := []map[string]any{
		{"dataPoint": map[string]any{"fill": 12}},
		{"dataPoint": map[string]any{"fill": ""}},
		{"labels": map[string]any{"labelPrecision": "two"}},
		{"labels": map[string]any{"labelPrecision": 1.5}},
		{"labels": map[string]any{"labelPrecision": MaxPrecision + 1}},
		{"labels": map[string]any{"labelPrecision": 500}},
		{"labels": map[string]any{"fontSize": 12}},
		{"legend": map[string]any{}},
	}
	for _, config := range invalid {
		assert.ErrorIs(t, Validate(config), common.ErrorInvalidConfig, "%v", config)
	}
}

func TestManifestValidateMatchesDefault(t *testing.T) {
	config := map[string]any{"labels": map[string]any{"labelPrecision": "x"}}
	assert.Error(t, Default.Validate(config))
	assert.NoError(t, Default.Validate(map[string]any{}))
}

func TestJSONSchema(t *testing.T) {
	schema := Default.JSONSchema()
	assert.Equal(t, "object", schema["type"])
	properties := schema["properties"].(map[string]any)
	assert.Contains(t, properties, DataPointObject)
	assert.Contains(t, properties, LabelsObject)

	labels := properties[LabelsObject].(map[string]any)["properties"].(map[string]any)
	precision := labels[PrecisionProperty].(map[string]any)
	assert.Equal(t, MaxPrecision, precision["maximum"])
}
