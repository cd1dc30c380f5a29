package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/percentile-chart/common"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "chart.yaml", `
dataPoint:
  fill: "#ff8800"
labels:
  labelPrecision: -3
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.DataPoint.Fill)
	assert.Equal(t, "#ff8800", *cfg.DataPoint.Fill)
	require.NotNil(t, cfg.Labels.LabelPrecision)
	assert.Equal(t, -3, *cfg.Labels.LabelPrecision)
}

func TestLoadJSONPartial(t *testing.T) {
	path := writeFile(t, "chart.json", `{"labels": {"labelPrecision": 4}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.DataPoint.Fill)
	require.NotNil(t, cfg.Labels.LabelPrecision)
	assert.Equal(t, 4, *cfg.Labels.LabelPrecision)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "chart.toml", "[dataPoint]\nfill = \"#000000\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.DataPoint.Fill)
	assert.Equal(t, "#000000", *cfg.DataPoint.Fill)
	assert.Nil(t, cfg.Labels.LabelPrecision)
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	path := writeFile(t, "chart.yaml", "labels:\n  labelPrecision: two\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, common.ErrorInvalidConfig)

	path = writeFile(t, "chart.yaml", "legend:\n  show: true\n")
	_, err = Load(path)
	assert.ErrorIs(t, err, common.ErrorInvalidConfig)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "chart.ini", "x=1")
	_, err := Load(path)
	assert.ErrorIs(t, err, common.ErrorUnsupportedFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFromMap(t *testing.T) {
	cfg, err := FromMap(nil)
	require.NoError(t, err)
	assert.Nil(t, cfg.DataPoint.Fill)
	assert.Nil(t, cfg.Labels.LabelPrecision)

	cfg, err = FromMap(map[string]any{
		"dataPoint": map[string]any{"fill": "#abcdef"},
		"labels":    map[string]any{"labelPrecision": 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "#abcdef", *cfg.DataPoint.Fill)
	assert.Equal(t, 2, *cfg.Labels.LabelPrecision)

	_, err = FromMap(map[string]any{"dataPoint": map[string]any{"fill": 3}})
	assert.ErrorIs(t, err, common.ErrorInvalidConfig)
}

func TestFromMapDottedKeys(t *testing.T) {
	raw := map[string]any{"labels.labelPrecision": 3, "dataPoint.fill": "#123456"}
	cfg, err := FromMap(raw)
	require.NoError(t, err)
	require.NotNil(t, cfg.Labels.LabelPrecision)
	assert.Equal(t, 3, *cfg.Labels.LabelPrecision)
	require.NotNil(t, cfg.DataPoint.Fill)
	assert.Equal(t, "#123456", *cfg.DataPoint.Fill)

	// the caller's map is left as it was
	assert.Equal(t, map[string]any{"labels.labelPrecision": 3, "dataPoint.fill": "#123456"}, raw)
}
