package viewmodel

import (
	"strings"

	"github.com/uyouii/percentile-chart/capabilities"
	"github.com/uyouii/percentile-chart/config"
	"github.com/uyouii/percentile-chart/model"
)

func ResolveFillColor(cfg *config.UserConfig, fallback string) string {
	if cfg == nil || cfg.DataPoint.Fill == nil || strings.TrimSpace(*cfg.DataPoint.Fill) == "" {
		return fallback
	}
	return strings.TrimSpace(*cfg.DataPoint.Fill)
}

// ResolvePrecision returns the configured precision clamped to
// [0, capabilities.MaxPrecision].
func ResolvePrecision(cfg *config.UserConfig, fallback int) int {
	precision := fallback
	if cfg != nil && cfg.Labels.LabelPrecision != nil {
		precision = *cfg.Labels.LabelPrecision
	}
	return max(0, min(precision, capabilities.MaxPrecision))
}

// ResolveAxisTitle names the x axis after the value and category columns,
// "<value> per <category>" when both exist and differ.
func ResolveAxisTitle(dataset *model.Dataset) string {
	if dataset == nil {
		return ""
	}
	var category, value string
	if dataset.Category != nil {
		category = strings.TrimSpace(dataset.Category.DisplayName)
	}
	if dataset.Values != nil {
		value = strings.TrimSpace(dataset.Values.DisplayName)
	}

	switch {
	case value != "" && category != "" && value != category:
		return value + " per " + category
	case value != "":
		return value
	default:
		return category
	}
}

func ResolveSettings(dataset *model.Dataset, cfg *config.UserConfig, defaults model.ChartSettings) *model.ChartSettings {
	return &model.ChartSettings{
		FillColor: ResolveFillColor(cfg, defaults.FillColor),
		Precision: ResolvePrecision(cfg, defaults.Precision),
		AxisTitle: ResolveAxisTitle(dataset),
	}
}
