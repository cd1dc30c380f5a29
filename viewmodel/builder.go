package viewmodel

import (
	"context"
	"errors"

	"github.com/uyouii/percentile-chart/axis"
	"github.com/uyouii/percentile-chart/capabilities"
	"github.com/uyouii/percentile-chart/common"
	"github.com/uyouii/percentile-chart/config"
	"github.com/uyouii/percentile-chart/format"
	"github.com/uyouii/percentile-chart/model"
	"github.com/uyouii/percentile-chart/percentile"
	"github.com/uyouii/percentile-chart/utils"
	"go.uber.org/zap"
)

type Input struct {
	Dataset *model.Dataset
	Config  *config.UserConfig
}

// Builder turns a dataset and user configuration into a ViewModel. It keeps
// no state between calls and is safe for concurrent use.
type Builder struct {
	estimator percentile.Estimator
	defaults  model.ChartSettings
}

type Option func(*Builder)

func WithEstimator(e percentile.Estimator) Option {
	return func(b *Builder) {
		if e != nil {
			b.estimator = e
		}
	}
}

func WithDefaults(fillColor string, precision int) Option {
	return func(b *Builder) {
		b.defaults.FillColor = fillColor
		b.defaults.Precision = precision
	}
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		estimator: percentile.DefaultEstimator,
		defaults: model.ChartSettings{
			FillColor: capabilities.DefaultFillColor,
			Precision: capabilities.DefaultPrecision,
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) Estimator() percentile.Estimator {
	return b.estimator
}

// Build validates the dataset, computes the percentile curve and resolves
// the settings. Invalid input never fails the build, it yields a degraded
// view model carrying a diagnostic legend.
func (b *Builder) Build(ctx context.Context, in Input) *ViewModel {
	logger := utils.GetLogger(ctx)

	column := in.Dataset.SampleColumn()
	var values []any
	if column != nil {
		values = column.Values
	}

	sample, err := percentile.Validate(ctx, values)
	if err != nil {
		logger.Warn("invalid dataset, render diagnostic", zap.Error(err),
			zap.String("dataset", in.Dataset.DebugString()))
		if errors.Is(err, common.ErrorEmptyDataset) {
			return degraded(NoDataLegend)
		}
		return degraded(InvalidDataLegend)
	}

	curve := percentile.Compute(ctx, sample, b.estimator)
	settings := ResolveSettings(in.Dataset, in.Config, b.defaults)

	formatter := format.New(format.Options{
		Format:    column.Format,
		Kind:      curve.Kind,
		Precision: settings.Precision,
		Min:       curve.Min,
		Max:       curve.Max,
	})

	vm := &ViewModel{
		Kind:      curve.Kind,
		Points:    curve.Points,
		Settings:  settings,
		Formatter: formatter,
		Min:       curve.Min,
		Max:       curve.Max,
		XDomain:   axis.StrategyFor(curve.Kind).Domain(curve.Min, curve.Max),
		YDomain:   axis.YDomain,
		Legends: []model.Legend{
			{Text: settings.AxisTitle, Axis: model.XAxis},
			{Text: YAxisLegend, Axis: model.YAxis},
		},
	}

	logger.Debug("view model built", zap.Stringer("kind", vm.Kind),
		zap.Any("xDomain", vm.XDomain), zap.Any("settings", settings))
	return vm
}
