package percentile

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/uyouii/percentile-chart/model"
	"github.com/uyouii/percentile-chart/utils"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Curve is the percentile to value mapping of one sample.
type Curve struct {
	Kind   model.ValueKind
	Points []model.PercentilePoint
	Min    float64
	Max    float64
}

// Compute returns the 0th..100th percentile points of a validated sample.
// Percentile 0 is the sample minimum and percentile 100 the maximum, the
// 99 interior points come from the estimator. Compute panics when the
// sample is empty or the curve does not end up with PointCount points.
func Compute(ctx context.Context, sample *model.Sample, estimator Estimator) *Curve {
	logger := utils.GetLogger(ctx)

	if sample.IsEmpty() {
		panic("percentile: Compute called with an empty sample")
	}
	if estimator == nil {
		estimator = DefaultEstimator
	}

	min, max := floats.Min(sample.Values), floats.Max(sample.Values)

	sorted := make([]float64, len(sample.Values))
	copy(sorted, sample.Values)
	sort.Float64s(sorted)

	points := make([]model.PercentilePoint, 0, PointCount)
	points = append(points, model.PercentilePoint{Percentile: 0, Value: min})

	last := min
	for i, p := range probabilities() {
		if i == 0 {
			continue
		}
		q := utils.Clamp(estimator.Quantile(p, sorted), min, max)
		// keep the curve non-decreasing under interpolation rounding
		q = math.Max(q, last)
		last = q
		points = append(points, model.PercentilePoint{Percentile: i, Value: q})
	}
	points = append(points, model.PercentilePoint{Percentile: 100, Value: max})

	if len(points) != PointCount {
		panic(fmt.Sprintf("percentile: computed %d points, want %d", len(points), PointCount))
	}

	logger.Debug("percentiles computed", zap.Int("sampleSize", len(sorted)),
		zap.String("estimator", estimator.Name()), zap.Float64("min", min), zap.Float64("max", max))

	return &Curve{
		Kind:   sample.Kind,
		Points: points,
		Min:    min,
		Max:    max,
	}
}
