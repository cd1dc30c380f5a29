package percentile

import (
	"fmt"
	"strings"

	moremath "github.com/aclements/go-moremath/stats"
	"github.com/montanaflynn/stats"
	"github.com/uyouii/percentile-chart/common"
	"github.com/uyouii/percentile-chart/utils"
	"gonum.org/v1/gonum/stat"
)

// Estimator maps a probability in (0, 1) to a value of an ascending sorted
// sample. Implementations must be monotone non-decreasing in p.
type Estimator interface {
	Name() string
	Quantile(p float64, sorted []float64) float64
}

const (
	LinInterpName   = "linear"
	EmpiricalName   = "empirical"
	HyndmanFan8Name = "r8"
	NearestRankName = "nearest-rank"
)

// DefaultEstimator interpolates linearly over the empirical cdf.
var DefaultEstimator Estimator = LinInterp{}

type LinInterp struct{}

func (LinInterp) Name() string { return LinInterpName }

func (LinInterp) Quantile(p float64, sorted []float64) float64 {
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// Empirical returns the smallest sample value whose cdf reaches p.
type Empirical struct{}

func (Empirical) Name() string { return EmpiricalName }

func (Empirical) Quantile(p float64, sorted []float64) float64 {
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// HyndmanFan8 is the median-unbiased estimator, R type 8.
type HyndmanFan8 struct{}

func (HyndmanFan8) Name() string { return HyndmanFan8Name }

func (HyndmanFan8) Quantile(p float64, sorted []float64) float64 {
	return moremath.Sample{Xs: sorted, Sorted: true}.Quantile(p)
}

type NearestRank struct{}

func (NearestRank) Name() string { return NearestRankName }

func (NearestRank) Quantile(p float64, sorted []float64) float64 {
	v, err := stats.PercentileNearestRank(sorted, utils.RoundFloat(p*100, 6))
	if err != nil {
		// only empty input or p outside [0, 1], both excluded by Compute
		panic(fmt.Sprintf("nearest rank percentile for p=%v: %v", p, err))
	}
	return v
}

func Estimators() []Estimator {
	return []Estimator{LinInterp{}, Empirical{}, HyndmanFan8{}, NearestRank{}}
}

func ParseEstimator(name string) (Estimator, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultEstimator, nil
	}
	for _, e := range Estimators() {
		if e.Name() == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("unknown estimator %q: %w", name, common.ErrorInvalidValue)
}
