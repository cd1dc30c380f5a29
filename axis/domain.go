package axis

import (
	"math"
	"time"

	"github.com/uyouii/percentile-chart/model"
)

const (
	// numeric x-domains are rounded outward to a multiple of RoundingStep
	RoundingStep = 10.0
	roundingEps  = 1e-9

	// TemporalPadding widens a zero-width temporal domain on both sides.
	TemporalPadding = time.Hour
)

// YDomain is the percentile axis.
var YDomain = model.Domain{Min: 0, Max: 100}

// DomainStrategy derives the x-domain and its scale from the sample extremes.
type DomainStrategy interface {
	Kind() model.ValueKind
	Domain(min, max float64) model.Domain
	Scale(domain model.Domain, rangeMin, rangeMax float64) Scale
}

func StrategyFor(kind model.ValueKind) DomainStrategy {
	if kind == model.TemporalValue {
		return TemporalDomain{}
	}
	return NumericDomain{}
}

// NumericDomain rounds [min, max] outward to multiples of RoundingStep.
type NumericDomain struct{}

func (NumericDomain) Kind() model.ValueKind { return model.NumericValue }

func (NumericDomain) Domain(min, max float64) model.Domain {
	lower := math.Floor(min/RoundingStep+roundingEps) * RoundingStep
	upper := math.Ceil(max/RoundingStep-roundingEps) * RoundingStep
	if upper <= lower {
		lower, upper = lower-RoundingStep, lower+RoundingStep
	}
	return model.Domain{Min: lower, Max: upper}
}

func (NumericDomain) Scale(domain model.Domain, rangeMin, rangeMax float64) Scale {
	return NewLinear(domain, rangeMin, rangeMax)
}

// TemporalDomain keeps [min, max] as is, values are unix milliseconds.
type TemporalDomain struct{}

func (TemporalDomain) Kind() model.ValueKind { return model.TemporalValue }

func (TemporalDomain) Domain(min, max float64) model.Domain {
	if max <= min {
		pad := float64(TemporalPadding.Milliseconds())
		return model.Domain{Min: min - pad, Max: min + pad}
	}
	return model.Domain{Min: min, Max: max}
}

func (TemporalDomain) Scale(domain model.Domain, rangeMin, rangeMax float64) Scale {
	return NewTime(domain, rangeMin, rangeMax)
}
