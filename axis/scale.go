package axis

import (
	"math"
	"time"

	"github.com/aclements/go-moremath/scale"
	"github.com/uyouii/percentile-chart/model"
)

// Scale maps domain values to pixel positions.
type Scale interface {
	Domain() model.Domain
	Map(v float64) float64
	// Ticks returns at most max tick values inside the domain.
	Ticks(max int) []float64
}

type Linear struct {
	s                  scale.Linear
	rangeMin, rangeMax float64
}

func NewLinear(domain model.Domain, rangeMin, rangeMax float64) *Linear {
	return &Linear{
		s:        scale.Linear{Min: domain.Min, Max: domain.Max, Base: 10},
		rangeMin: rangeMin,
		rangeMax: rangeMax,
	}
}

func (l *Linear) Domain() model.Domain {
	return model.Domain{Min: l.s.Min, Max: l.s.Max}
}

func (l *Linear) Map(v float64) float64 {
	if l.s.Max == l.s.Min {
		return (l.rangeMin + l.rangeMax) / 2
	}
	return l.rangeMin + l.s.Map(v)*(l.rangeMax-l.rangeMin)
}

func (l *Linear) Ticks(max int) []float64 {
	if max < 1 || l.s.Max == l.s.Min {
		return []float64{l.s.Min}
	}
	major, _ := l.s.Ticks(scale.TickOptions{Max: max})
	return major
}

type timeStep struct {
	step   time.Duration
	layout string
}

var timeSteps = []timeStep{
	{time.Second, "15:04:05"},
	{5 * time.Second, "15:04:05"},
	{15 * time.Second, "15:04:05"},
	{30 * time.Second, "15:04:05"},
	{time.Minute, "15:04"},
	{5 * time.Minute, "15:04"},
	{15 * time.Minute, "15:04"},
	{30 * time.Minute, "15:04"},
	{time.Hour, "Jan 2 15:04"},
	{3 * time.Hour, "Jan 2 15:04"},
	{6 * time.Hour, "Jan 2 15:04"},
	{12 * time.Hour, "Jan 2 15:04"},
	{24 * time.Hour, "Jan 2"},
	{2 * 24 * time.Hour, "Jan 2"},
	{7 * 24 * time.Hour, "Jan 2"},
	{30 * 24 * time.Hour, "Jan 2006"},
	{90 * 24 * time.Hour, "Jan 2006"},
	{365 * 24 * time.Hour, "2006"},
}

// Time is a linear scale over unix milliseconds with ticks on round
// calendar-ish steps.
type Time struct {
	*Linear
}

func NewTime(domain model.Domain, rangeMin, rangeMax float64) *Time {
	return &Time{Linear: NewLinear(domain, rangeMin, rangeMax)}
}

// Step returns the tick step in milliseconds and its label layout for at
// most max ticks. Spans are kept in float64 milliseconds, a time.Duration
// overflows past roughly 292 years.
func (t *Time) Step(max int) (float64, string) {
	span := t.s.Max - t.s.Min
	if max < 1 {
		max = 1
	}
	for _, ts := range timeSteps {
		if span/float64(ts.step.Milliseconds()) < float64(max) {
			return float64(ts.step.Milliseconds()), ts.layout
		}
	}
	last := timeSteps[len(timeSteps)-1]
	lastMs := float64(last.step.Milliseconds())
	years := math.Ceil(span / lastMs / float64(max))
	return years * lastMs, last.layout
}

func (t *Time) Ticks(max int) []float64 {
	if t.s.Max == t.s.Min {
		return []float64{t.s.Min}
	}
	if max < 1 {
		max = 1
	}
	step, _ := t.Step(max)
	ticks := make([]float64, 0, max+1)
	for v := math.Ceil(t.s.Min/step) * step; v <= t.s.Max && len(ticks) <= max; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}
