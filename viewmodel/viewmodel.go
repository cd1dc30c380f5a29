package viewmodel

import (
	"strconv"

	"github.com/uyouii/percentile-chart/axis"
	"github.com/uyouii/percentile-chart/format"
	"github.com/uyouii/percentile-chart/model"
)

const (
	YAxisLegend         = "Percentile"
	DefaultTooltipValue = "Value"

	InvalidDataLegend = "Invalid data: use numeric values"
	NoDataLegend      = "Invalid data: no values"
)

// ViewModel is everything the renderer needs for one update. It is never
// modified after Build returns. A degraded view model has no points and no
// settings, only a single diagnostic legend.
type ViewModel struct {
	Kind      model.ValueKind         `json:"kind,omitempty"`
	Points    []model.PercentilePoint `json:"points"`
	Settings  *model.ChartSettings    `json:"settings"`
	Formatter format.ValueFormatter   `json:"-"`
	Min       float64                 `json:"min"`
	Max       float64                 `json:"max"`
	XDomain   model.Domain            `json:"xDomain"`
	YDomain   model.Domain            `json:"yDomain"`
	Legends   []model.Legend          `json:"legends"`
}

func degraded(text string) *ViewModel {
	return &ViewModel{
		Legends: []model.Legend{{Text: text, Axis: model.NoAxis}},
	}
}

func (vm *ViewModel) IsDegraded() bool {
	return vm == nil || vm.Points == nil || vm.Settings == nil
}

// Diagnostic returns the diagnostic text of a degraded view model.
func (vm *ViewModel) Diagnostic() string {
	if vm == nil || !vm.IsDegraded() || len(vm.Legends) == 0 {
		return ""
	}
	return vm.Legends[0].Text
}

func (vm *ViewModel) Legend(a model.LegendAxis) (model.Legend, bool) {
	if vm == nil {
		return model.Legend{}, false
	}
	for _, l := range vm.Legends {
		if l.Axis == a {
			return l, true
		}
	}
	return model.Legend{}, false
}

// Strategy returns the x-domain strategy of the sample kind.
func (vm *ViewModel) Strategy() axis.DomainStrategy {
	return axis.StrategyFor(vm.Kind)
}

// Tooltip describes the point at index i, nil when out of range.
func (vm *ViewModel) Tooltip(i int) []model.TooltipItem {
	if vm.IsDegraded() || i < 0 || i >= len(vm.Points) {
		return nil
	}
	p := vm.Points[i]
	name := vm.Settings.AxisTitle
	if name == "" {
		name = DefaultTooltipValue
	}
	return []model.TooltipItem{
		{DisplayName: YAxisLegend, Value: strconv.Itoa(p.Percentile)},
		{DisplayName: name, Value: vm.Formatter.Format(p.Value)},
	}
}
