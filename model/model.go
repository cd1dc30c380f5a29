package model

import (
	"fmt"
	"time"
)

type ValueKind int

const (
	NumericValue  ValueKind = 1
	TemporalValue ValueKind = 2
)

func (k ValueKind) String() string {
	switch k {
	case NumericValue:
		return "numeric"
	case TemporalValue:
		return "temporal"
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

func (k ValueKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ColumnType is the declared type of a host column.
type ColumnType string

const (
	ColumnNumber   ColumnType = "number"
	ColumnDateTime ColumnType = "dateTime"
	ColumnText     ColumnType = "text"
)

type Column struct {
	DisplayName string     `json:"displayName,omitempty"`
	Format      string     `json:"format,omitempty"`
	Type        ColumnType `json:"type,omitempty"`
	Values      []any      `json:"values"`
}

func (c *Column) IsEmpty() bool {
	if c == nil {
		return true
	}
	return len(c.Values) == 0
}

// Dataset is what the host hands over on every update. Values is optional,
// when it is missing the category column carries the samples.
type Dataset struct {
	Category *Column `json:"category,omitempty"`
	Values   *Column `json:"values,omitempty"`
}

// SampleColumn returns the column the percentiles are computed from.
func (d *Dataset) SampleColumn() *Column {
	if d == nil {
		return nil
	}
	if d.Values != nil {
		return d.Values
	}
	return d.Category
}

func (d *Dataset) DebugString() string {
	if d == nil {
		return "dataset: nil"
	}
	count := 0
	if c := d.SampleColumn(); c != nil {
		count = len(c.Values)
	}
	return fmt.Sprintf("category: %v, values: %v, valueCount: %v", d.Category != nil, d.Values != nil, count)
}

// Sample is a validated dataset. Temporal values are unix milliseconds.
type Sample struct {
	Kind   ValueKind
	Values []float64
}

func (s *Sample) IsEmpty() bool {
	if s == nil {
		return true
	}
	return len(s.Values) == 0
}

type PercentilePoint struct {
	Percentile int     `json:"percentile"`
	Value      float64 `json:"value"`
}

func (p PercentilePoint) Time() time.Time {
	return MillisToTime(p.Value)
}

type Domain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (d Domain) Span() float64 {
	return d.Max - d.Min
}

type ChartSettings struct {
	FillColor string `json:"fillColor"`
	Precision int    `json:"precision"`
	AxisTitle string `json:"axisTitle"`
}

type LegendAxis int

const (
	NoAxis LegendAxis = 0
	XAxis  LegendAxis = 1
	YAxis  LegendAxis = 2
)

func (a LegendAxis) String() string {
	switch a {
	case XAxis:
		return "x"
	case YAxis:
		return "y"
	}
	return "none"
}

func (a LegendAxis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

type Legend struct {
	Text string     `json:"text"`
	Axis LegendAxis `json:"axis"`
}

type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type TooltipItem struct {
	DisplayName string `json:"displayName"`
	Value       string `json:"value"`
}

func TimeToMillis(t time.Time) float64 {
	return float64(t.UnixMilli())
}

func MillisToTime(ms float64) time.Time {
	return time.UnixMilli(int64(ms)).UTC()
}
