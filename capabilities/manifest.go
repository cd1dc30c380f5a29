// Package capabilities declares what the chart expects from its host: the
// data roles it binds and the user configurable objects with their typed
// properties and defaults.
package capabilities

import (
	"github.com/uyouii/percentile-chart/format"
	"github.com/uyouii/percentile-chart/model"
)

const (
	DefaultFillColor = "#01B8AA"
	DefaultPrecision = 0
	MaxPrecision     = format.MaxDecimals

	DataPointObject   = "dataPoint"
	FillProperty      = "fill"
	LabelsObject      = "labels"
	PrecisionProperty = "labelPrecision"

	CategoryRole = "category"
	MeasureRole  = "measure"
)

type PropertyType string

const (
	FillType    PropertyType = "fill"
	IntegerType PropertyType = "integer"
)

type Property struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Type        PropertyType `json:"type"`
	Default     any          `json:"default"`
	// Maximum bounds integer properties, 0 means unbounded.
	Maximum int `json:"maximum,omitempty"`
}

type Object struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"displayName"`
	Properties  []Property `json:"properties"`
}

func (o Object) Property(name string) (Property, bool) {
	for _, p := range o.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

type RoleKind string

const (
	GroupingRole RoleKind = "Grouping"
	MeasureKind  RoleKind = "Measure"
)

type DataRole struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Kind        RoleKind `json:"kind"`
	// MaxCount is the number of columns the role accepts.
	MaxCount int `json:"maxCount"`
}

type Manifest struct {
	DataRoles []DataRole `json:"dataRoles"`
	Objects   []Object   `json:"objects"`
}

// Default is the manifest of the percentile chart.
var Default = Manifest{
	DataRoles: []DataRole{
		{Name: CategoryRole, DisplayName: "Category", Kind: GroupingRole, MaxCount: 1},
		{Name: MeasureRole, DisplayName: "Values", Kind: MeasureKind, MaxCount: 1},
	},
	Objects: []Object{
		{
			Name:        DataPointObject,
			DisplayName: "Data colors",
			Properties: []Property{
				{Name: FillProperty, DisplayName: "Fill", Type: FillType, Default: DefaultFillColor},
			},
		},
		{
			Name:        LabelsObject,
			DisplayName: "Labels",
			Properties: []Property{
				{Name: PrecisionProperty, DisplayName: "Decimal places", Type: IntegerType, Default: DefaultPrecision, Maximum: MaxPrecision},
			},
		},
	},
}

func (m Manifest) Object(name string) (Object, bool) {
	for _, o := range m.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return Object{}, false
}

// ObjectInstance is one entry of the host property pane.
type ObjectInstance struct {
	ObjectName  string         `json:"objectName"`
	DisplayName string         `json:"displayName"`
	Properties  map[string]any `json:"properties"`
}

// EnumerateObjectInstances lists the current values of objectName. Unknown
// objects and a nil settings yield the manifest defaults.
func (m Manifest) EnumerateObjectInstances(objectName string, settings *model.ChartSettings) []ObjectInstance {
	object, ok := m.Object(objectName)
	if !ok {
		return nil
	}

	properties := map[string]any{}
	for _, p := range object.Properties {
		properties[p.Name] = p.Default
	}
	if settings != nil {
		switch objectName {
		case DataPointObject:
			properties[FillProperty] = settings.FillColor
		case LabelsObject:
			properties[PrecisionProperty] = settings.Precision
		}
	}

	return []ObjectInstance{{
		ObjectName:  object.Name,
		DisplayName: object.DisplayName,
		Properties:  properties,
	}}
}
