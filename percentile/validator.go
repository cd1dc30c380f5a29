package percentile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uyouii/percentile-chart/common"
	"github.com/uyouii/percentile-chart/model"
	"github.com/uyouii/percentile-chart/utils"
	"go.uber.org/zap"
)

// Validate checks that values is non empty and holds only finite numbers or
// only dates, and converts it to a Sample. A single bad element rejects the
// whole dataset.
func Validate(ctx context.Context, values []any) (*model.Sample, error) {
	logger := utils.GetLogger(ctx)

	if len(values) == 0 {
		return nil, common.ErrorEmptyDataset
	}

	sample := &model.Sample{Values: make([]float64, 0, len(values))}
	for i, raw := range values {
		v, kind, ok := toFloat(raw)
		if !ok {
			logger.Debug("invalid sample value", zap.Int("index", i), zap.Any("value", raw))
			return nil, fmt.Errorf("value %v at index %d: %w", raw, i, common.ErrorNonNumericValue)
		}
		if sample.Kind == 0 {
			sample.Kind = kind
		} else if sample.Kind != kind {
			return nil, fmt.Errorf("value %v at index %d is %v in a %v dataset: %w",
				raw, i, kind, sample.Kind, common.ErrorMixedValueKind)
		}
		sample.Values = append(sample.Values, v)
	}
	return sample, nil
}

// IsValid reports whether values would pass Validate.
func IsValid(values []any) bool {
	_, err := Validate(context.Background(), values)
	return err == nil
}

func toFloat(raw any) (float64, model.ValueKind, bool) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, 0, false
		}
		f = parsed
	case time.Time:
		if v.IsZero() {
			return 0, 0, false
		}
		return model.TimeToMillis(v), model.TemporalValue, true
	default:
		return 0, 0, false
	}
	if !utils.IsFinite(f) {
		return 0, 0, false
	}
	return f, model.NumericValue, true
}
