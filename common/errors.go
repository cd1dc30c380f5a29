package common

import "errors"

var (
	ErrorInvalidValue      = errors.New("invalid value")
	ErrorEmptyDataset      = errors.New("dataset has no values")
	ErrorNonNumericValue   = errors.New("dataset contains a non numeric value")
	ErrorMixedValueKind    = errors.New("dataset mixes numeric and date values")
	ErrorInvalidConfig     = errors.New("invalid configuration")
	ErrorUnsupportedFormat = errors.New("unsupported file format")
	ErrorNotInitialized    = errors.New("visual is not initialized")
)
