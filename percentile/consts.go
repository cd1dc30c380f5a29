package percentile

import "sync"

const (
	// 0th through 100th inclusive
	PointCount = 101

	// probabilities are stepped by 1 / ProbabilitySteps
	ProbabilitySteps = 100
)

// probabilities is the 0.00, 0.01, ..., 0.99 table. It is built once and
// shared by every computation, callers must not modify it.
var probabilities = sync.OnceValue(func() []float64 {
	res := make([]float64, ProbabilitySteps)
	for i := range res {
		res[i] = float64(i) / ProbabilitySteps
	}
	return res
})

// Probabilities returns a copy of the shared probability table.
func Probabilities() []float64 {
	return append([]float64(nil), probabilities()...)
}
