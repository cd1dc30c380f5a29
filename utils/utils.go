package utils

import "math"

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// RoundFloat rounds f to the given number of decimal places.
func RoundFloat(f float64, places int) float64 {
	if !IsFinite(f) {
		return f
	}
	if places < 0 {
		places = 0
	}
	pow := math.Pow(10, float64(places))
	return math.Round(f*pow) / pow
}

func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func Clamp(f, lower, upper float64) float64 {
	return math.Min(math.Max(f, lower), upper)
}
