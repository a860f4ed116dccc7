package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// Ratio divide e arredonda em duas casas; zero quando o divisor é zero
func Ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return RoundWithTwoDecimalPlace(numerator / denominator)
}
