package services

import "math"

// DefaultOutlierThreshold is the Z-score magnitude beyond which a value is
// flagged. Ingestion always uses this value.
const DefaultOutlierThreshold = 2.0

// DetectOutliers flags statistical outliers in values using the Z-score
// method. The result has the same length as the input. Fewer than 3 values
// cannot characterize dispersion, so short inputs produce no flags, as does
// a column with zero spread. The standard deviation is the sample standard
// deviation (Bessel's correction, divisor n-1).
func DetectOutliers(values []float64, threshold float64) []bool {
	flags := make([]bool, len(values))
	if len(values) < 3 {
		return flags
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	std := math.Sqrt(sqDiff / float64(len(values)-1))

	if std == 0 || math.IsNaN(std) {
		return flags
	}

	for i, v := range values {
		if math.Abs(v-mean)/std > threshold {
			flags[i] = true
		}
	}
	return flags
}
