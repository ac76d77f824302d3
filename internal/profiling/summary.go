package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// NumericSummary holds the distribution statistics of a numeric column
type NumericSummary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	Outliers int     `json:"outliers"`
}

// Summarize computes summary statistics for data. It fails only on empty input.
func Summarize(data []float64) (NumericSummary, error) {
	summary := NumericSummary{Count: len(data)}

	mean, err := stats.Mean(data)
	if err != nil {
		return summary, err
	}
	stdDev, err := stats.StandardDeviation(data)
	if err != nil {
		return summary, err
	}
	min, err := stats.Min(data)
	if err != nil {
		return summary, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return summary, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return summary, err
	}

	// small samples have no defined quartiles; use the median
	q25, err := stats.Percentile(data, 25)
	if err != nil || !finite(q25) {
		q25 = median
	}
	q75, err := stats.Percentile(data, 75)
	if err != nil || !finite(q75) {
		q75 = median
	}

	summary.Mean = mean
	summary.StdDev = stdDev
	summary.Min = min
	summary.Max = max
	summary.Median = median
	summary.Q25 = q25
	summary.Q75 = q75
	summary.Skewness = skewness(data)
	summary.Kurtosis = kurtosis(data)
	summary.Outliers = detectOutliers(data, q25, q75)
	return summary, nil
}

func skewness(data []float64) float64 {
	if len(data) < 3 {
		return 0
	}
	s := stat.Skew(data, nil)
	if !finite(s) {
		return 0
	}
	return s
}

func kurtosis(data []float64) float64 {
	if len(data) < 4 {
		return 0
	}
	k := stat.ExKurtosis(data, nil)
	if !finite(k) {
		return 0
	}
	return k
}

// detectOutliers counts values outside 1.5 IQR of the quartiles
func detectOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lowerBound := q25 - 1.5*iqr
	upperBound := q75 + 1.5*iqr

	outlierCount := 0
	for _, x := range data {
		if x < lowerBound || x > upperBound {
			outlierCount++
		}
	}
	return outlierCount
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
