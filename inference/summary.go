package inference

import (
	"github.com/montanaflynn/stats"
)

// DistributionSummary condenses a simulated null or sampling distribution.
type DistributionSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P05    float64 `json:"p05"`
	P95    float64 `json:"p95"`
}

// summarize computes the summary of a simulated distribution.
func summarize(estimates []float64) DistributionSummary {
	data := stats.Float64Data(estimates)

	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	stdDev, _ := stats.StandardDeviation(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	p05, _ := stats.Percentile(data, 5)
	p95, _ := stats.Percentile(data, 95)

	return DistributionSummary{
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		P05:    p05,
		P95:    p95,
	}
}
