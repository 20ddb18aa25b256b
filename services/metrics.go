package services

import (
	"strings"

	"securecheck/models"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ComputeMetrics derives the dashboard tiles from already-fetched records.
// No records means no data, not zero stops.
func ComputeMetrics(records []models.StopRecord) models.Metrics {
	if len(records) == 0 {
		return models.Metrics{}
	}

	m := models.Metrics{Available: true, TotalStops: len(records)}
	ages := make([]float64, 0, len(records))
	for _, r := range records {
		outcome := strings.ToLower(r.StopOutcome)
		if strings.Contains(outcome, "arrest") {
			m.Arrests++
		}
		if strings.Contains(outcome, "warning") {
			m.Warnings++
		}
		if r.DrugsRelatedStop {
			m.DrugRelated++
		}
		if r.DriverAge > 0 {
			ages = append(ages, r.DriverAge)
		}
	}
	m.Age = summarizeAges(ages)
	return m
}

func summarizeAges(ages []float64) models.AgeSummary {
	if len(ages) == 0 {
		return models.AgeSummary{}
	}
	mean, std := stat.MeanStdDev(ages, nil)
	if len(ages) == 1 {
		// MeanStdDev divides by n-1.
		std = 0
	}
	return models.AgeSummary{
		Available: true,
		Mean:      mean,
		StdDev:    std,
		Min:       floats.Min(ages),
		Max:       floats.Max(ages),
	}
}
