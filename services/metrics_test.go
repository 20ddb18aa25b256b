package services

import (
	"testing"

	"securecheck/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeMetricsEmptyIsNoData(t *testing.T) {
	m := ComputeMetrics(nil)
	assert.False(t, m.Available)
	assert.False(t, m.Age.Available)
}

func TestComputeMetrics(t *testing.T) {
	drugs := stop("male", 40, "Arrest Driver", "DUI")
	drugs.DrugsRelatedStop = true
	records := []models.StopRecord{
		stop("male", 20, "Warning", "Speeding"),
		stop("female", 30, "Arrested", "Speeding"),
		stop("female", 30, "warning", "Seatbelt"),
		stop("male", 0, "Citation", "Equipment"),
		drugs,
	}

	m := ComputeMetrics(records)

	assert.True(t, m.Available)
	assert.Equal(t, 5, m.TotalStops)
	assert.Equal(t, 2, m.Arrests, "Arrested and Arrest Driver both count")
	assert.Equal(t, 2, m.Warnings)
	assert.Equal(t, 1, m.DrugRelated)

	assert.True(t, m.Age.Available)
	assert.InDelta(t, 30.0, m.Age.Mean, 1e-9)
	assert.InDelta(t, 20.0, m.Age.Min, 1e-9)
	assert.InDelta(t, 40.0, m.Age.Max, 1e-9)
	assert.InDelta(t, 8.16496580927726, m.Age.StdDev, 1e-6)
}

func TestComputeMetricsSingleAge(t *testing.T) {
	m := ComputeMetrics([]models.StopRecord{stop("male", 25, "warning", "Speeding")})
	assert.Equal(t, 0.0, m.Age.StdDev)
	assert.Equal(t, 25.0, m.Age.Mean)
}

func TestCharts(t *testing.T) {
	table := &models.Table{
		Columns: []string{"violation", "driver_gender"},
		Rows: [][]any{
			{"Speeding", "male"},
			{"DUI", "female"},
			{"Speeding", "male"},
			{"Equipment", nil},
			{"DUI", "male"},
		},
	}

	bar := ViolationChart(table)
	assert.True(t, bar.Available)
	assert.Equal(t, models.BarChart, bar.Kind)
	assert.Equal(t, []models.ChartPoint{
		{Label: "DUI", Count: 2},
		{Label: "Speeding", Count: 2},
		{Label: "Equipment", Count: 1},
	}, bar.Points)

	pie := GenderChart(table)
	assert.Equal(t, models.PieChart, pie.Kind)
	assert.Equal(t, []models.ChartPoint{
		{Label: "male", Count: 3},
		{Label: "female", Count: 1},
	}, pie.Points)
}

func TestChartsNoData(t *testing.T) {
	assert.False(t, ViolationChart(models.EmptyTable()).Available)
	assert.False(t, GenderChart(nil).Available)

	noGender := &models.Table{Columns: []string{"violation"}, Rows: [][]any{{"DUI"}}}
	assert.True(t, ViolationChart(noGender).Available)
	assert.False(t, GenderChart(noGender).Available)
}
