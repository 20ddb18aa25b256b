package services

import (
	"sort"

	"securecheck/models"
)

func ViolationChart(t *models.Table) models.Chart {
	return countChart(t, "violation", models.BarChart, "Stops by Violation Type")
}

func GenderChart(t *models.Table) models.Chart {
	return countChart(t, "driver_gender", models.PieChart, "Driver Gender Distribution")
}

// countChart groups t by column. The chart is unavailable when the table is
// empty or lacks the column. NULL cells are not counted.
func countChart(t *models.Table, column string, kind models.ChartKind, title string) models.Chart {
	chart := models.Chart{Kind: kind, Title: title, Column: column}
	idx := t.ColumnIndex(column)
	if t.Empty() || idx < 0 {
		return chart
	}

	counts := map[string]int{}
	for _, row := range t.Rows {
		if idx >= len(row) || row[idx] == nil {
			continue
		}
		counts[models.AsString(row[idx])]++
	}

	chart.Points = make([]models.ChartPoint, 0, len(counts))
	for label, n := range counts {
		chart.Points = append(chart.Points, models.ChartPoint{Label: label, Count: n})
	}
	sort.Slice(chart.Points, func(i, j int) bool {
		if chart.Points[i].Count != chart.Points[j].Count {
			return chart.Points[i].Count > chart.Points[j].Count
		}
		return chart.Points[i].Label < chart.Points[j].Label
	})
	chart.Available = len(chart.Points) > 0
	return chart
}
