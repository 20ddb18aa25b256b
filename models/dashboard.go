package models

type Metrics struct {
	// Available is false when there was no data; the counts are then meaningless.
	Available   bool       `json:"available"`
	TotalStops  int        `json:"total_stops"`
	Arrests     int        `json:"arrests"`
	Warnings    int        `json:"warnings"`
	DrugRelated int        `json:"drug_related"`
	Age         AgeSummary `json:"age"`
}

type AgeSummary struct {
	Available bool    `json:"available"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"std_dev"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

type ChartKind string

const (
	BarChart ChartKind = "bar"
	PieChart ChartKind = "pie"
)

type ChartPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Chart struct {
	Kind      ChartKind    `json:"kind"`
	Title     string       `json:"title"`
	Column    string       `json:"column"`
	Available bool         `json:"available"`
	Points    []ChartPoint `json:"points"`
}

type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}
