package models

import "time"

// PredictionInput is one submission of the "new police log" form. Only
// DriverGender, DriverAge, SearchConducted, DrugsRelatedStop and StopDuration
// select matching history; the rest is echoed back in the summary.
type PredictionInput struct {
	StopDate         string `form:"stop_date" json:"stop_date"`
	StopTime         string `form:"stop_time" json:"stop_time"`
	CountryName      string `form:"country_name" json:"country_name"`
	DriverGender     string `form:"driver_gender" json:"driver_gender" binding:"required,oneof=male female"`
	DriverAge        int    `form:"driver_age" json:"driver_age" binding:"required,min=16,max=100"`
	DriverRace       string `form:"driver_race" json:"driver_race"`
	SearchConducted  bool   `form:"search_conducted" json:"search_conducted"`
	DrugsRelatedStop bool   `form:"drugs_related_stop" json:"drugs_related_stop"`
	StopDuration     string `form:"stop_duration" json:"stop_duration" binding:"required"`
	VehicleNumber    string `form:"vehicle_number" json:"vehicle_number"`
}

type Prediction struct {
	Violation string `json:"violation"`
	Outcome   string `json:"outcome"`
	// Matches is the number of historical stops that agreed on all five keys.
	Matches  int    `json:"matches"`
	Fallback bool   `json:"fallback"`
	Summary  string `json:"summary"`
}

// PredictionEvent is what gets broadcast after a prediction is served.
type PredictionEvent struct {
	ID         string          `json:"id"`
	At         time.Time       `json:"at"`
	Input      PredictionInput `json:"input"`
	Prediction Prediction      `json:"prediction"`
}
