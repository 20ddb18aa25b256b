package models

// StopTableName is the read-only traffic-stop table behind the dashboard.
const StopTableName = "cleaned_data_ok"

type StopRecord struct {
	StopDate         string  `gorm:"column:stop_date" json:"stop_date"`
	StopTime         string  `gorm:"column:stop_time" json:"stop_time"`
	CountryName      string  `gorm:"column:country_name" json:"country_name"`
	DriverGender     string  `gorm:"column:driver_gender" json:"driver_gender"`
	DriverAge        float64 `gorm:"column:driver_age" json:"driver_age"`
	DriverRace       string  `gorm:"column:driver_race" json:"driver_race"`
	Violation        string  `gorm:"column:violation" json:"violation"`
	SearchConducted  bool    `gorm:"column:search_conducted" json:"search_conducted"`
	SearchType       string  `gorm:"column:search_type" json:"search_type"`
	StopOutcome      string  `gorm:"column:stop_outcome" json:"stop_outcome"`
	StopDuration     string  `gorm:"column:stop_duration" json:"stop_duration"`
	DrugsRelatedStop bool    `gorm:"column:drugs_related_stop" json:"drugs_related_stop"`
	VehicleNumber    string  `gorm:"column:vehicle_number" json:"vehicle_number"`

	// NULL cells, as opposed to empty strings.
	ViolationNull bool `gorm:"-" json:"-"`
	OutcomeNull   bool `gorm:"-" json:"-"`
}

func (StopRecord) TableName() string { return StopTableName }

// RecordsFromTable coerces the rows of a full-table fetch into StopRecords.
// Missing columns and NULL cells leave the zero value; a NULL violation or
// outcome also sets its Null flag.
func RecordsFromTable(t *Table) []StopRecord {
	if t.Empty() {
		return nil
	}
	col := func(name string) int { return t.ColumnIndex(name) }
	var (
		iDate     = col("stop_date")
		iTime     = col("stop_time")
		iCountry  = col("country_name")
		iGender   = col("driver_gender")
		iAge      = col("driver_age")
		iRace     = col("driver_race")
		iViol     = col("violation")
		iSearch   = col("search_conducted")
		iSType    = col("search_type")
		iOutcome  = col("stop_outcome")
		iDuration = col("stop_duration")
		iDrugs    = col("drugs_related_stop")
		iVehicle  = col("vehicle_number")
	)

	records := make([]StopRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		cell := func(i int) any {
			if i < 0 || i >= len(row) {
				return nil
			}
			return row[i]
		}
		age, _ := AsFloat(cell(iAge))
		records = append(records, StopRecord{
			StopDate:         AsString(cell(iDate)),
			StopTime:         AsString(cell(iTime)),
			CountryName:      AsString(cell(iCountry)),
			DriverGender:     AsString(cell(iGender)),
			DriverAge:        age,
			DriverRace:       AsString(cell(iRace)),
			Violation:        AsString(cell(iViol)),
			SearchConducted:  AsBool(cell(iSearch)),
			SearchType:       AsString(cell(iSType)),
			StopOutcome:      AsString(cell(iOutcome)),
			StopDuration:     AsString(cell(iDuration)),
			DrugsRelatedStop: AsBool(cell(iDrugs)),
			VehicleNumber:    AsString(cell(iVehicle)),
			ViolationNull:    cell(iViol) == nil,
			OutcomeNull:      cell(iOutcome) == nil,
		})
	}
	return records
}
