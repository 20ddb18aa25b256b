package services

import (
	"testing"
	"time"

	"securecheck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)

func input(gender string, age int) models.PredictionInput {
	return models.PredictionInput{
		StopDate: "2024-03-01", StopTime: "09:30", CountryName: "Canada",
		DriverGender: gender, DriverAge: age, StopDuration: "0-15 Min",
		VehicleNumber: "KA05MN0001",
	}
}

func TestPredictPluralityOutcome(t *testing.T) {
	records := []models.StopRecord{
		stop("male", 27, "warning", "Speeding"),
		stop("male", 27, "warning", "Seatbelt"),
		stop("male", 27, "arrest", "Speeding"),
		stop("female", 27, "arrest", "DUI"),
	}

	p := Predict(records, input("male", 27), fixedNow)

	assert.Equal(t, "warning", p.Outcome)
	assert.Equal(t, "Speeding", p.Violation)
	assert.Equal(t, 3, p.Matches)
	assert.False(t, p.Fallback)
}

func TestPredictResultAppearsInSubset(t *testing.T) {
	records := []models.StopRecord{
		stop("female", 45, "Citation", "Equipment"),
		stop("female", 45, "Citation", "Registration/plates"),
		stop("female", 45, "Ticket", "Equipment"),
		stop("male", 45, "Arrest Driver", "DUI"),
	}
	p := Predict(records, input("female", 45), fixedNow)

	assert.Contains(t, []string{"Citation", "Ticket"}, p.Outcome)
	assert.Equal(t, "Citation", p.Outcome)
	assert.Equal(t, "Equipment", p.Violation)
}

func TestPredictAllFiveKeysMustMatch(t *testing.T) {
	base := stop("male", 30, "arrest", "DUI")
	cases := map[string]func(*models.StopRecord){
		"gender":   func(r *models.StopRecord) { r.DriverGender = "female" },
		"age":      func(r *models.StopRecord) { r.DriverAge = 31 },
		"search":   func(r *models.StopRecord) { r.SearchConducted = true },
		"drugs":    func(r *models.StopRecord) { r.DrugsRelatedStop = true },
		"duration": func(r *models.StopRecord) { r.StopDuration = "30+ Min" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := base
			mutate(&r)
			p := Predict([]models.StopRecord{r}, input("male", 30), fixedNow)
			assert.True(t, p.Fallback)
			assert.Equal(t, 0, p.Matches)
		})
	}

	// Race, country and vehicle are echoed only.
	r := base
	r.DriverRace = "Asian"
	r.CountryName = "USA"
	p := Predict([]models.StopRecord{r}, input("male", 30), fixedNow)
	assert.False(t, p.Fallback)
	assert.Equal(t, "arrest", p.Outcome)
}

func TestPredictFallback(t *testing.T) {
	tests := []struct {
		name    string
		records []models.StopRecord
	}{
		{"empty dataset", nil},
		{"no match", []models.StopRecord{stop("female", 60, "arrest", "DUI")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Predict(tt.records, input("male", 18), fixedNow)
			assert.Equal(t, "warning", p.Outcome)
			assert.Equal(t, "speeding", p.Violation)
			assert.True(t, p.Fallback)
		})
	}
}

func TestPredictTieBreakIsLexicographic(t *testing.T) {
	records := []models.StopRecord{
		stop("male", 50, "warning", "Speeding"),
		stop("male", 50, "arrest", "DUI"),
		stop("male", 50, "citation", "Equipment"),
		stop("male", 50, "arrest", "Equipment"),
		stop("male", 50, "warning", "DUI"),
	}
	for i := 0; i < 5; i++ {
		p := Predict(records, input("male", 50), fixedNow)
		assert.Equal(t, "arrest", p.Outcome)
		assert.Equal(t, "DUI", p.Violation)
	}
}

// assertMostCommon checks that got occurs among values at least as often as
// every other value.
func assertMostCommon(t *testing.T, values []string, got string) {
	t.Helper()
	counts := map[string]int{}
	for _, v := range values {
		counts[v]++
	}
	require.Contains(t, counts, got)
	for v, n := range counts {
		assert.GreaterOrEqual(t, counts[got], n, "%q occurs more often than %q", v, got)
	}
}

func TestPredictEmptyStringsAreValues(t *testing.T) {
	records := []models.StopRecord{
		stop("male", 27, "", "Speeding"),
		stop("male", 27, "", "Speeding"),
		stop("male", 27, "arrest", "DUI"),
	}

	p := Predict(records, input("male", 27), fixedNow)

	assertMostCommon(t, []string{"", "", "arrest"}, p.Outcome)
	assert.Equal(t, "", p.Outcome)
	assert.Equal(t, "Speeding", p.Violation)
	assert.Equal(t, 3, p.Matches)
	assert.False(t, p.Fallback)
}

func TestPredictNullCellsFallBack(t *testing.T) {
	a := stop("male", 27, "", "DUI")
	a.OutcomeNull = true
	b := stop("male", 27, "", "DUI")
	b.OutcomeNull = true
	c := stop("male", 27, "arrest", "")
	c.ViolationNull = true

	p := Predict([]models.StopRecord{a, b}, input("male", 27), fixedNow)
	assert.Equal(t, FallbackOutcome, p.Outcome)
	assert.Equal(t, "DUI", p.Violation)
	assert.Equal(t, 2, p.Matches)
	assert.True(t, p.Fallback)

	// NULLs are skipped, not counted against the other values.
	p = Predict([]models.StopRecord{a, b, c}, input("male", 27), fixedNow)
	assert.Equal(t, "arrest", p.Outcome)
	assert.Equal(t, "DUI", p.Violation)
	assert.False(t, p.Fallback)
}

func TestPredictAgeMatchesExactly(t *testing.T) {
	r := stop("male", 0, "arrest", "DUI")
	r.DriverAge = 27.6

	for _, age := range []int{27, 28} {
		p := Predict([]models.StopRecord{r}, input("male", age), fixedNow)
		assert.Equal(t, 0, p.Matches, "age %d", age)
		assert.True(t, p.Fallback)
	}
}

func TestPlurality(t *testing.T) {
	tests := []struct {
		values []string
		want   string
		ok     bool
	}{
		{nil, "", false},
		{[]string{"", "", "arrest"}, "", true},
		{[]string{"b", "a", "b", "a"}, "a", true},
		{[]string{"warning", "arrest", "warning"}, "warning", true},
	}
	for _, tt := range tests {
		got, ok := plurality(tt.values)
		assert.Equal(t, tt.ok, ok, "plurality(%q)", tt.values)
		assert.Equal(t, tt.want, got, "plurality(%q)", tt.values)
	}
}

func TestSummarize(t *testing.T) {
	in := input("female", 33)
	in.SearchConducted = true
	in.StopTime = "21:45"
	p := models.Prediction{Violation: "DUI", Outcome: "arrest"}

	s := Summarize(in, p, fixedNow)

	assert.Contains(t, s, "Predicted Violation: DUI")
	assert.Contains(t, s, "Predicted Stop Outcome: arrest")
	assert.Contains(t, s, "A 33-year-old female driver in Canada was stopped at 09:45 PM on 2024-03-01.")
	assert.Contains(t, s, "A search was conducted, and the stop was not drug related.")
	assert.Contains(t, s, "Stop Duration: 0-15 Min")
	assert.Contains(t, s, "Vehicle Number: KA05MN0001")
}

func TestValidateInput(t *testing.T) {
	in := models.PredictionInput{DriverGender: " Male ", DriverAge: 27, StopDuration: "16-30 Min"}
	require.NoError(t, ValidateInput(&in, fixedNow))
	assert.Equal(t, "male", in.DriverGender)
	assert.Equal(t, "2024-03-09", in.StopDate)
	assert.Equal(t, "14:05", in.StopTime)

	bad := []models.PredictionInput{
		{DriverGender: "other", DriverAge: 27, StopDuration: "0-15 Min"},
		{DriverGender: "male", DriverAge: 15, StopDuration: "0-15 Min"},
		{DriverGender: "male", DriverAge: 101, StopDuration: "0-15 Min"},
		{DriverGender: "male", DriverAge: 27},
		{DriverGender: "male", DriverAge: 27, StopDuration: "0-15 Min", StopDate: "03/01/2024"},
		{DriverGender: "male", DriverAge: 27, StopDuration: "0-15 Min", StopTime: "9pm"},
	}
	for i := range bad {
		assert.Error(t, ValidateInput(&bad[i], fixedNow), "case %d", i)
	}
}

func TestStopDurationOptions(t *testing.T) {
	table := &models.Table{
		Columns: []string{"stop_duration"},
		Rows:    [][]any{{"16-30 Min"}, {"0-15 Min"}, {nil}, {"16-30 Min"}, {""}},
	}
	assert.Equal(t, []string{"16-30 Min", "0-15 Min"}, StopDurationOptions(table))
	assert.Equal(t, DefaultStopDurations, StopDurationOptions(models.EmptyTable()))
	assert.Equal(t, DefaultStopDurations, StopDurationOptions(&models.Table{Columns: []string{"x"}, Rows: [][]any{{"a"}}}))
}
