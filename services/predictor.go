package services

import (
	"fmt"
	"strings"
	"time"

	"securecheck/models"
)

const (
	FallbackOutcome   = "warning"
	FallbackViolation = "speeding"
)

// DefaultStopDurations is offered when the dataset cannot supply its own.
var DefaultStopDurations = []string{"0-15 Min", "16-30 Min", "30+ Min"}

// Predict filters records to those agreeing with in on gender, age, search
// flag, drug flag and stop duration, and returns the most common outcome and
// violation among them. NULL cells do not count; empty strings do. Ties go to
// the lexicographically smallest value. A column with nothing to count takes
// its fallback and marks the prediction as Fallback.
func Predict(records []models.StopRecord, in models.PredictionInput, now time.Time) models.Prediction {
	age := float64(in.DriverAge)
	var outcomes, violations []string
	matches := 0
	for _, r := range records {
		if r.DriverGender != in.DriverGender ||
			r.DriverAge != age ||
			r.SearchConducted != in.SearchConducted ||
			r.DrugsRelatedStop != in.DrugsRelatedStop ||
			r.StopDuration != in.StopDuration {
			continue
		}
		matches++
		if !r.OutcomeNull {
			outcomes = append(outcomes, r.StopOutcome)
		}
		if !r.ViolationNull {
			violations = append(violations, r.Violation)
		}
	}

	p := models.Prediction{Matches: matches}
	outcome, okOutcome := plurality(outcomes)
	violation, okViolation := plurality(violations)
	if !okOutcome {
		outcome = FallbackOutcome
	}
	if !okViolation {
		violation = FallbackViolation
	}
	p.Outcome, p.Violation = outcome, violation
	p.Fallback = !okOutcome || !okViolation

	if p.Fallback {
		predictionsTotal.WithLabelValues("fallback").Inc()
	} else {
		predictionsTotal.WithLabelValues("matched").Inc()
	}
	p.Summary = Summarize(in, p, now)
	return p
}

// plurality returns the most frequent value, smallest first on ties. It
// reports false for no values.
func plurality(values []string) (string, bool) {
	counts := make(map[string]int, len(values))
	best, bestN := "", 0
	for _, v := range values {
		counts[v]++
		n := counts[v]
		if n > bestN || (n == bestN && v < best) {
			best, bestN = v, n
		}
	}
	return best, bestN > 0
}

// Summarize renders the prediction as the sentence shown under the form.
func Summarize(in models.PredictionInput, p models.Prediction, now time.Time) string {
	date, clock := in.StopDate, in.StopTime
	if date == "" {
		date = now.Format(time.DateOnly)
	}
	if t, err := time.Parse("15:04", in.StopTime); err == nil {
		clock = t.Format("03:04 PM")
	} else if clock == "" {
		clock = now.Format("03:04 PM")
	}

	search := "NO search was conducted"
	if in.SearchConducted {
		search = "A search was conducted"
	}
	drugs := "was not drug related"
	if in.DrugsRelatedStop {
		drugs = "was drug-related"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Predicted Violation: %s\n", p.Violation)
	fmt.Fprintf(&b, "Predicted Stop Outcome: %s\n", p.Outcome)
	fmt.Fprintf(&b, "A %d-year-old %s driver in %s was stopped at %s on %s.\n",
		in.DriverAge, in.DriverGender, in.CountryName, clock, date)
	fmt.Fprintf(&b, "%s, and the stop %s.\n", search, drugs)
	fmt.Fprintf(&b, "Stop Duration: %s\n", in.StopDuration)
	fmt.Fprintf(&b, "Vehicle Number: %s", in.VehicleNumber)
	return b.String()
}

// StopDurationOptions lists the distinct stop durations of t in first-seen
// order, or the defaults when t has none.
func StopDurationOptions(t *models.Table) []string {
	idx := t.ColumnIndex("stop_duration")
	if t.Empty() || idx < 0 {
		return append([]string(nil), DefaultStopDurations...)
	}
	seen := map[string]bool{}
	var opts []string
	for _, row := range t.Rows {
		if idx >= len(row) || row[idx] == nil {
			continue
		}
		v := models.AsString(row[idx])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		opts = append(opts, v)
	}
	if len(opts) == 0 {
		return append([]string(nil), DefaultStopDurations...)
	}
	return opts
}

// ValidateInput checks what binding tags cannot and fills blank date and time.
func ValidateInput(in *models.PredictionInput, now time.Time) error {
	in.DriverGender = strings.ToLower(strings.TrimSpace(in.DriverGender))
	if in.DriverGender != "male" && in.DriverGender != "female" {
		return fmt.Errorf("driver_gender must be male or female")
	}
	if in.DriverAge < 16 || in.DriverAge > 100 {
		return fmt.Errorf("driver_age must be between 16 and 100")
	}
	if strings.TrimSpace(in.StopDuration) == "" {
		return fmt.Errorf("stop_duration is required")
	}
	if in.StopDate == "" {
		in.StopDate = now.Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, in.StopDate); err != nil {
		return fmt.Errorf("stop_date must be YYYY-MM-DD")
	}
	if in.StopTime == "" {
		in.StopTime = now.Format("15:04")
	} else if _, err := time.Parse("15:04", in.StopTime); err != nil {
		return fmt.Errorf("stop_time must be HH:MM")
	}
	return nil
}
