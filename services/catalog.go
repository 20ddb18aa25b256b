package services

import (
	"context"
	"fmt"

	"securecheck/models"
)

const (
	queryTotalStops          = `SELECT COUNT(*) AS total_stops FROM cleaned_data_ok`
	queryStopsByViolation    = `SELECT violation, COUNT(*) AS count FROM cleaned_data_ok GROUP BY violation ORDER BY count DESC`
	queryStopsByOutcome      = `SELECT stop_outcome, COUNT(*) AS count FROM cleaned_data_ok GROUP BY stop_outcome`
	queryAverageAge          = `SELECT AVG(driver_age) AS average_age FROM cleaned_data_ok`
	queryTopSearchTypes      = `SELECT search_type, COUNT(*) AS count FROM cleaned_data_ok WHERE search_type != '' GROUP BY search_type ORDER BY count DESC LIMIT 5`
	queryStopsByGender       = `SELECT driver_gender, COUNT(*) AS count FROM cleaned_data_ok GROUP BY driver_gender`
	queryArrestViolationRank = `SELECT violation, COUNT(*) AS count FROM cleaned_data_ok WHERE LOWER(stop_outcome) LIKE '%arrest%' GROUP BY violation ORDER BY count DESC`
)

type CatalogEntry struct {
	Name string `json:"name"`
	SQL  string `json:"sql"`
}

// catalog is in display order.
var catalog = []CatalogEntry{
	{"Total Number of Police Stops", queryTotalStops},
	{"Count of Stops by Violation Type", queryStopsByViolation},
	{"Number of Arrests vs. Warnings", queryStopsByOutcome},
	{"Average Age of Drivers Stopped", queryAverageAge},
	{"Top 5 Most Frequent Search Types", queryTopSearchTypes},
	{"Count of Stops by Gender", queryStopsByGender},
	{"Most Common Violation for Arrests", queryArrestViolationRank},
}

type UnknownQueryError struct {
	Name string
}

func (e *UnknownQueryError) Error() string {
	return fmt.Sprintf("unknown query %q", e.Name)
}

type Catalog struct {
	store *Store
}

func NewCatalog(store *Store) *Catalog {
	return &Catalog{store: store}
}

func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

func (c *Catalog) Names() []string {
	names := make([]string, len(catalog))
	for i, e := range catalog {
		names[i] = e.Name
	}
	return names
}

func (c *Catalog) Lookup(name string) (CatalogEntry, bool) {
	for _, e := range catalog {
		if e.Name == name {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// Run executes the named query. Database failures are reported to r and come
// back as an empty table; only an unknown name is an error.
func (c *Catalog) Run(ctx context.Context, name string, r Reporter) (*models.Table, error) {
	entry, ok := c.Lookup(name)
	if !ok {
		return nil, &UnknownQueryError{Name: name}
	}
	return c.store.Execute(ctx, entry.SQL, r), nil
}
