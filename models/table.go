package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Table is the materialised result of one SQL statement. A table with no rows
// is also what a failed statement produces.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// EmptyTable has no rows and no columns.
func EmptyTable() *Table {
	return &Table{Columns: []string{}, Rows: [][]any{}}
}

func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Slice returns the rows in [offset, offset+limit) sharing the column header.
func (t *Table) Slice(offset, limit int) *Table {
	if t == nil {
		return EmptyTable()
	}
	if offset > len(t.Rows) {
		offset = len(t.Rows)
	}
	end := offset + limit
	if limit < 0 || end > len(t.Rows) {
		end = len(t.Rows)
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[offset:end]}
}

// Cell formats a value for display. NULL renders as an empty string.
func Cell(v any) string {
	return AsString(v)
}

func AsString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.DateTime)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		if x {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(x)
	}
}

func AsInt(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		return x
	case int8:
		return int(x)
	case int16:
		return int(x)
	case int32:
		return int(x)
	case int64:
		return int(x)
	case uint8:
		return int(x)
	case uint16:
		return int(x)
	case uint32:
		return int(x)
	case uint64:
		return int(x)
	case float32:
		return int(x)
	case float64:
		return int(x)
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		s := strings.TrimSpace(AsString(x))
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
		return 0
	}
}

// AsFloat reports false when v cannot be read as a number.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int, int8, int16, int32, int64, uint8, uint16, uint32, uint64:
		return float64(AsInt(x)), true
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(AsString(x)), 64)
		return f, err == nil
	}
}

// AsBool accepts real booleans and the 0/1 encodings the dataset uses.
func AsBool(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string, []byte:
		s := strings.ToLower(strings.TrimSpace(AsString(x)))
		switch s {
		case "1", "true", "t", "yes", "y":
			return true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f != 0
		}
		return false
	default:
		return AsInt(x) != 0
	}
}
