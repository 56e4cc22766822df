// ABOUTME: Generic tabular result type for canned-query pass-throughs.
// ABOUTME: Serializes to an array of row-objects with JSON-safe values.
package analysis

import (
	"encoding/json"
	"math"
	"time"
)

// Table is an ordered tabular result: named columns and rows of values.
// It is the one pass-through shape for canned store queries; computed
// analyses use their own typed result structs.
type Table struct {
	Columns []string
	Rows    [][]any
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds one row. The caller must supply one value per column.
func (t *Table) Append(values ...any) {
	t.Rows = append(t.Rows, values)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// MarshalJSON renders the table as an array of row-objects. Timestamps
// become ISO-8601 strings; non-finite floats become null.
func (t *Table) MarshalJSON() ([]byte, error) {
	rows := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		obj := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				obj[col] = jsonValue(row[i])
			}
		}
		rows = append(rows, obj)
	}
	return json.Marshal(rows)
}

// jsonValue converts a cell to a JSON-safe value: ISO-8601 timestamps,
// finite numbers or null, and plain scalars unchanged.
func jsonValue(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x.Format(time.RFC3339)
	case *time.Time:
		if x == nil {
			return nil
		}
		return x.Format(time.RFC3339)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case float32:
		return jsonValue(float64(x))
	case *float64:
		if x == nil {
			return nil
		}
		return jsonValue(*x)
	case []byte:
		return string(x)
	default:
		return v
	}
}
