// Package patch builds partial-update maps from decoded JSON request
// bodies. A field absent from the input is left untouched; a field present
// with a null value is set to NULL. Column names come from a fixed
// per-entity allow-list, so only values ever reach the database as
// parameters.
package patch

import (
	"fmt"
	"math"

	"github.com/crmplanner/api/models"
)

// Kind describes how a column's value is coerced from JSON.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	Date
)

// Column is one allow-listed updatable column.
type Column struct {
	Name string
	Kind Kind
}

// Build filters input through the column allow-list, coercing each present
// value to its column kind. Unknown keys are ignored. The result feeds
// gorm's Updates; an empty result means a no-op update.
func Build(input map[string]interface{}, columns []Column) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	for _, col := range columns {
		raw, present := input[col.Name]
		if !present {
			continue
		}
		if raw == nil {
			out[col.Name] = nil
			continue
		}
		value, err := coerce(raw, col.Kind)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s", col.Name)
		}
		out[col.Name] = value
	}
	return out, nil
}

func coerce(raw interface{}, kind Kind) (interface{}, error) {
	switch kind {
	case String:
		if s, ok := raw.(string); ok {
			return s, nil
		}
	case Int:
		// encoding/json decodes all numbers as float64.
		if f, ok := raw.(float64); ok && f == math.Trunc(f) {
			return int64(f), nil
		}
	case Float:
		if f, ok := raw.(float64); ok {
			return f, nil
		}
	case Bool:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
	case Date:
		if s, ok := raw.(string); ok {
			return models.ParseDate(s)
		}
	}
	return nil, fmt.Errorf("unexpected type %T", raw)
}
