// Package query selects values from the JSON form of calculation results.
package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Document converts v into the generic JSON document jsonpath walks.
func Document(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Get evaluates a jsonpath expression against v.
func Get(expr string, v any) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty jsonpath expression")
	}
	doc, err := Document(v)
	if err != nil {
		return nil, err
	}
	return jsonpath.Get(expr, doc)
}

// Select evaluates expr against v and renders the result as text: scalars as-is,
// everything else as compact JSON.
func Select(expr string, v any) (string, error) {
	val, err := Get(expr, v)
	if err != nil {
		return "", fmt.Errorf("query %q: %w", expr, err)
	}
	if IsEmpty(val) {
		return "", fmt.Errorf("query %q: no value found", expr)
	}
	return ToString(val)
}

// IsEmpty reports whether a jsonpath result carries no value.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

// ToString renders a jsonpath result. Single-element arrays are unwrapped.
func ToString(v any) (string, error) {
	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			return "", fmt.Errorf("empty array")
		}
		if len(arr) == 1 {
			return ToString(arr[0])
		}
		b, err := json.Marshal(arr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64, bool:
		return fmt.Sprint(t), nil
	case nil:
		return "", fmt.Errorf("value is null")
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
