// Package assert evaluates batch checks against the JSON form of a calculation.
package assert

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/PaesslerAG/jsonpath"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/usecase/query"
)

// Evaluate applies every check to calc. Paths are visited in sorted order so the
// output is stable.
func Evaluate(checks map[string]domain.CheckSpec, calc domain.Calculation) []domain.CheckResult {
	if len(checks) == 0 {
		return nil
	}

	paths := make([]string, 0, len(checks))
	for p := range checks {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var out []domain.CheckResult

	doc, err := query.Document(calc)
	if err != nil {
		for _, p := range paths {
			out = append(out, jsonPathChecks(p, checks[p], nil, fmt.Errorf("calculation is not encodable: %w", err))...)
		}
		return out
	}

	for _, p := range paths {
		val, getErr := jsonpath.Get(p, doc)
		out = append(out, jsonPathChecks(p, checks[p], val, getErr)...)
	}
	return out
}

func jsonPathChecks(expr string, c domain.CheckSpec, val any, getErr error) []domain.CheckResult {
	var out []domain.CheckResult
	if c.Exists {
		out = append(out, checkExists(expr, val, getErr))
	}
	if c.Eq != nil {
		out = append(out, checkEq(expr, val, getErr, c.Eq))
	}
	if c.Gt != nil {
		out = append(out, checkGt(expr, val, getErr, *c.Gt))
	}
	if c.Lt != nil {
		out = append(out, checkLt(expr, val, getErr, *c.Lt))
	}
	return out
}

func checkExists(expr string, val any, getErr error) domain.CheckResult {
	if getErr != nil {
		return fail("jsonpath.exists", "invalid jsonpath %q: %v", expr, getErr)
	}
	if query.IsEmpty(val) {
		return fail("jsonpath.exists", "jsonpath %q: expected value to exist, got empty", expr)
	}
	return pass("jsonpath.exists", "jsonpath %q exists", expr)
}

func checkEq(expr string, val any, getErr error, expected any) domain.CheckResult {
	if getErr != nil {
		return fail("jsonpath.eq", "jsonpath %q: %v", expr, getErr)
	}
	got, err := query.ToString(val)
	if err != nil {
		return fail("jsonpath.eq", "jsonpath %q: %v", expr, err)
	}
	want := scalarString(expected)
	if got == want {
		return pass("jsonpath.eq", "jsonpath %q eq %q", expr, want)
	}
	return fail("jsonpath.eq", "jsonpath %q: expected %q, got %q", expr, want, got)
}

func checkGt(expr string, val any, getErr error, threshold float64) domain.CheckResult {
	if getErr != nil {
		return fail("jsonpath.gt", "jsonpath %q: %v", expr, getErr)
	}
	f, err := toFloat64(val)
	if err != nil {
		return fail("jsonpath.gt", "jsonpath %q: %v", expr, err)
	}
	if f > threshold {
		return pass("jsonpath.gt", "jsonpath %q: %v > %v", expr, f, threshold)
	}
	return fail("jsonpath.gt", "jsonpath %q: expected > %v, got %v", expr, threshold, f)
}

func checkLt(expr string, val any, getErr error, threshold float64) domain.CheckResult {
	if getErr != nil {
		return fail("jsonpath.lt", "jsonpath %q: %v", expr, getErr)
	}
	f, err := toFloat64(val)
	if err != nil {
		return fail("jsonpath.lt", "jsonpath %q: %v", expr, err)
	}
	if f < threshold {
		return pass("jsonpath.lt", "jsonpath %q: %v < %v", expr, f, threshold)
	}
	return fail("jsonpath.lt", "jsonpath %q: expected < %v, got %v", expr, threshold, f)
}

func pass(name, format string, args ...any) domain.CheckResult {
	return domain.CheckResult{Name: name, Passed: true, Message: fmt.Sprintf(format, args...)}
}

func fail(name, format string, args ...any) domain.CheckResult {
	return domain.CheckResult{Name: name, Passed: false, Message: fmt.Sprintf(format, args...)}
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}

func toFloat64(val any) (float64, error) {
	if arr, ok := val.([]any); ok && len(arr) == 1 {
		val = arr[0]
	}
	switch v := val.(type) {
	case float64:
		return v, nil
	case string:
		// Non-finite values are encoded as strings.
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value of type %T is not numeric", val)
	}
}
