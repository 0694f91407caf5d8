package tui

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/quadra/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

var fieldNames = map[string]string{
	"lower":        "lower bound",
	"upper":        "upper bound",
	"subintervals": "subintervals",
	"tolerance":    "tolerance",
}

// userMessage condenses err into a one-line status for the form.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case domain.KindInvalidExpression:
			return "Invalid function"

		case domain.KindInvalidNumericInput:
			if name, ok := fieldNames[oe.Field]; ok {
				return "Invalid number in " + name
			}
			return "Invalid number"

		case domain.KindInvalidInterval:
			return "Lower bound must be less than upper bound"

		case domain.KindInvalidSubintervalCount:
			return "Subintervals must be a positive integer"

		case domain.KindInvalidTolerance:
			return "Tolerance must be greater than zero"

		case domain.KindSearchExhausted:
			return "Tolerance not reached (raise quadra.search.max_subintervals)"

		case domain.KindCanceled:
			return "Calculation canceled"

		case domain.KindNotFound:
			if strings.Contains(oe.Op, "workspacefinder.findroot") {
				return "Workspace not found"
			}
			return "Not found"

		case domain.KindInvalidConfig:
			if oe.Field == "mode" {
				return "Unknown mode"
			}
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}

			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid config"

		case domain.KindExecution:
			if strings.Contains(oe.Op, "httpclient") {
				return "Remote server unavailable"
			}
			return "Unexpected error (see logs)"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if errors.Is(err, context.Canceled) {
		return "Calculation canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Calculation timed out"
	}
	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
