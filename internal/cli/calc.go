package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/report"
	"github.com/aalvaropc/quadra/internal/usecase/query"
)

type calcFlags struct {
	function     string
	lower        string
	upper        string
	subintervals string
	tolerance    string
	format       string
	query        string
}

func fixedCmd(g *globalFlags) *cobra.Command {
	f := &calcFlags{}
	c := &cobra.Command{
		Use:   "fixed",
		Short: "Compare both rules at a fixed number of subintervals",
		Example: `  quadra fixed -f "x^2" --lower 0 --upper 1 -n 4
  quadra fixed -f "sin(x)" --lower 0 --upper 3.14159 -n 10 --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd, g, f, domain.CalcInput{
				Mode:         domain.ModeFixed,
				Expression:   f.function,
				Lower:        f.lower,
				Upper:        f.upper,
				Subintervals: f.subintervals,
			})
		},
	}
	bindCalcFlags(c, f)
	c.Flags().StringVarP(&f.subintervals, "subintervals", "n", "", "Number of subintervals (required)")
	_ = c.MarkFlagRequired("subintervals")
	return c
}

func toleranceCmd(g *globalFlags) *cobra.Command {
	f := &calcFlags{}
	c := &cobra.Command{
		Use:     "tolerance",
		Short:   "Find the fewest subintervals each rule needs to meet a tolerance",
		Example: `  quadra tolerance -f "sin(x)" --lower 0 --upper 3.14159 -t 0.001`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd, g, f, domain.CalcInput{
				Mode:       domain.ModeTolerance,
				Expression: f.function,
				Lower:      f.lower,
				Upper:      f.upper,
				Tolerance:  f.tolerance,
			})
		},
	}
	bindCalcFlags(c, f)
	c.Flags().StringVarP(&f.tolerance, "tolerance", "t", "", "Maximum absolute error against the Simpson reference (required)")
	_ = c.MarkFlagRequired("tolerance")
	return c
}

// bindCalcFlags registers the flags shared by both calculation modes. Values stay
// text so number parsing and its error reporting live in one place.
func bindCalcFlags(c *cobra.Command, f *calcFlags) {
	c.Flags().StringVarP(&f.function, "function", "f", "", "Function of x, e.g. \"x^2 + sin(x)\" (required)")
	c.Flags().StringVar(&f.lower, "lower", "", "Lower bound (required)")
	c.Flags().StringVar(&f.upper, "upper", "", "Upper bound (required)")
	c.Flags().StringVar(&f.format, "format", "pretty", "Output format: pretty|json")
	c.Flags().StringVar(&f.query, "query", "", "JSONPath applied to the JSON result, e.g. $.fixed.verdict")
	_ = c.MarkFlagRequired("function")
	_ = c.MarkFlagRequired("lower")
	_ = c.MarkFlagRequired("upper")
}

func runCalc(cmd *cobra.Command, g *globalFlags, f *calcFlags, in domain.CalcInput) error {
	if err := checkFormat(f.format); err != nil {
		return err
	}

	ws, err := loadWorkspace(g.workspace)
	if err != nil {
		return err
	}

	calc, err := newCalculator(g, ws).Calculate(cmd.Context(), in)
	out := cmd.OutOrStdout()
	if err != nil {
		_ = printFailure(out, err, f.format)
		return silentError{err}
	}

	if f.query != "" {
		return printQuery(out, calc, f.query)
	}
	return printCalculation(out, calc, f.format)
}

func checkFormat(format string) error {
	switch format {
	case "pretty", "", "json":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printCalculation(w io.Writer, calc domain.Calculation, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(calc)
	case "pretty", "":
		_, err := fmt.Fprintln(w, report.Calculation(calc))
		return err
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

type failurePayload struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind,omitempty"`
	Field string           `json:"field,omitempty"`
}

func printFailure(w io.Writer, err error, format string) error {
	if format == "json" {
		p := failurePayload{Error: report.Cause(err), Kind: domain.KindOf(err), Field: fieldOf(err)}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	_, werr := fmt.Fprintln(w, report.Failure(err))
	return werr
}

func printQuery(w io.Writer, calc domain.Calculation, expr string) error {
	doc, err := query.Document(calc)
	if err != nil {
		return err
	}
	s, err := query.Select(expr, doc)
	if err != nil {
		return fmt.Errorf("query %q: %w", expr, err)
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

func fieldOf(err error) string {
	var oe *domain.OpError
	if errors.As(err, &oe) {
		return oe.Field
	}
	return ""
}
