package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/infra/logger"
	"github.com/aalvaropc/quadra/internal/report"
	"github.com/aalvaropc/quadra/internal/usecase"
)

func batchCmd(g *globalFlags) *cobra.Command {
	var workers int
	var format string

	c := &cobra.Command{
		Use:   "batch FILE",
		Short: "Run every job of a batch file and check its expectations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}

			path, err := resolveBatchPath(ws, args[0])
			if err != nil {
				return err
			}

			if workers <= 0 {
				workers = ws.cfg.Batch.Workers
			}

			uc := usecase.NewRunBatch(ws.batches, newCalculator(g, ws), workers, logger.For("batch"))
			res, err := uc.Execute(cmd.Context(), path)
			if err != nil {
				return err
			}

			if err := printBatch(cmd.OutOrStdout(), res, format); err != nil {
				return err
			}

			if fails := res.Failures(); fails > 0 {
				return fmt.Errorf("batch failed (%d failed job(s))", fails)
			}
			return nil
		},
	}

	c.Flags().IntVar(&workers, "workers", 0, "Concurrent jobs (defaults to quadra.batch.workers)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printBatch(w io.Writer, res domain.BatchResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"failures": res.Failures(),
			"batch":    res,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyBatch(w, res)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyBatch(w io.Writer, res domain.BatchResult) {
	total := res.EndedAt.Sub(res.StartedAt)
	if res.StartedAt.IsZero() || res.EndedAt.IsZero() {
		total = 0
	}

	fmt.Fprintf(w, "Batch:    %s\n", res.Name)
	fmt.Fprintf(w, "File:     %s\n", filepath.Base(res.Path))
	fmt.Fprintf(w, "Started:  %s\n", res.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration: %s\n", total)
	fmt.Fprintf(w, "Failed:   %d/%d\n", res.Failures(), len(res.Results))
	fmt.Fprintln(w)

	for _, r := range res.Results {
		status := "OK"
		if r.Failed() {
			status = "FAIL"
		}
		fmt.Fprintf(w, "- [%s] %s\n", status, r.Name)

		if r.Error != nil {
			fmt.Fprintf(w, "  error: %s (%s)\n", r.Error.Message, r.Error.Kind)
		}
		if r.Calculation != nil {
			fmt.Fprintf(w, "  %s\n", summary(*r.Calculation))
		}

		if len(r.Checks) > 0 {
			pass, fail := countCheckPassFail(r.Checks)
			fmt.Fprintf(w, "  checks: %d pass / %d fail\n", pass, fail)
			for _, c := range r.Checks {
				mark := "✓"
				if !c.Passed {
					mark = "✗"
				}
				fmt.Fprintf(w, "    %s %s: %s\n", mark, c.Name, c.Message)
			}
		}
		fmt.Fprintln(w)
	}
}

// summary condenses a calculation into one line for batch listings.
func summary(calc domain.Calculation) string {
	switch {
	case calc.Fixed != nil:
		f := calc.Fixed
		return fmt.Sprintf("n=%d midpoint=%s trapezoid=%s verdict=%s",
			f.Midpoint.Subintervals, report.Number(f.Midpoint.Area), report.Number(f.Trapezoid.Area), f.Verdict)
	case calc.Tolerance != nil:
		t := calc.Tolerance
		return fmt.Sprintf("tol=%s midpoint n=%d trapezoid n=%d verdict=%s",
			report.Number(t.Tolerance), t.Midpoint.Subintervals, t.Trapezoid.Subintervals, t.Verdict)
	default:
		return "(no result)"
	}
}

func countCheckPassFail(in []domain.CheckResult) (pass int, fail int) {
	for _, c := range in {
		if c.Passed {
			pass++
		} else {
			fail++
		}
	}
	return pass, fail
}

func jobsCmd(g *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "jobs",
		Short: "Manage batch files in a workspace",
	}
	c.AddCommand(jobsListCmd(g))
	return c
}

func jobsListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List batch files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			refs, err := ws.batches.ListBatches(ws.root)
			if err != nil && !domain.IsKind(err, domain.KindNotFound) {
				return err
			}
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no batch files found)")
				return nil
			}

			fmt.Fprintf(out, "Workspace: %s\n\n", ws.root)
			for _, r := range refs {
				rel, _ := filepath.Rel(ws.root, r.Path)
				fmt.Fprintf(out, "- %s  (%s)\n", r.Name, rel)
			}
			return nil
		},
	}
}
