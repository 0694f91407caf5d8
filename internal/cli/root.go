package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/quadra/internal/buildinfo"
	"github.com/aalvaropc/quadra/internal/infra/logger"
)

// Execute runs the quadra command tree and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		var se silentError
		if !errors.As(err, &se) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// silentError signals failure after the command already reported it.
type silentError struct{ err error }

func (e silentError) Error() string { return e.err.Error() }
func (e silentError) Unwrap() error { return e.err }

type globalFlags struct {
	debug     bool
	workspace string
	remote    string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	var cleanup func() error

	cmd := &cobra.Command{
		Use:           "quadra",
		Short:         "quadra compares the midpoint and trapezoid rules on definite integrals",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			root, ok := logRoot(g.workspace, g.debug)
			if !ok {
				return nil
			}
			// Logging is best effort; a failed setup leaves the discard logger.
			cleanup, _ = logger.Setup(logger.Config{Root: root, Debug: g.debug})
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if cleanup != nil {
				return cleanup()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, g)
		},
	}

	cmd.SetVersionTemplate(buildinfo.String() + "\n")

	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable verbose logging to .quadra/logs/quadra.log")
	cmd.PersistentFlags().StringVarP(&g.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.PersistentFlags().StringVar(&g.remote, "remote", "", "Run calculations on a quadra server (e.g. http://localhost:8080)")

	cmd.AddCommand(
		fixedCmd(g),
		toleranceCmd(g),
		batchCmd(g),
		jobsCmd(g),
		serveCmd(g),
		tuiCmd(g),
		initCmd(),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
