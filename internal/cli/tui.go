package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/quadra/internal/infra/fsworkspace"
	"github.com/aalvaropc/quadra/internal/infra/logger"
	"github.com/aalvaropc/quadra/internal/infra/workspacefinder"
	"github.com/aalvaropc/quadra/internal/ui/tui"
)

func tuiCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive calculator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, g)
		},
	}
}

func runTUI(_ *cobra.Command, g *globalFlags) error {
	ws, err := loadWorkspace(g.workspace)
	if err != nil {
		return err
	}

	var calc tui.Calculator = newEngine(ws.cfg)
	if strings.TrimSpace(g.remote) != "" {
		calc = tui.FromCalculator(newCalculator(g, ws))
	}

	return tui.Run(tui.Deps{
		Calculator:           calc,
		WorkspaceLocator:     workspacefinder.NewFinder(),
		WorkspaceInitializer: fsworkspace.NewInitializer(),
		Logger:               logger.For("tui"),
		Debug:                g.debug,
	})
}
