package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/usecase/search"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := deps.WorkspaceInitializer.Init(domain.WorkspaceSpec{Root: root}, false)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}

// listenCalc waits for the next event of a running calculation. The channel is
// closed after the final calcDoneMsg.
func listenCalc(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return calcDoneMsg{err: errors.New("calculation channel closed")}
		}
		return msg
	}
}

// startCalcAsync runs one calculation in its own goroutine. Progress events are
// dropped while the UI is behind; the final result never is.
func startCalcAsync(ctx context.Context, calc Calculator, in domain.CalcInput, log *slog.Logger) (chan tea.Msg, tea.Cmd) {
	ch := make(chan tea.Msg, 16)

	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		progress := search.WithProgress(func(s search.Step) error {
			select {
			case ch <- progressMsg{step: s}:
			default:
			}
			return nil
		})

		res, err := calc.CalculateWith(ctx, in, progress)
		if err != nil {
			log.Warn("tui.calc.failed", "mode", string(in.Mode), "kind", string(domain.KindOf(err)), "err", err)
		} else {
			log.Debug("tui.calc.ok", "id", res.ID, "mode", string(in.Mode), "eval_calls", res.EvalCalls)
		}

		// Drain stale progress so the result fits in the buffer.
		for len(ch) == cap(ch) {
			select {
			case <-ch:
			default:
			}
		}
		ch <- calcDoneMsg{calc: res, err: err}
	}()

	return ch, listenCalc(ch)
}
