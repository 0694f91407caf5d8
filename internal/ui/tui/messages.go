package tui

import (
	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/usecase/search"
)

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

// progressMsg reports one tolerance search iteration.
type progressMsg struct {
	step search.Step
}

type calcDoneMsg struct {
	calc domain.Calculation
	err  error
}
