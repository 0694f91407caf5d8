package usecase

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/ports"
)

// InitWorkspace scaffolds quadra.yaml and the jobs directory under a root.
type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

func (uc *InitWorkspace) Execute(root string, force bool) error {
	root = strings.TrimSpace(root)
	if root == "" {
		return &domain.OpError{
			Op:    "usecase.init",
			Kind:  domain.KindInvalidConfig,
			Field: "path",
			Err:   errors.New("workspace root is empty"),
		}
	}
	return uc.initializer.Init(domain.WorkspaceSpec{Root: filepath.Clean(root)}, force)
}
