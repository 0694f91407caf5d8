package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/ports"
)

// ConfigFile marks a quadra workspace root.
const ConfigFile = "quadra.yaml"

// Finder locates a quadra workspace root by searching for quadra.yaml upward.
type Finder struct {
	ConfigFile string
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: ConfigFile}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// A file path starts the walk at its directory.
	if info, statErr := os.Stat(abs); statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	name := f.ConfigFile
	if name == "" {
		name = ConfigFile
	}

	for cur := filepath.Clean(abs); ; {
		if _, err := os.Stat(filepath.Join(cur, name)); err == nil {
			return cur, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "workspacefinder.findroot",
				Kind: domain.KindNotFound,
				Path: abs,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}
