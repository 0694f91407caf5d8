// Package fsworkspace scaffolds a quadra workspace on the local filesystem.
package fsworkspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/ports"
)

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init creates the workspace layout and copies the embedded templates. Existing
// files are kept unless force is set.
func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	dirs := []string{
		filepath.Join(root, "jobs"),
		filepath.Join(root, ".quadra", "logs"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return initError(d, err)
		}
	}

	if err := ensureGitignore(root); err != nil {
		return initError(filepath.Join(root, ".gitignore"), err)
	}

	return fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, "templates/")
		dst := filepath.Join(root, filepath.FromSlash(rel))

		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				return nil
			}
		}

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return initError(dst, err)
		}
		if err := os.WriteFile(dst, b, 0o644); err != nil {
			return initError(dst, err)
		}
		return nil
	})
}

func initError(path string, err error) error {
	return &domain.OpError{Op: "fsworkspace.init", Kind: domain.KindExecution, Path: path, Err: err}
}

const gitignoreHeader = "# quadra"

var gitignoreEntries = []string{
	".quadra/",
}

// ensureGitignore appends the workspace entries that are not already present.
func ensureGitignore(root string) error {
	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		lines := append([]string{gitignoreHeader}, gitignoreEntries...)
		return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			present[trimmed] = true
		}
	}

	var missing []string
	for _, e := range gitignoreEntries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	if !present[gitignoreHeader] {
		out.WriteString("\n" + gitignoreHeader + "\n")
	}
	for _, e := range missing {
		out.WriteString(e + "\n")
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
