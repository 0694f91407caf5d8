package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/infra/gvalexpr"
	"github.com/aalvaropc/quadra/internal/infra/httpclient"
	"github.com/aalvaropc/quadra/internal/infra/logger"
	"github.com/aalvaropc/quadra/internal/infra/metrics"
	"github.com/aalvaropc/quadra/internal/infra/workspacefinder"
	"github.com/aalvaropc/quadra/internal/infra/yamlbatch"
	"github.com/aalvaropc/quadra/internal/ports"
	"github.com/aalvaropc/quadra/internal/usecase"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config
	// found is false when no quadra.yaml was located and defaults are in use.
	found bool

	batches ports.BatchLoader
}

// loadWorkspace resolves the workspace root. Outside a workspace the current
// directory is used with default settings, so one-off calculations still work.
func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, found, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		if !domain.IsKind(err, domain.KindNotFound) {
			return nil, err
		}
		found = false
	}

	return &workspaceCtx{
		root:    root,
		cfg:     cfg,
		found:   found,
		batches: yamlbatch.NewLoader(),
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, bool, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", false, fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, true, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("get working directory: %w", err)
	}

	root, err := workspacefinder.NewFinder().FindRoot(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return wd, false, nil
		}
		return "", false, err
	}
	return root, true, nil
}

// logRoot picks the directory that receives .quadra/logs. Without a workspace
// nothing is written unless debug logging was requested.
func logRoot(workspaceFlag string, debug bool) (string, bool) {
	root, found, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return "", false
	}
	return root, found || debug
}

// newCalculator returns the remote client when --remote is set and a local
// engine otherwise.
func newCalculator(g *globalFlags, ws *workspaceCtx) ports.Calculator {
	if remote := strings.TrimSpace(g.remote); remote != "" {
		return httpclient.NewCalculator(remote,
			httpclient.WithClient(httpclient.New(httpclient.DefaultConfig())),
		)
	}
	return newEngine(ws.cfg)
}

func newEngine(cfg domain.Config) *usecase.Engine {
	return usecase.NewEngine(gvalexpr.New(), cfg,
		usecase.WithLogger(logger.For("engine")),
		usecase.WithObserver(metrics.NewRecorder()),
	)
}

func resolveBatchPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("batch file is required")
	}

	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	jobsDir := filepath.Join(ws.root, yamlbatch.DefaultJobsDir)

	if hasYAMLExt(in) {
		for _, p := range []string{filepath.Join(jobsDir, in), filepath.Join(ws.root, in)} {
			if fileExists(p) {
				return p, nil
			}
		}
	}

	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(jobsDir, in+ext)
		if fileExists(p) {
			return p, nil
		}
	}

	// Last resort: match by the batch "name" field.
	refs, err := ws.batches.ListBatches(ws.root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", fmt.Errorf("batch %q not found in %q", in, jobsDir)
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
