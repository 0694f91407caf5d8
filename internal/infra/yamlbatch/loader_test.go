package yamlbatch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/quadra/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadBatch_Valid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "smoke.yaml")
	writeFile(t, p, `
name: smoke
jobs:
  - name: parabola
    mode: fixed
    expression: "x^2"
    lower: "0"
    upper: "1"
    subintervals: "4"
    checks:
      "$.fixed.verdict": { eq: "midpoint" }
      "$.fixed.midpoint.subintervals": { eq: 4 }
  - name: sine
    mode: tolerance
    expression: "sin(x)"
    lower: "0"
    upper: "3.14159"
    tolerance: "0.001"
    checks:
      "$.tolerance.true_value": { gt: 1.99, lt: 2.01 }
      "$.tolerance.verdict": { exists: true }
`)

	b, err := NewLoader().LoadBatch(p)
	if err != nil {
		t.Fatalf("LoadBatch error: %v", err)
	}
	if b.Name != "smoke" || b.Path != p {
		t.Fatalf("unexpected batch metadata: %q %q", b.Name, b.Path)
	}
	if len(b.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(b.Jobs))
	}

	fixed := b.Jobs[0]
	if fixed.Input.Mode != domain.ModeFixed || fixed.Input.Subintervals != "4" || fixed.Input.Expression != "x^2" {
		t.Fatalf("unexpected fixed input: %#v", fixed.Input)
	}
	if fixed.Checks["$.fixed.verdict"].Eq != "midpoint" {
		t.Fatalf("expected eq check, got %#v", fixed.Checks)
	}
	if fixed.Checks["$.fixed.midpoint.subintervals"].Eq != 4 {
		t.Fatalf("expected integer eq check, got %#v", fixed.Checks["$.fixed.midpoint.subintervals"].Eq)
	}

	sine := b.Jobs[1]
	c := sine.Checks["$.tolerance.true_value"]
	if c.Gt == nil || *c.Gt != 1.99 || c.Lt == nil || *c.Lt != 2.01 {
		t.Fatalf("expected gt/lt thresholds, got %#v", c)
	}
	if !sine.Checks["$.tolerance.verdict"].Exists {
		t.Fatalf("expected exists check")
	}
}

func TestLoadBatch_ValidationErrors(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", "jobs:\n  - {name: a, mode: fixed, expression: x, lower: '0', upper: '1', subintervals: '2'}\n", "name"},
		{"no jobs", "name: empty\njobs: []\n", "jobs"},
		{"bad mode", "name: b\njobs:\n  - {name: a, mode: adaptive, expression: x, lower: '0', upper: '1'}\n", "jobs[0].mode"},
		{"fixed without count", "name: b\njobs:\n  - {name: a, mode: fixed, expression: x, lower: '0', upper: '1'}\n", "jobs[0].subintervals"},
		{"tolerance without tol", "name: b\njobs:\n  - {name: a, mode: tolerance, expression: x, lower: '0', upper: '1', subintervals: '3'}\n", "jobs[0].tolerance"},
		{"missing expression", "name: b\njobs:\n  - {name: a, mode: fixed, lower: '0', upper: '1', subintervals: '3'}\n", "jobs[0].expression"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "b.yaml")
			writeFile(t, p, tc.body)

			_, err := NewLoader().LoadBatch(p)
			if !domain.IsKind(err, domain.KindInvalidConfig) {
				t.Fatalf("expected invalid_config, got %v", err)
			}
			if !errors.Is(err, domain.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig in chain, got %v", err)
			}
			var oe *domain.OpError
			if !errors.As(err, &oe) || oe.Field != tc.field {
				t.Fatalf("expected field %q, got %v", tc.field, err)
			}
			if !strings.Contains(err.Error(), p) {
				t.Fatalf("expected path in error, got %v", err)
			}
		})
	}
}

func TestLoadBatch_InvalidYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.yaml")
	writeFile(t, p, "name: [unterminated\n")

	_, err := NewLoader().LoadBatch(p)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestLoadBatch_NotFound(t *testing.T) {
	_, err := NewLoader().LoadBatch(filepath.Join(t.TempDir(), "missing.yaml"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestListBatches(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "jobs", "b.yaml"), "name: zeta\njobs: []\n")
	writeFile(t, filepath.Join(root, "jobs", "a.yml"), "jobs: []\n")
	writeFile(t, filepath.Join(root, "jobs", "notes.txt"), "ignored")

	refs, err := NewLoader().ListBatches(root)
	if err != nil {
		t.Fatalf("ListBatches error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %#v", refs)
	}
	if refs[0].Name != "a" || refs[1].Name != "zeta" {
		t.Fatalf("expected sorted names [a zeta], got %q %q", refs[0].Name, refs[1].Name)
	}
}

func TestListBatches_MissingDir(t *testing.T) {
	_, err := NewLoader(WithJobsDir("nope")).ListBatches(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
