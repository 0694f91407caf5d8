// Package yamlbatch loads batch job files written in YAML.
package yamlbatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/ports"
)

// DefaultJobsDir is where `quadra init` writes example batches.
const DefaultJobsDir = "jobs"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type Loader struct {
	jobsDir string
}

type Option func(*Loader)

func WithJobsDir(dir string) Option {
	return func(l *Loader) { l.jobsDir = dir }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{jobsDir: DefaultJobsDir}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.BatchLoader = (*Loader)(nil)

func (l *Loader) LoadBatch(path string) (domain.Batch, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Batch{}, &domain.OpError{
			Op:   "yamlbatch.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var yb yamlBatch
	if err := yaml.Unmarshal(b, &yb); err != nil {
		return domain.Batch{}, &domain.OpError{
			Op:   "yamlbatch.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if err := validate.Struct(yb); err != nil {
		return domain.Batch{}, validationError(path, err)
	}
	return mapBatch(path, yb), nil
}

// ListBatches returns the YAML files in <root>/<jobsDir>, sorted by name.
func (l *Loader) ListBatches(root string) ([]domain.BatchRef, error) {
	dir := filepath.Join(root, l.jobsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlbatch.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.BatchRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		p := filepath.Join(dir, name)
		n, _ := readBatchName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}
		refs = append(refs, domain.BatchRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func readBatchName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

type yamlBatch struct {
	Name string    `yaml:"name" validate:"required"`
	Jobs []yamlJob `yaml:"jobs" validate:"required,min=1,dive"`
}

type yamlJob struct {
	Name         string               `yaml:"name" validate:"required"`
	Mode         string               `yaml:"mode" validate:"required,oneof=fixed tolerance"`
	Expression   string               `yaml:"expression" validate:"required"`
	Lower        string               `yaml:"lower" validate:"required"`
	Upper        string               `yaml:"upper" validate:"required"`
	Subintervals string               `yaml:"subintervals" validate:"required_if=Mode fixed"`
	Tolerance    string               `yaml:"tolerance" validate:"required_if=Mode tolerance"`
	Checks       map[string]yamlCheck `yaml:"checks"`
}

type yamlCheck struct {
	Exists bool     `yaml:"exists"`
	Eq     any      `yaml:"eq"`
	Gt     *float64 `yaml:"gt"`
	Lt     *float64 `yaml:"lt"`
}

func mapBatch(path string, yb yamlBatch) domain.Batch {
	out := domain.Batch{
		Name: yb.Name,
		Path: path,
		Jobs: make([]domain.Job, 0, len(yb.Jobs)),
	}
	for _, j := range yb.Jobs {
		job := domain.Job{
			Name: j.Name,
			Input: domain.CalcInput{
				Mode:         domain.Mode(j.Mode),
				Expression:   j.Expression,
				Lower:        j.Lower,
				Upper:        j.Upper,
				Subintervals: j.Subintervals,
				Tolerance:    j.Tolerance,
			},
		}
		if len(j.Checks) > 0 {
			job.Checks = make(map[string]domain.CheckSpec, len(j.Checks))
			for p, c := range j.Checks {
				job.Checks[p] = domain.CheckSpec{Exists: c.Exists, Eq: c.Eq, Gt: c.Gt, Lt: c.Lt}
			}
		}
		out.Jobs = append(out.Jobs, job)
	}
	return out
}

// validationError reports the first failing field using its YAML path, e.g.
// "jobs[1].tolerance".
func validationError(path string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &domain.OpError{Op: "yamlbatch.validate", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}

	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	return &domain.OpError{
		Op:    "yamlbatch.validate",
		Kind:  domain.KindInvalidConfig,
		Path:  path,
		Field: field,
		Err:   fmt.Errorf("field %s: %s: %w", field, describe(fe), domain.ErrInvalidConfig),
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("needs at least %s entries", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
