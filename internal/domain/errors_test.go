package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "sampler.sample",
		Kind: KindInvalidExpression,
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindInvalidExpression {
		t.Fatalf("expected kind %s", KindInvalidExpression)
	}
}

func TestOpErrorMessageIncludesFieldAndPath(t *testing.T) {
	err := &OpError{
		Op:    "usecase.parse_input",
		Kind:  KindInvalidNumericInput,
		Path:  "jobs/smoke.yaml",
		Field: "lower",
		Err:   errors.New("bad"),
	}

	msg := err.Error()
	for _, want := range []string{"usecase.parse_input", "invalid_numeric_input", "path=jobs/smoke.yaml", "field=lower", "bad"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func TestNilOpError(t *testing.T) {
	var err *OpError
	if err.Error() != "<nil>" {
		t.Fatalf("expected <nil>, got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Fatalf("expected nil unwrap")
	}
}

func TestIsKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("job sine: %w", &OpError{Op: "search", Kind: KindSearchExhausted})

	if !IsKind(err, KindSearchExhausted) {
		t.Fatalf("expected IsKind to match wrapped error")
	}
	if IsKind(err, KindCanceled) {
		t.Fatalf("expected IsKind to reject other kinds")
	}
	if KindOf(err) != KindSearchExhausted {
		t.Fatalf("expected KindOf=%s, got %s", KindSearchExhausted, KindOf(err))
	}
	if KindOf(errors.New("plain")) != "" {
		t.Fatalf("expected empty kind for plain error")
	}
}

func TestIsInputKind(t *testing.T) {
	if !IsInputKind(KindInvalidTolerance) {
		t.Fatalf("expected tolerance to be an input kind")
	}
	if IsInputKind(KindSearchExhausted) {
		t.Fatalf("expected search_exhausted not to be an input kind")
	}
}
