package usecase

import (
	"errors"
	"testing"

	"github.com/aalvaropc/quadra/internal/domain"
)

type fakeInitializer struct {
	got   domain.WorkspaceSpec
	force bool
	calls int
	err   error
}

func (f *fakeInitializer) Init(spec domain.WorkspaceSpec, force bool) error {
	f.calls++
	f.got = spec
	f.force = force
	return f.err
}

func TestInitWorkspace_CleansRoot(t *testing.T) {
	fi := &fakeInitializer{}
	if err := NewInitWorkspace(fi).Execute(" /tmp/ws/ ", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fi.got.Root != "/tmp/ws" || !fi.force {
		t.Fatalf("expected cleaned root and force, got %+v force=%v", fi.got, fi.force)
	}
}

func TestInitWorkspace_EmptyRoot(t *testing.T) {
	fi := &fakeInitializer{}
	err := NewInitWorkspace(fi).Execute("  ", false)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
	if fi.calls != 0 {
		t.Fatalf("expected initializer not to be called")
	}
}

func TestInitWorkspace_PropagatesError(t *testing.T) {
	boom := errors.New("disk full")
	fi := &fakeInitializer{err: boom}
	if err := NewInitWorkspace(fi).Execute("ws", false); !errors.Is(err, boom) {
		t.Fatalf("expected initializer error, got %v", err)
	}
}
