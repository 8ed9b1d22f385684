package segtree

import (
	"errors"
	"testing"

	"github.com/wyfcoding/rangetree/xerrors"
)

func TestPersistentTreeVersions(t *testing.T) {
	pt, err := NewPersistent(8, 16)
	if err != nil {
		t.Fatalf("NewPersistent failed: %v", err)
	}
	if pt.CurrentVersion() != -1 {
		t.Errorf("CurrentVersion = %d, want -1", pt.CurrentVersion())
	}

	v0, err := pt.PushAdd(2, 10)
	if err != nil {
		t.Fatalf("PushAdd failed: %v", err)
	}
	v1, err := pt.PushAdd(2, 5)
	if err != nil {
		t.Fatalf("PushAdd failed: %v", err)
	}
	v2, err := pt.PushAdd(6, 7)
	if err != nil {
		t.Fatalf("PushAdd failed: %v", err)
	}

	// 旧版本不受后续更新影响。
	if got, _ := pt.QueryRange(v0, 0, 7); got != 10 {
		t.Errorf("v0 QueryRange(0,7) = %d, want 10", got)
	}
	if got, _ := pt.QueryRange(v1, 0, 7); got != 15 {
		t.Errorf("v1 QueryRange(0,7) = %d, want 15", got)
	}
	if got, _ := pt.QueryRange(v2, 0, 7); got != 22 {
		t.Errorf("v2 QueryRange(0,7) = %d, want 22", got)
	}
	if got, _ := pt.QueryRange(v2, 2, 2); got != 15 {
		t.Errorf("v2 QueryRange(2,2) = %d, want 15", got)
	}
	if got, _ := pt.QueryRange(v2, 3, 5); got != 0 {
		t.Errorf("v2 QueryRange(3,5) = %d, want 0", got)
	}
}

func TestPersistentTreeErrors(t *testing.T) {
	if _, err := NewPersistent(0, 4); !errors.Is(err, xerrors.ErrInvalidLength) {
		t.Errorf("NewPersistent(0) error = %v, want ErrInvalidLength", err)
	}

	pt, _ := NewPersistent(4, 4)
	if _, err := pt.PushAdd(4, 1); !errors.Is(err, xerrors.ErrIndexOutOfRange) {
		t.Errorf("PushAdd(4) error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := pt.QueryRange(0, 0, 3); !errors.Is(err, xerrors.ErrVersionNotFound) {
		t.Errorf("QueryRange on empty tree error = %v, want ErrVersionNotFound", err)
	}

	if _, err := pt.PushAdd(1, 3); err != nil {
		t.Fatalf("PushAdd failed: %v", err)
	}
	if _, err := pt.QueryRange(0, 3, 1); !errors.Is(err, xerrors.ErrInvalidRange) {
		t.Errorf("QueryRange(3,1) error = %v, want ErrInvalidRange", err)
	}
	if _, err := pt.QueryRange(5, 0, 3); !errors.Is(err, xerrors.ErrVersionNotFound) {
		t.Errorf("QueryRange(version 5) error = %v, want ErrVersionNotFound", err)
	}
}
