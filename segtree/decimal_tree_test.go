package segtree

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/rangetree/xerrors"
)

func TestDecimalTree(t *testing.T) {
	arr := []decimal.Decimal{
		decimal.RequireFromString("0.1"),
		decimal.RequireFromString("0.2"),
		decimal.RequireFromString("0.3"),
	}
	st, err := NewDecimalTree(arr)
	if err != nil {
		t.Fatalf("NewDecimalTree failed: %v", err)
	}

	got, err := st.Query(0, 2)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	// 0.1 + 0.2 + 0.3 必须精确等于 0.6，浮点实现到不了这里。
	if !got.Equal(decimal.RequireFromString("0.6")) {
		t.Errorf("Query(0,2) = %s, want 0.6", got)
	}

	if err := st.Update(1, decimal.RequireFromString("1.25")); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ = st.Query(1, 2)
	if !got.Equal(decimal.RequireFromString("1.55")) {
		t.Errorf("Query(1,2) = %s, want 1.55", got)
	}
}

func TestDecimalTreeErrors(t *testing.T) {
	if _, err := NewDecimalTree(nil); !errors.Is(err, xerrors.ErrEmptyData) {
		t.Errorf("NewDecimalTree(nil) error = %v, want ErrEmptyData", err)
	}

	st, _ := NewDecimalTree([]decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromInt(2)})
	if err := st.Update(2, decimal.Zero); !errors.Is(err, xerrors.ErrIndexOutOfRange) {
		t.Errorf("Update(2) error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := st.Query(1, 0); !errors.Is(err, xerrors.ErrInvalidRange) {
		t.Errorf("Query(1,0) error = %v, want ErrInvalidRange", err)
	}
}
