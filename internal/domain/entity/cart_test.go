package entity

import (
	"testing"

	"github.com/google/uuid"
)

func TestCartAddLineMergesSameProduct(t *testing.T) {
	burger := uuid.New()
	fries := uuid.New()

	cart := NewCart()
	cart.AddLine(burger, 2)
	cart.AddLine(fries, 1)
	cart.AddLine(burger, 3)

	if len(cart.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Lines))
	}
	if cart.Lines[0].ProductID != burger || cart.Lines[0].Quantity != 5 {
		t.Errorf("expected burger line with quantity 5, got %+v", cart.Lines[0])
	}
	if cart.Lines[1].ProductID != fries || cart.Lines[1].Quantity != 1 {
		t.Errorf("expected fries line with quantity 1, got %+v", cart.Lines[1])
	}
}

func TestCartIsEmpty(t *testing.T) {
	cart := NewCart()
	if !cart.IsEmpty() {
		t.Error("new cart should be empty")
	}
	cart.AddLine(uuid.New(), 1)
	if cart.IsEmpty() {
		t.Error("cart with a line should not be empty")
	}
}

func TestCartProductIDsPreservesOrder(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	cart := NewCart()
	cart.AddLine(a, 1)
	cart.AddLine(b, 2)
	cart.AddLine(c, 3)
	cart.AddLine(b, 1) // merge, no new id

	ids := cart.ProductIDs()
	want := []uuid.UUID{a, b, c}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}
