package cart

import (
	"testing"

	"github.com/vzeeee/Qkart-Backend2/internal/apperr"
	"github.com/vzeeee/Qkart-Backend2/internal/lock"
	"github.com/vzeeee/Qkart-Backend2/internal/product"
)

func newTestService() (*Service, *InMemoryRepository) {
	repo := NewInMemoryRepository()
	catalog := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "widget", Cost: 10},
		{ID: 2, Name: "gadget", Cost: 5},
		{ID: 3, Name: "gizmo", Cost: 25},
	})
	return NewService(repo, catalog, lock.NewKeyed()), repo
}

func TestAddItem_CreatesCartLazily(t *testing.T) {
	svc, _ := newTestService()

	c, err := svc.AddItem(42, 1, 3)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if c.ID == "" {
		t.Fatal("expected a cart id to be assigned")
	}
	if len(c.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(c.Items))
	}
	it := c.Items[0]
	if it.ProductID != 1 || it.Quantity != 3 || it.Cost != 10 || it.Name != "widget" {
		t.Fatalf("unexpected item %+v", it)
	}
}

func TestAddItem_DuplicateProductConflicts(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.AddItem(42, 1, 3); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	_, err := svc.AddItem(42, 1, 5)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// cart must be unchanged: one line for product 1 with quantity 3
	c, err := svc.GetCart(42)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(c.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", c.Items[0].Quantity)
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddItem(42, 99, 1)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	// a cart was created lazily, but no line was appended
	c, err := svc.GetCart(42)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(c.Items))
	}
}

func TestAddItem_NonPositiveQuantityRejected(t *testing.T) {
	svc, _ := newTestService()

	for _, qty := range []int{0, -1, -100} {
		if _, err := svc.AddItem(42, 1, qty); apperr.KindOf(err) != apperr.KindValidation {
			t.Fatalf("quantity %d: expected validation error, got %v", qty, err)
		}
	}
}

func TestGetCart_AbsentIsNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetCart(42)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateItem_OverwritesQuantity(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.AddItem(42, 1, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	c, err := svc.UpdateItem(42, 1, 7)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if c.Items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", c.Items[0].Quantity)
	}
}

func TestUpdateItem_RequiresCart(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateItem(42, 1, 2)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateItem_RequiresPresence(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.AddItem(42, 1, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	_, err := svc.UpdateItem(42, 2, 4)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	// nothing mutated
	c, _ := svc.GetCart(42)
	if len(c.Items) != 1 || c.Items[0].ProductID != 1 || c.Items[0].Quantity != 3 {
		t.Fatalf("cart mutated by failed update: %+v", c.Items)
	}
}

func TestUpdateItem_UnknownProduct(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.AddItem(42, 1, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	_, err := svc.UpdateItem(42, 99, 4)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRemoveItem_KeepsRelativeOrder(t *testing.T) {
	svc, _ := newTestService()

	for _, pid := range []int{1, 2, 3} {
		if _, err := svc.AddItem(42, pid, 1); err != nil {
			t.Fatalf("add %d failed: %v", pid, err)
		}
	}
	if err := svc.RemoveItem(42, 2); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	c, _ := svc.GetCart(42)
	if len(c.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(c.Items))
	}
	if c.Items[0].ProductID != 1 || c.Items[1].ProductID != 3 {
		t.Fatalf("order not preserved: %+v", c.Items)
	}
}

func TestRemoveItem_RequiresCartAndPresence(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.RemoveItem(42, 1); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error without cart, got %v", err)
	}
	if _, err := svc.AddItem(42, 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.RemoveItem(42, 2); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for absent item, got %v", err)
	}
}

// After any sequence of operations a cart holds at most one line per
// product.
func TestUniquenessInvariant(t *testing.T) {
	svc, _ := newTestService()

	_, _ = svc.AddItem(42, 1, 2)
	_, _ = svc.AddItem(42, 1, 9) // conflict
	_, _ = svc.AddItem(42, 2, 1)
	_, _ = svc.UpdateItem(42, 1, 4)
	_ = svc.RemoveItem(42, 2)
	_, _ = svc.AddItem(42, 2, 6)
	_, _ = svc.AddItem(42, 2, 6) // conflict

	c, err := svc.GetCart(42)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	seen := map[int]bool{}
	for _, it := range c.Items {
		if seen[it.ProductID] {
			t.Fatalf("duplicate line for product %d: %+v", it.ProductID, c.Items)
		}
		seen[it.ProductID] = true
	}
	if len(c.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(c.Items))
	}
}

func TestCartsAreIndependentPerUser(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.AddItem(1, 1, 1); err != nil {
		t.Fatalf("add for user 1 failed: %v", err)
	}
	if _, err := svc.AddItem(2, 1, 5); err != nil {
		t.Fatalf("add for user 2 failed: %v", err)
	}

	c1, _ := svc.GetCart(1)
	c2, _ := svc.GetCart(2)
	if c1.ID == c2.ID {
		t.Fatal("users share a cart")
	}
	if c1.Items[0].Quantity != 1 || c2.Items[0].Quantity != 5 {
		t.Fatalf("cross-user interference: %+v / %+v", c1.Items, c2.Items)
	}
}
