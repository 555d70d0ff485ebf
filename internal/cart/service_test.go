package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/ballonsurprise/backend/internal/catalog"
	"github.com/ballonsurprise/backend/pkg/enums"
	pkgerrors "github.com/ballonsurprise/backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewMemoryRepository(), catalog.NewService())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestAddPredefinedFreezesBundlePrice(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	item, err := svc.AddPredefined(ctx, "device-1", AddPredefinedInput{
		Category: enums.CategoryAnniversary,
		BundleID: "anniversary-classic",
	})
	if err != nil {
		t.Fatalf("add predefined: %v", err)
	}

	if item.Kind != enums.LineItemKindPredefined {
		t.Fatalf("kind = %q", item.Kind)
	}
	if item.TotalPrice != 25000 {
		t.Fatalf("total = %d, want 25000", item.TotalPrice)
	}
	if item.Bundle == nil || item.Bundle.Name != "Box Anniversaire Classique" {
		t.Fatalf("bundle snapshot missing: %+v", item.Bundle)
	}
	if item.Custom != nil {
		t.Fatalf("predefined item must not carry a custom payload")
	}
}

func TestAddPredefinedUnknownBundle(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddPredefined(context.Background(), "device-1", AddPredefinedInput{
		Category: enums.CategoryAnniversary,
		BundleID: "anniversary-unknown",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddPredefinedCategoryMismatch(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddPredefined(context.Background(), "device-1", AddPredefinedInput{
		Category: enums.CategoryBirth,
		BundleID: "anniversary-classic",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddCustomRoseRequiredBeforeChocolate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Both missing: the rose check must win.
	_, err := svc.AddCustom(ctx, "device-1", AddCustomInput{Category: enums.CategoryAnniversary})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "rose required" {
		t.Fatalf("message = %q, want \"rose required\"", typed.Message())
	}

	_, err = svc.AddCustom(ctx, "device-1", AddCustomInput{
		Category: enums.CategoryAnniversary,
		RoseID:   "red",
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Message() != "chocolate required" {
		t.Fatalf("expected \"chocolate required\", got %v", err)
	}
}

func TestAddCustomUnknownOption(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []AddCustomInput{
		{Category: enums.CategoryAnniversary, RoseID: "blue", ChocolateIDs: []string{"patchi"}},
		{Category: enums.CategoryAnniversary, RoseID: "red", ChocolateIDs: []string{"lindt"}},
		{Category: enums.CategoryAnniversary, RoseID: "red", ChocolateIDs: []string{"patchi"}, BiscuitIDs: []string{"milka"}},
	}
	for _, input := range cases {
		_, err := svc.AddCustom(ctx, "device-1", input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}
}

func TestAddCustomComputesFrozenTotal(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.AddCustom(context.Background(), "device-1", AddCustomInput{
		Category:     enums.CategoryAnniversary,
		ChocolateIDs: []string{"patchi"},
		RoseID:       "red",
		Bear:         true,
	})
	if err != nil {
		t.Fatalf("add custom: %v", err)
	}

	// 15000 base + 8000 patchi + 4000 red rose + 12000 bear
	if item.TotalPrice != 39000 {
		t.Fatalf("total = %d, want 39000", item.TotalPrice)
	}
	if item.Custom == nil || !item.Custom.Bear {
		t.Fatalf("custom payload missing: %+v", item.Custom)
	}
	if item.Custom.Rose.ID != "red" {
		t.Fatalf("rose = %+v", item.Custom.Rose)
	}
}

func TestAddCustomWithoutBear(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.AddCustom(context.Background(), "device-1", AddCustomInput{
		Category:     enums.CategoryBirth,
		ChocolateIDs: []string{"ferrero", "raphael"},
		BiscuitIDs:   []string{"oreo"},
		RoseID:       "white",
	})
	if err != nil {
		t.Fatalf("add custom: %v", err)
	}

	// 15000 + 6000 + 7000 + 2500 + 4000
	if item.TotalPrice != 34500 {
		t.Fatalf("total = %d, want 34500", item.TotalPrice)
	}
}

func TestCartTotalsAndInsertionOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.AddPredefined(ctx, "device-1", AddPredefinedInput{
		Category: enums.CategoryAnniversary,
		BundleID: "anniversary-premium",
	})
	if err != nil {
		t.Fatalf("add predefined: %v", err)
	}
	second, err := svc.AddCustom(ctx, "device-1", AddCustomInput{
		Category:     enums.CategoryAnniversary,
		ChocolateIDs: []string{"patchi"},
		RoseID:       "red",
		Bear:         true,
	})
	if err != nil {
		t.Fatalf("add custom: %v", err)
	}

	view, err := svc.Get(ctx, "device-1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}

	if view.ItemCount != 2 {
		t.Fatalf("item count = %d", view.ItemCount)
	}
	if view.TotalPrice != first.TotalPrice+second.TotalPrice {
		t.Fatalf("total = %d, want %d", view.TotalPrice, first.TotalPrice+second.TotalPrice)
	}
	if view.Items[0].ID != first.ID || view.Items[1].ID != second.ID {
		t.Fatalf("items out of insertion order")
	}
}

func TestRemoveUnknownItemIsNoOp(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddPredefined(ctx, "device-1", AddPredefinedInput{
		Category: enums.CategoryAnniversary,
		BundleID: "anniversary-classic",
	}); err != nil {
		t.Fatalf("add predefined: %v", err)
	}

	if err := svc.Remove(ctx, "device-1", uuid.New()); err != nil {
		t.Fatalf("remove of unknown id must be a no-op: %v", err)
	}

	view, err := svc.Get(ctx, "device-1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if view.ItemCount != 1 {
		t.Fatalf("item count = %d, want 1", view.ItemCount)
	}
}

func TestRemoveExistingItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	item, err := svc.AddPredefined(ctx, "device-1", AddPredefinedInput{
		Category: enums.CategoryAnniversary,
		BundleID: "anniversary-classic",
	})
	if err != nil {
		t.Fatalf("add predefined: %v", err)
	}

	if err := svc.Remove(ctx, "device-1", item.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	view, err := svc.Get(ctx, "device-1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if view.ItemCount != 0 || view.TotalPrice != 0 {
		t.Fatalf("cart should be empty, got %+v", view)
	}
}

func TestClearEmptiesTheCart(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, bundleID := range []string{"birth-tender", "birth-royal"} {
		if _, err := svc.AddPredefined(ctx, "device-1", AddPredefinedInput{
			Category: enums.CategoryBirth,
			BundleID: bundleID,
		}); err != nil {
			t.Fatalf("add predefined: %v", err)
		}
	}

	if err := svc.Clear(ctx, "device-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	view, err := svc.Get(ctx, "device-1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if view.ItemCount != 0 {
		t.Fatalf("cart should be empty after clear, got %d items", view.ItemCount)
	}
}

func TestCartsAreScopedPerDevice(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddPredefined(ctx, "device-a", AddPredefinedInput{
		Category: enums.CategoryAnniversary,
		BundleID: "anniversary-classic",
	}); err != nil {
		t.Fatalf("add predefined: %v", err)
	}

	other, err := svc.Get(ctx, "device-b")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if other.ItemCount != 0 {
		t.Fatalf("device-b cart should be empty, got %d items", other.ItemCount)
	}
}
