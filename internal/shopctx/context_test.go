package shopctx

import (
	"context"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	ctx := WithShop(context.Background(), "navalha-central")
	slug, ok := ShopFromContext(ctx)
	if !ok || slug != "navalha-central" {
		t.Fatalf("expected slug propagated, got %q / %v", slug, ok)
	}
}

func TestMissing(t *testing.T) {
	if _, ok := ShopFromContext(context.Background()); ok {
		t.Fatal("expected ok=false for empty context")
	}
}

func TestEmptySlugNotOK(t *testing.T) {
	ctx := WithShop(context.Background(), "")
	if _, ok := ShopFromContext(ctx); ok {
		t.Fatal("expected ok=false for empty slug")
	}
}
