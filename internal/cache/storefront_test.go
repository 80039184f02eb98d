package cache

import (
	"context"
	"testing"
	"time"
)

func TestStorefrontKeys(t *testing.T) {
	if got := CollectionKey("  Pokemon "); got != "catalog:collection:pokemon" {
		t.Fatalf("unexpected collection key: %s", got)
	}
	if got := CartSessionKey("abc"); got != "cart:session:abc" {
		t.Fatalf("unexpected session key: %s", got)
	}
}

func TestDisabledCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	if Enabled() {
		t.Skip("redis enabled in test process")
	}
	if err := SetCollectionPage(ctx, &CollectionPage{Handle: "pokemon", Found: true}, time.Minute); err != nil {
		t.Fatalf("set should be noop: %v", err)
	}
	page, hit, err := GetCollectionPage(ctx, "pokemon")
	if err != nil || hit || page != nil {
		t.Fatalf("disabled cache should miss, got %+v %v %v", page, hit, err)
	}
	if _, hit, err := GetCartSessionID(ctx, "sess"); err != nil || hit {
		t.Fatalf("disabled cache should miss session id, got %v %v", hit, err)
	}
}
