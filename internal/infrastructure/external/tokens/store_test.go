package tokens

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/prevue-ai/interview-server/internal/infrastructure/cache"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(cache.NewRedisStoreFromClient(client)), mr
}

func TestIssueAndRedeem(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	token, err := store.Issue(ctx, PurposePasswordReset, "user-123", time.Minute)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(token))
	}

	subject, ok, err := store.Redeem(ctx, PurposePasswordReset, token)
	if err != nil {
		t.Fatalf("Redeem failed: %v", err)
	}
	if !ok {
		t.Fatal("valid token not redeemed")
	}
	if subject != "user-123" {
		t.Errorf("subject = %q", subject)
	}
}

func TestRedeem_SingleUse(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	token, err := store.Issue(ctx, PurposePasswordReset, "user-123", time.Minute)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, ok, _ := store.Redeem(ctx, PurposePasswordReset, token); !ok {
		t.Fatal("first redeem should succeed")
	}
	if _, ok, _ := store.Redeem(ctx, PurposePasswordReset, token); ok {
		t.Fatal("second redeem must fail")
	}
}

func TestRedeem_WrongPurpose(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	token, err := store.Issue(ctx, PurposePasswordReset, "user-123", time.Minute)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, ok, _ := store.Redeem(ctx, "invite", token); ok {
		t.Fatal("token redeemed under a different purpose")
	}
	// Still valid under the right purpose
	if _, ok, _ := store.Redeem(ctx, PurposePasswordReset, token); !ok {
		t.Fatal("token should survive a wrong-purpose attempt")
	}
}

func TestRedeem_Expired(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	token, err := store.Issue(ctx, PurposePasswordReset, "user-123", time.Minute)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, ok, _ := store.Redeem(ctx, PurposePasswordReset, token); ok {
		t.Fatal("expired token redeemed")
	}
}

func TestRedeem_Unknown(t *testing.T) {
	store, _ := newTestStore(t)

	subject, ok, err := store.Redeem(context.Background(), PurposePasswordReset, "deadbeef")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || subject != "" {
		t.Error("unknown token must not redeem")
	}
}

func TestStoredValueIsHashed(t *testing.T) {
	store, mr := newTestStore(t)

	token, err := store.Issue(context.Background(), PurposePasswordReset, "user-123", time.Minute)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// The raw token must never appear in a cache key
	for _, key := range mr.Keys() {
		if key == PurposePasswordReset+":"+token {
			t.Fatal("raw token stored as key")
		}
	}
}
