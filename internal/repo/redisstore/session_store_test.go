package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/repo/redisstore"
)

func newTestStore(t *testing.T, ttl time.Duration) (*redisstore.SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return redisstore.NewSessionStore(client, ttl), mr
}

func TestSessionStore_SaveGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	sess := domain.NewBookingSession()
	if err := sess.SelectCountry(domain.CountryRD); err != nil {
		t.Fatalf("SelectCountry: %v", err)
	}
	if err := sess.SelectSlot("consulta-legal", "2025-06-10", "14:30"); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected session, got nil")
	}
	if got.ID != sess.ID || got.State != sess.State {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, sess)
	}
	if got.Country != domain.CountryRD || got.ServiceSlug != "consulta-legal" {
		t.Fatalf("selections not preserved: %+v", got)
	}
	if got.Date != "2025-06-10" || got.Time != "14:30" {
		t.Fatalf("slot not preserved: %+v", got)
	}
}

func TestSessionStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	got, err := store.Get(context.Background(), "no-such-session")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for a missing session, got %+v", got)
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	store, mr := newTestStore(t, 30*time.Minute)
	ctx := context.Background()

	sess := domain.NewBookingSession()
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mr.FastForward(31 * time.Minute)

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get after expiry: %v", err)
	}
	if got != nil {
		t.Fatalf("expected the session to expire, got %+v", got)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	sess := domain.NewBookingSession()
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil after delete, got %+v", got)
	}

	// deleting a missing key is not an error
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
}

func TestIdempotencyStore_SetGet(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := redisstore.NewIdempotencyStore(client)
	ctx := context.Background()

	if err := store.Set(ctx, "idem:abc", `{"status":200}`, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, err := store.Get(ctx, "idem:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if val != `{"status":200}` {
		t.Fatalf("unexpected value %q", val)
	}

	val, err = store.Get(ctx, "idem:missing")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if val != "" {
		t.Fatalf("expected empty value for missing key, got %q", val)
	}
}
