package localstore

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/localarthub-backend/pkg/migrate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := migrate.Run(context.Background(), sqlDB, "sqlite", "up"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store, err := NewGormStore(conn)
	if err != nil {
		t.Fatalf("new gorm store: %v", err)
	}
	return store
}

func backends(t *testing.T) map[string]Store {
	redisStore, err := NewRedisStore(newFakeKV(), 0)
	if err != nil {
		t.Fatalf("new redis store: %v", err)
	}
	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
		"sql":    newSQLiteStore(t),
	}
}

func TestStoreContract(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, found, err := store.Get(ctx, "v1", KeyCart); err != nil || found {
				t.Fatalf("expected missing key, found=%v err=%v", found, err)
			}

			if err := store.Set(ctx, "v1", KeyCart, "[]"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := store.Set(ctx, "v1", KeyCart, `[{"name":"Clay Vase"}]`); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			value, found, err := store.Get(ctx, "v1", KeyCart)
			if err != nil || !found || value != `[{"name":"Clay Vase"}]` {
				t.Fatalf("last write should win, got %q found=%v err=%v", value, found, err)
			}

			if _, found, _ := store.Get(ctx, "v2", KeyCart); found {
				t.Fatalf("visitors must not share entries")
			}

			if err := store.Set(ctx, "v1", KeyAppliedCoupon, "SAVE10"); err != nil {
				t.Fatalf("set coupon: %v", err)
			}
			if err := store.Set(ctx, "v1", KeyDiscountPercent, "10"); err != nil {
				t.Fatalf("set percent: %v", err)
			}
			if err := store.Remove(ctx, "v1", KeyAppliedCoupon, KeyDiscountPercent); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if _, found, _ := store.Get(ctx, "v1", KeyAppliedCoupon); found {
				t.Fatalf("coupon should be removed")
			}
			if _, found, _ := store.Get(ctx, "v1", KeyCart); !found {
				t.Fatalf("unrelated key should survive remove")
			}
			if err := store.Remove(ctx, "nobody"); err != nil {
				t.Fatalf("removing nothing should succeed: %v", err)
			}
		})
	}
}

func TestLoadJSONStatuses(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var list []string
	status, err := LoadJSON(ctx, store, "v1", KeyNewsletterSubscribers, &list)
	if err != nil || status != LoadStatusMissing || list != nil {
		t.Fatalf("expected missing, got %s %v %v", status, list, err)
	}

	if err := SaveJSON(ctx, store, "v1", KeyNewsletterSubscribers, []string{"a@b.co"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	status, err = LoadJSON(ctx, store, "v1", KeyNewsletterSubscribers, &list)
	if err != nil || status != LoadStatusOK || len(list) != 1 {
		t.Fatalf("expected ok, got %s %v %v", status, list, err)
	}

	_ = store.Set(ctx, "v1", KeyNewsletterSubscribers, `["a@b.co",`)
	list = []string{"stale"}
	status, err = LoadJSON(ctx, store, "v1", KeyNewsletterSubscribers, &list)
	if err != nil {
		t.Fatalf("corrupt values must not error: %v", err)
	}
	if status != LoadStatusCorrupt || list != nil {
		t.Fatalf("expected corrupt fallback to empty, got %s %v", status, list)
	}
	if status.String() != "corrupt" {
		t.Fatalf("unexpected status string %q", status.String())
	}
}

func TestLoadJSONPropagatesStoreFailure(t *testing.T) {
	kv := newFakeKV()
	kv.failWith = errors.New("connection refused")
	store, _ := NewRedisStore(kv, time.Hour)

	var list []string
	if _, err := LoadJSON(context.Background(), store, "v1", KeyContactMessages, &list); err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestRedisStoreNamespacesKeysAndTTL(t *testing.T) {
	kv := newFakeKV()
	store, _ := NewRedisStore(kv, 48*time.Hour)
	if err := store.Set(context.Background(), "v9", KeyCart, "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := kv.data["lah:storage:v9:localArtHubCart"]; !ok {
		t.Fatalf("expected namespaced key, have %v", kv.data)
	}
	if kv.ttls["lah:storage:v9:localArtHubCart"] != 48*time.Hour {
		t.Fatalf("expected ttl to be forwarded")
	}
	if _, err := NewRedisStore(nil, 0); err == nil {
		t.Fatalf("expected nil client to be rejected")
	}
}

type fakeKV struct {
	data     map[string]string
	ttls     map[string]time.Duration
	failWith error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Lookup(_ context.Context, key string) (string, bool, error) {
	if f.failWith != nil {
		return "", false, f.failWith
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.data[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeKV) StorageKey(visitorID, key string) string {
	parts := []string{"lah", "storage"}
	if visitorID != "" {
		parts = append(parts, visitorID)
	}
	return strings.Join(append(parts, key), ":")
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()
	_ = src.Set(ctx, "v1", KeyCart, `[{"name":"Vase","price":10,"image":"","quantity":1}]`)
	_ = src.Set(ctx, "v1", KeyAppliedCoupon, "SAVE10")
	_ = src.Set(ctx, "v1", KeyDiscountPercent, "10")

	snapshot, err := Export(ctx, src, "v1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(snapshot) != 3 {
		t.Fatalf("expected three keys, got %v", snapshot)
	}

	dst := NewMemoryStore()
	if err := Import(ctx, dst, "v2", snapshot); err != nil {
		t.Fatalf("import: %v", err)
	}
	if v, _, _ := dst.Get(ctx, "v2", KeyAppliedCoupon); v != "SAVE10" {
		t.Fatalf("expected coupon copied, got %q", v)
	}
}

func TestImportRejectsInvalidSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := Import(ctx, store, "v1", map[string]string{"theme": "dark"}); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
	err := Import(ctx, store, "v1", map[string]string{
		KeyAppliedCoupon: "SAVE10",
		KeyCart:          "{broken",
	})
	if err == nil {
		t.Fatal("expected corrupt cart to be rejected")
	}
	if _, found, _ := store.Get(ctx, "v1", KeyAppliedCoupon); found {
		t.Fatal("nothing should be written for a rejected snapshot")
	}
}
