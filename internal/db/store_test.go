package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := []byte(`[1,2,3]`)
	if err := store.Set(ctx, "key", original); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	original[0] = 'X'

	value, found, err := store.Get(ctx, "key")
	if err != nil || !found {
		t.Fatalf("expected stored value, found=%v err=%v", found, err)
	}
	if string(value) != `[1,2,3]` {
		t.Fatalf("expected stored copy to be isolated from caller, got %q", value)
	}

	value[0] = 'Y'
	again, _, _ := store.Get(ctx, "key")
	if string(again) != `[1,2,3]` {
		t.Fatalf("expected returned copy to be isolated from store, got %q", again)
	}
}

func TestMemoryStoreMissingKey(t *testing.T) {
	_, found, err := NewMemoryStore().Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected absent key")
	}
}

func TestOpenStoreDrivers(t *testing.T) {
	tests := []struct {
		name    string
		options StoreOptions
		wantErr bool
	}{
		{name: "default sqlite", options: StoreOptions{SQLitePath: filepath.Join(t.TempDir(), "default.db")}},
		{name: "explicit sqlite", options: StoreOptions{Driver: "SQLite", SQLitePath: filepath.Join(t.TempDir(), "explicit.db")}},
		{name: "memory", options: StoreOptions{Driver: DriverMemory}},
		{name: "mysql without dsn", options: StoreOptions{Driver: DriverMySQL}, wantErr: true},
		{name: "unknown", options: StoreOptions{Driver: "bolt"}, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store, closeStore, err := OpenStore(testCase.options)
			if closeStore == nil {
				t.Fatal("expected non-nil close function")
			}
			defer func() {
				_ = closeStore()
			}()

			if testCase.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenStore() unexpected error: %v", err)
			}
			if err := store.Set(context.Background(), "probe", []byte("ok")); err != nil {
				t.Fatalf("Set() unexpected error: %v", err)
			}
		})
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("STASHLOG_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("STASHLOG_TEST_REDIS_ADDR not set")
	}

	store, err := OpenRedis(RedisOptions{Addr: addr, Prefix: "stashlog-test"})
	if err != nil {
		t.Fatalf("OpenRedis() unexpected error: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Set(ctx, "my_stash_user", []byte(`{"name":"Sam"}`)); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	value, found, err := store.Get(ctx, "my_stash_user")
	if err != nil || !found || string(value) != `{"name":"Sam"}` {
		t.Fatalf("unexpected round trip: found=%v err=%v value=%q", found, err, value)
	}

	_, found, err = store.Get(ctx, "never-written")
	if err != nil || found {
		t.Fatalf("expected missing key, found=%v err=%v", found, err)
	}
}
