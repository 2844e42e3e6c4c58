package services

import (
	"context"
	"errors"
	"testing"

	"github.com/terraincognita07/stashlog/internal/models"
)

func TestStashStoreEmptyBackendReturnsDefaults(t *testing.T) {
	store, _ := newTestStashStore(t)
	ctx := context.Background()

	products, err := store.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts() unexpected error: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Fatalf("expected empty non-nil products, got %#v", products)
	}

	sessions, err := store.ListSessions(ctx, "")
	if err != nil {
		t.Fatalf("ListSessions() unexpected error: %v", err)
	}
	if sessions == nil || len(sessions) != 0 {
		t.Fatalf("expected empty non-nil sessions, got %#v", sessions)
	}

	profile, err := store.GetUserProfile(ctx)
	if err != nil {
		t.Fatalf("GetUserProfile() unexpected error: %v", err)
	}
	if profile != models.DefaultUserProfile() {
		t.Fatalf("expected default profile, got %#v", profile)
	}
}

func TestStashStoreSaveProductUpsertsInPlace(t *testing.T) {
	store, _ := newTestStashStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := store.SaveProduct(ctx, testProduct(id, models.CategoryFlower)); err != nil {
			t.Fatalf("SaveProduct(%s) unexpected error: %v", id, err)
		}
	}

	updated := testProduct("b", models.CategoryEdible)
	updated.ProductName = "Renamed"
	if err := store.SaveProduct(ctx, updated); err != nil {
		t.Fatalf("SaveProduct(update) unexpected error: %v", err)
	}

	products, err := store.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts() unexpected error: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	if products[1].ID != "b" || products[1].ProductName != "Renamed" || products[1].Category != models.CategoryEdible {
		t.Fatalf("expected updated product at original position, got %#v", products[1])
	}
}

func TestStashStoreGetProductNotFound(t *testing.T) {
	store, _ := newTestStashStore(t)

	_, err := store.GetProduct(context.Background(), "missing")
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestStashStoreDeleteProduct(t *testing.T) {
	store, backend := newTestStashStore(t)
	ctx := context.Background()

	if err := store.SaveProduct(ctx, testProduct("p1", models.CategoryFlower)); err != nil {
		t.Fatalf("SaveProduct() unexpected error: %v", err)
	}
	if err := store.SaveSession(ctx, testSession("s1", "p1", 8, testNow)); err != nil {
		t.Fatalf("SaveSession() unexpected error: %v", err)
	}

	writesBefore := backend.setCalls
	if err := store.DeleteProduct(ctx, "unknown"); err != nil {
		t.Fatalf("DeleteProduct(unknown) unexpected error: %v", err)
	}
	if backend.setCalls != writesBefore {
		t.Fatalf("expected deleting an absent product to skip the write")
	}

	if err := store.DeleteProduct(ctx, "p1"); err != nil {
		t.Fatalf("DeleteProduct() unexpected error: %v", err)
	}
	products, _ := store.ListProducts(ctx)
	if len(products) != 0 {
		t.Fatalf("expected product to be removed, got %#v", products)
	}

	sessions, _ := store.ListSessions(ctx, "")
	if len(sessions) != 1 || sessions[0].ProductID != "p1" {
		t.Fatalf("expected orphaned session to remain, got %#v", sessions)
	}
}

func TestStashStoreListSessionsSortsNewestFirstAndFilters(t *testing.T) {
	store, _ := newTestStashStore(t)
	ctx := context.Background()

	entries := []models.Session{
		testSession("old", "p1", 5, hoursAgo(48)),
		testSession("new", "p2", 6, hoursAgo(1)),
		testSession("tie-first", "p1", 7, hoursAgo(10)),
		testSession("tie-second", "p1", 8, hoursAgo(10)),
	}
	for _, entry := range entries {
		if err := store.SaveSession(ctx, entry); err != nil {
			t.Fatalf("SaveSession(%s) unexpected error: %v", entry.ID, err)
		}
	}

	all, err := store.ListSessions(ctx, "")
	if err != nil {
		t.Fatalf("ListSessions() unexpected error: %v", err)
	}
	assertSessionIDs(t, all, "new", "tie-first", "tie-second", "old")

	filtered, err := store.ListSessions(ctx, "p1")
	if err != nil {
		t.Fatalf("ListSessions(p1) unexpected error: %v", err)
	}
	assertSessionIDs(t, filtered, "tie-first", "tie-second", "old")

	snapshot, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() unexpected error: %v", err)
	}
	assertSessionIDs(t, snapshot.Sessions, "old", "new", "tie-first", "tie-second")
}

func TestStashStoreTreatsCorruptDocumentsAsAbsent(t *testing.T) {
	store, backend := newTestStashStore(t)
	ctx := context.Background()

	backend.values[ProductsKey] = []byte(`[{"id":"p1"`)
	backend.values[SessionsKey] = []byte(`{"not":"a list"}`)
	backend.values[UserProfileKey] = []byte(`nope`)

	products, err := store.ListProducts(ctx)
	if err != nil || len(products) != 0 {
		t.Fatalf("expected corrupt products to read as empty, got %#v err=%v", products, err)
	}
	sessions, err := store.ListSessions(ctx, "")
	if err != nil || len(sessions) != 0 {
		t.Fatalf("expected corrupt sessions to read as empty, got %#v err=%v", sessions, err)
	}
	profile, err := store.GetUserProfile(ctx)
	if err != nil || profile != models.DefaultUserProfile() {
		t.Fatalf("expected corrupt profile to read as default, got %#v err=%v", profile, err)
	}

	if err := store.SaveProduct(ctx, testProduct("p2", models.CategoryVape)); err != nil {
		t.Fatalf("SaveProduct() unexpected error: %v", err)
	}
	products, _ = store.ListProducts(ctx)
	if len(products) != 1 || products[0].ID != "p2" {
		t.Fatalf("expected save to replace corrupt document, got %#v", products)
	}
}

func TestStashStoreWrapsBackendErrors(t *testing.T) {
	store, backend := newTestStashStore(t)
	ctx := context.Background()
	backendErr := errors.New("disk on fire")

	backend.getErr = backendErr
	if _, err := store.ListProducts(ctx); !errors.Is(err, backendErr) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
	if _, err := store.Snapshot(ctx); !errors.Is(err, backendErr) {
		t.Fatalf("expected wrapped snapshot error, got %v", err)
	}

	backend.getErr = nil
	backend.setErr = backendErr
	if err := store.SaveSession(ctx, testSession("s1", "p1", 5, testNow)); !errors.Is(err, backendErr) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
	if err := store.SaveUserProfile(ctx, models.DefaultUserProfile()); !errors.Is(err, backendErr) {
		t.Fatalf("expected wrapped profile write error, got %v", err)
	}
}

func TestStashStoreUserProfileRoundTrip(t *testing.T) {
	store, _ := newTestStashStore(t)
	ctx := context.Background()

	profile := models.DefaultUserProfile()
	profile.Name = "Sam"
	profile.Preferences.DosageUnit = models.DosageUnitGram
	if err := store.SaveUserProfile(ctx, profile); err != nil {
		t.Fatalf("SaveUserProfile() unexpected error: %v", err)
	}

	got, err := store.GetUserProfile(ctx)
	if err != nil {
		t.Fatalf("GetUserProfile() unexpected error: %v", err)
	}
	if got != profile {
		t.Fatalf("expected %#v, got %#v", profile, got)
	}
}

func assertSessionIDs(t *testing.T, sessions []models.Session, want ...string) {
	t.Helper()
	if len(sessions) != len(want) {
		t.Fatalf("expected %d sessions, got %d", len(want), len(sessions))
	}
	for i, id := range want {
		if sessions[i].ID != id {
			t.Fatalf("session %d: expected %q, got %q", i, id, sessions[i].ID)
		}
	}
}
