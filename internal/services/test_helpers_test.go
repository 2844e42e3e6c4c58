package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/terraincognita07/stashlog/internal/models"
)

type stubKeyValueStore struct {
	mu       sync.Mutex
	values   map[string][]byte
	getErr   error
	setErr   error
	setCalls int
}

func newStubKeyValueStore() *stubKeyValueStore {
	return &stubKeyValueStore{values: make(map[string][]byte)}
}

func (stub *stubKeyValueStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.getErr != nil {
		return nil, false, stub.getErr
	}
	value, ok := stub.values[key]
	return value, ok, nil
}

func (stub *stubKeyValueStore) Set(_ context.Context, key string, value []byte) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.setCalls++
	if stub.setErr != nil {
		return stub.setErr
	}
	stub.values[key] = append([]byte(nil), value...)
	return nil
}

func newTestStashStore(t *testing.T) (*StashStore, *stubKeyValueStore) {
	t.Helper()
	backend := newStubKeyValueStore()
	return NewStashStore(backend, nil), backend
}

func sequentialIDs(prefix string) func() string {
	next := 0
	return func() string {
		next++
		return prefix + string(rune('0'+next))
	}
}

var testNow = time.Date(2026, time.October, 19, 18, 0, 0, 0, time.UTC)

func testProduct(id string, category models.Category, tags ...string) models.Product {
	return models.Product{
		ID:          id,
		Category:    category,
		BrandName:   "Brand " + id,
		ProductName: "Product " + id,
		FormFactor:  "Unknown",
		StrainType:  models.StrainUnknown,
		Tags:        tags,
		Terpenes:    []models.Terpene{},
	}
}

func withTerpenes(p models.Product, names ...string) models.Product {
	for _, name := range names {
		p.Terpenes = append(p.Terpenes, models.Terpene{Name: name})
	}
	return p
}

func testSession(id string, productID string, rating int, used time.Time) models.Session {
	return models.Session{
		ID:            id,
		ProductID:     productID,
		DateTimeUsed:  used,
		OverallRating: rating,
		MoodBefore:    models.MoodNeutral,
		MoodAfter:     models.MoodGood,
	}
}

func hoursAgo(hours int) time.Time {
	return testNow.Add(-time.Duration(hours) * time.Hour)
}
