package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/terraincognita07/stashlog/internal/logging"
	"github.com/terraincognita07/stashlog/internal/models"
)

const (
	ProductsKey    = "my_stash_products"
	SessionsKey    = "my_stash_sessions"
	UserProfileKey = "my_stash_user"
)

var ErrProductNotFound = errors.New("product not found")

// KeyValueStore persists whole JSON documents under fixed keys.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type Snapshot struct {
	Products []models.Product  `json:"products"`
	Sessions []models.Session  `json:"sessions"`
	Profile  models.UserProfile `json:"profile"`
}

// StashStore reads and writes whole collections. Every write loads the full
// collection, changes it in memory and stores it back.
type StashStore struct {
	mu     sync.Mutex
	store  KeyValueStore
	logger logging.Logger
}

func NewStashStore(store KeyValueStore, logger logging.Logger) *StashStore {
	if logger == nil {
		logger = logging.Discard()
	}
	return &StashStore{store: store, logger: logger}
}

func (s *StashStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadProducts(ctx)
}

func (s *StashStore) GetProduct(ctx context.Context, id string) (models.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return models.Product{}, err
	}
	for _, product := range products {
		if product.ID == id {
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// SaveProduct replaces the product with the same id in place or appends it.
func (s *StashStore) SaveProduct(ctx context.Context, product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for index := range products {
		if products[index].ID == product.ID {
			products[index] = product
			replaced = true
			break
		}
	}
	if !replaced {
		products = append(products, product)
	}
	return s.write(ctx, ProductsKey, products)
}

// DeleteProduct removes the product. Sessions pointing at it are kept.
func (s *StashStore) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Product, 0, len(products))
	for _, product := range products {
		if product.ID != id {
			kept = append(kept, product)
		}
	}
	if len(kept) == len(products) {
		return nil
	}
	return s.write(ctx, ProductsKey, kept)
}

// ListSessions returns sessions newest first, optionally for one product.
func (s *StashStore) ListSessions(ctx context.Context, productID string) ([]models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return nil, err
	}

	if productID != "" {
		filtered := make([]models.Session, 0, len(sessions))
		for _, session := range sessions {
			if session.ProductID == productID {
				filtered = append(filtered, session)
			}
		}
		sessions = filtered
	}

	sortSessionsNewestFirst(sessions)
	return sessions, nil
}

func (s *StashStore) SaveSession(ctx context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return err
	}
	return s.write(ctx, SessionsKey, append(sessions, session))
}

func (s *StashStore) GetUserProfile(ctx context.Context) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadProfile(ctx)
}

func (s *StashStore) SaveUserProfile(ctx context.Context, profile models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, UserProfileKey, profile)
}

// Snapshot loads all three documents under one lock. Sessions keep their
// stored order.
func (s *StashStore) Snapshot(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	profile, err := s.loadProfile(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Products: products, Sessions: sessions, Profile: profile}, nil
}

func (s *StashStore) loadProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	found, err := s.read(ctx, ProductsKey, &products)
	if err != nil {
		return nil, err
	}
	if !found || products == nil {
		return []models.Product{}, nil
	}
	return products, nil
}

func (s *StashStore) loadSessions(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	found, err := s.read(ctx, SessionsKey, &sessions)
	if err != nil {
		return nil, err
	}
	if !found || sessions == nil {
		return []models.Session{}, nil
	}
	return sessions, nil
}

func (s *StashStore) loadProfile(ctx context.Context) (models.UserProfile, error) {
	var profile models.UserProfile
	found, err := s.read(ctx, UserProfileKey, &profile)
	if err != nil {
		return models.UserProfile{}, err
	}
	if !found {
		return models.DefaultUserProfile(), nil
	}
	return profile, nil
}

// read decodes the document stored under key into target. Missing and
// undecodable documents both report found=false.
func (s *StashStore) read(ctx context.Context, key string, target any) (bool, error) {
	raw, found, err := s.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !found || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, target); err != nil {
		s.logger.Warn(ctx, "discarding undecodable stored document", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *StashStore) write(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, encoded); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func sortSessionsNewestFirst(sessions []models.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].DateTimeUsed.After(sessions[j].DateTimeUsed)
	})
}
